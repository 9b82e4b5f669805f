package http

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCounterManager(t *testing.T, opts ...ui.ManagerOption) *ui.Manager {
	t.Helper()
	inc := ui.NewButton("inc", ui.Text("+1"), func(_ context.Context, ev *ui.Event) error {
		ev.State.UpdateInt("n", 0, func(n int) int { return n + 1 })
		return nil
	})
	fail := ui.NewButton("fail", ui.Text("x"), func(context.Context, *ui.Event) error {
		return assert.AnError
	})
	body := func(_ context.Context, s *domain.State) (ui.Body, error) {
		return ui.Body{Content: "clicks"}, nil
	}
	menu, err := ui.NewMessageMenu("counter", body, []ui.Row{ui.MustRow(inc, fail)})
	require.NoError(t, err)

	menus := ui.NewManager(opts...)
	require.NoError(t, menus.Register(menu))
	return menus
}

const componentBody = `{
	"id": "1",
	"type": 3,
	"data": {"custom_id": "counter:inc:{\"n\":1}", "component_type": 2},
	"message": {
		"id": "m",
		"components": [{"type": 1, "components": [
			{"type": 2, "custom_id": "counter:inc:{\"n\":1}", "label": "+1", "style": 1},
			{"type": 2, "custom_id": "counter:fail:", "label": "x", "style": 1}
		]}]
	}
}`

func signed(t *testing.T, priv ed25519.PrivateKey, body string) *http.Request {
	t.Helper()
	ts := "1700000000"
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set("X-Signature-Timestamp", ts)
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(ed25519.Sign(priv, []byte(ts+body))))
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInteractions_Ping(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	handler := NewServer(newCounterManager(t), WithPublicKey(pub)).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, signed(t, priv, `{"id":"1","type":1}`))

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(discordgo.InteractionResponsePong), resp["type"])
}

func TestInteractions_RejectsBadSignature(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, other, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	handler := NewServer(newCounterManager(t), WithPublicKey(pub)).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, signed(t, other, `{"id":"1","type":1}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{"type":1}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInteractions_ComponentUpdatesMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	handler := NewServer(newCounterManager(t), WithPublicKey(pub)).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, signed(t, priv, componentBody))

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(discordgo.InteractionResponseUpdateMessage), resp["type"])
	assert.Contains(t, w.Body.String(), `counter:inc:{\"n\":2}`)
}

func TestInteractions_FailureRepliesEphemeral(t *testing.T) {
	handler := NewServer(newCounterManager(t)).Handler()
	body := strings.ReplaceAll(componentBody, `"custom_id": "counter:inc:{\"n\":1}", "component_type"`, `"custom_id": "counter:fail:", "component_type"`)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body)))

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(discordgo.InteractionResponseChannelMessageWithSource), resp["type"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, float64(discordgo.MessageFlagsEphemeral), data["flags"])
}

func TestInteractions_UnknownMenuAcknowledged(t *testing.T) {
	handler := NewServer(newCounterManager(t)).Handler()
	body := strings.ReplaceAll(componentBody, `"custom_id": "counter:inc:{\"n\":1}", "component_type"`, `"custom_id": "other:x:", "component_type"`)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body)))

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(discordgo.InteractionResponseDeferredMessageUpdate), resp["type"])
}

func TestInteractions_BadRequests(t *testing.T) {
	handler := NewServer(newCounterManager(t)).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{"id":"1","type":2,"data":{"id":"c","name":"cmd","type":1}}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthInfoMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()
	handler := NewServer(newCounterManager(t), WithGatherer(reg)).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.Contains(t, w.Body.String(), `"app":"espalier-http"`)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_total 1")
}

func TestSubscribeEvents_Render(t *testing.T) {
	streams := NewStreamManager(nil)
	menus := newCounterManager(t, ui.WithHooks(EventHooks(streams)))
	handler := NewServer(menus, WithStreams(streams)).Handler()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest(http.MethodGet, "/events?menu=counter", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(wSub, reqSub)
	}()

	require.Eventually(t, func() bool { return streams.Subscribers("counter") == 1 }, time.Second, 5*time.Millisecond)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(componentBody)))
	require.Equal(t, http.StatusOK, w.Code)

	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, `"type":"render"`)
	assert.Contains(t, output, `"menu_id":"counter"`)
}

func TestStreamManager_Broadcast(t *testing.T) {
	sm := NewStreamManager(nil)
	all, cancelAll := sm.Subscribe("")
	defer cancelAll()
	one, cancelOne := sm.Subscribe("a")

	sm.Broadcast("a", "x")
	assert.Equal(t, "x", <-one)
	assert.Equal(t, "x", <-all)

	cancelOne()
	assert.Equal(t, 0, sm.Subscribers("a"))
	sm.Broadcast("a", "y")
	assert.Equal(t, "y", <-all)
}

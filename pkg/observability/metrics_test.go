package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	h := m.Hooks()
	ctx := context.Background()

	h.OnDecode(ctx, &domain.DecodeEvent{EventBase: domain.NewEventBase(domain.EventDecode, "list.fruits"), Component: "next"})
	h.OnRender(ctx, &domain.RenderEvent{EventBase: domain.NewEventBase(domain.EventRender, "list.fruits"), StateSize: 10, Capacity: 100, Duration: time.Millisecond})
	h.OnRender(ctx, &domain.RenderEvent{EventBase: domain.NewEventBase(domain.EventRender, "other")})
	h.OnEffect(ctx, &domain.EffectEvent{EventBase: domain.NewEventBase(domain.EventEffect, "list.fruits"), Field: "page"})
	h.OnOverflow(ctx, &domain.OverflowEvent{EventBase: domain.NewEventBase(domain.EventOverflow, "big")})
	h.OnDrop(ctx, &domain.DropEvent{EventBase: domain.NewEventBase(domain.EventDrop, "x"), Reason: "unknown menu"})
	h.OnError(ctx, &domain.ErrorEvent{EventBase: domain.NewEventBase(domain.EventError, "big"), Component: "go", Err: errors.New("boom")})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decodes.WithLabelValues("list.fruits", "next")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("list.fruits")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Effects.WithLabelValues("list.fruits", "page")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Overflows.WithLabelValues("big")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drops.WithLabelValues("unknown menu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("big", "go")))

	assert.Equal(t, 2, testutil.CollectAndCount(m.RenderDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StateUsage), "renders without capacity are not observed")

	n, err := testutil.GatherAndCount(reg, "espalier_renders_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNewMetrics_Namespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, WithNamespace("bot"))
	m.Hooks().OnDrop(context.Background(), &domain.DropEvent{Reason: "unknown menu"})

	n, err := testutil.GatherAndCount(reg, "bot_drops_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewMetrics_Unregistered(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(nil)
		NewMetrics(nil)
	})
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	h := LogHooks(logger)
	ctx := context.Background()

	h.OnRender(ctx, &domain.RenderEvent{EventBase: domain.NewEventBase(domain.EventRender, "m")})
	assert.Empty(t, buf.String(), "renders log at debug")

	h.OnOverflow(ctx, &domain.OverflowEvent{EventBase: domain.NewEventBase(domain.EventOverflow, "m"), Leftover: 7})
	assert.Contains(t, buf.String(), "state overflow")
	assert.Contains(t, buf.String(), "leftover=7")

	h.OnError(ctx, &domain.ErrorEvent{EventBase: domain.NewEventBase(domain.EventError, "m"), Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "error=boom")
}

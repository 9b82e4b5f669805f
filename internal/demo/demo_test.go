package demo

import (
	"context"
	"testing"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	updates []*ui.Message
	replies []*ui.Message
	modals  []*ui.Modal
}

func (r *recorded) Update(_ context.Context, msg *ui.Message) error {
	r.updates = append(r.updates, msg)
	return nil
}

func (r *recorded) Reply(_ context.Context, msg *ui.Message, _ bool) error {
	r.replies = append(r.replies, msg)
	return nil
}

func (r *recorded) OpenModal(_ context.Context, modal *ui.Modal) error {
	r.modals = append(r.modals, modal)
	return nil
}

func (r *recorded) Send(context.Context, string, *ui.Message) error { return nil }

func setup(t *testing.T) (*espalier.Engine, *Menus) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, Seed(context.Background(), store, DefaultSeed))

	e := espalier.New()
	m, err := Register(e, store, Keys(DefaultSeed), 5)
	require.NoError(t, err)
	return e, m
}

func find(msg *ui.Message, name string) domain.Widget {
	for _, row := range msg.Rows {
		for _, w := range row {
			if _, n, _, _ := codec.ParseID(w.CustomID); n == name {
				return w
			}
		}
	}
	return domain.Widget{}
}

func TestCatalog_DefaultKey(t *testing.T) {
	_, m := setup(t)
	assert.Equal(t, "list.catalog", m.Catalog.ID())

	msg, err := m.Catalog.Render(context.Background(), m.Catalog.NewState())
	require.NoError(t, err)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "apple\nbanana\ncherry\ndate\nelderberry", msg.Embeds[0].Description)
	assert.Equal(t, "📖 1/3", find(msg, "page").Label)

	pick := find(msg, "source")
	require.Len(t, pick.Options, 2)
	assert.True(t, pick.Options[0].Default)
	assert.Equal(t, "fruits", pick.Options[0].Value)
}

func TestCatalog_SwitchKey(t *testing.T) {
	e, m := setup(t)
	msg, err := m.Catalog.Render(context.Background(), m.Catalog.NewState())
	require.NoError(t, err)

	r := &recorded{}
	in := &domain.Interaction{
		Kind:         domain.InteractionComponent,
		CustomID:     find(msg, "source").CustomID,
		Values:       []string{"planets"},
		ComponentIDs: msg.CustomIDs(),
	}
	require.NoError(t, e.Handle(context.Background(), in, r))
	require.Len(t, r.updates, 1)

	got := r.updates[0]
	assert.Equal(t, "Mercury\nVenus\nEarth\nMars\nJupiter", got.Embeds[0].Description)
	assert.Equal(t, "📖 1/2", find(got, "page").Label)
	assert.Equal(t, `list.catalog:first:{"key":"planets"}`, find(got, "first").CustomID)
}

func TestCatalog_UnknownKeyIsEmpty(t *testing.T) {
	_, m := setup(t)
	s := m.Catalog.NewState()
	s.SetString(FieldKey, "secrets")

	msg, err := m.Catalog.Render(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "No entries.", msg.Embeds[0].Description)
}

func TestCatalog_RejectsMistypedState(t *testing.T) {
	e, _ := setup(t)
	ctx := context.Background()

	for _, id := range []string{
		`list.catalog:next:{"key":7}`,
		`list.catalog:next:{"page":"2"}`,
	} {
		r := &recorded{}
		err := e.Handle(ctx, &domain.Interaction{Kind: domain.InteractionComponent, CustomID: id}, r)
		assert.ErrorIs(t, err, schema.ErrInvalidState, id)
		assert.Empty(t, r.updates, id)
	}

	r := &recorded{}
	require.NoError(t, e.Handle(ctx, &domain.Interaction{
		Kind:     domain.InteractionComponent,
		CustomID: `list.catalog:next:{"key":"planets","page":1}`,
	}, r))
	require.Len(t, r.updates, 1)
}

func TestFeedback_RequiresKey(t *testing.T) {
	e, _ := setup(t)
	err := e.Handle(context.Background(), &domain.Interaction{
		Kind:     domain.InteractionModalSubmit,
		CustomID: `feedback:{"page":2}`,
		Fields:   map[string]string{"comment:": "nice"},
	}, &recorded{})
	assert.ErrorIs(t, err, schema.ErrInvalidState)
}

func TestFeedback_OpenAndSubmit(t *testing.T) {
	e, m := setup(t)
	ctx := context.Background()
	r := &recorded{}

	msg, err := m.Catalog.Render(ctx, m.Catalog.NewState())
	require.NoError(t, err)
	next := &domain.Interaction{Kind: domain.InteractionComponent, CustomID: find(msg, "next").CustomID, ComponentIDs: msg.CustomIDs()}
	require.NoError(t, e.Handle(ctx, next, r))
	msg = r.updates[0]

	open := &domain.Interaction{Kind: domain.InteractionComponent, CustomID: find(msg, "comment").CustomID, ComponentIDs: msg.CustomIDs()}
	require.NoError(t, e.Handle(ctx, open, r))
	require.Len(t, r.modals, 1)
	assert.Len(t, r.updates, 1, "opening the modal does not update the message")

	modal := r.modals[0]
	assert.Equal(t, `feedback:{"key":"fruits","page":2}`, modal.CustomID)
	assert.Equal(t, "Feedback on fruits", modal.Title)

	submit := &domain.Interaction{
		Kind:     domain.InteractionModalSubmit,
		CustomID: modal.CustomID,
		Fields:   map[string]string{modal.Inputs[0].CustomID: "more berries"},
	}
	require.NoError(t, e.Handle(ctx, submit, r))
	require.Len(t, r.replies, 1)
	assert.Equal(t, "Thanks for the feedback on fruits, page 2.", r.replies[0].Content)
}

func TestRegister_NoKeys(t *testing.T) {
	_, err := Register(espalier.New(), memory.NewStore(), nil, 5)
	assert.Error(t, err)
}

func TestSeed_ReplacesEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Append(ctx, "fruits", "stale"))

	require.NoError(t, Seed(ctx, store, map[string][]string{"fruits": {"fresh"}}))
	entries, err := store.Entries(ctx, "fruits")
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, entries)
}

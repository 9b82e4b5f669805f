package ui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/value"
)

// BodyFunc renders the non-interactive part of a message.
type BodyFunc func(ctx context.Context, s *domain.State) (Body, error)

// StaticBody always renders b.
func StaticBody(b Body) BodyFunc {
	return func(context.Context, *domain.State) (Body, error) { return b, nil }
}

// MessageMenu is a menu rendered as a persistent message with component rows.
type MessageMenu struct {
	menuCore
	body        BodyFunc
	rows        []Row
	interactive []Component
	byName      map[string]Component
	slots       []codec.Slot
}

// NewMessageMenu validates and builds a message menu. Component names must
// be unique and free of the identifier delimiter.
func NewMessageMenu(id string, body BodyFunc, rows []Row, opts ...MenuOption) (*MessageMenu, error) {
	core, err := newMenuCore(id, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) > MaxRows {
		return nil, fmt.Errorf("menu %s: %d rows, at most %d allowed", id, len(rows), MaxRows)
	}
	if body == nil {
		body = StaticBody(Body{})
	}

	m := &MessageMenu{
		menuCore: core,
		body:     body,
		rows:     append([]Row(nil), rows...),
		byName:   make(map[string]Component),
	}
	for i, row := range rows {
		if len(row.components) == 0 {
			return nil, fmt.Errorf("menu %s: row %d is empty", id, i)
		}
		if space := row.Space(); space > RowCapacity {
			return nil, fmt.Errorf("menu %s: row %d: %w: %d of %d", id, i, ErrRowCapacity, space, RowCapacity)
		}
		for _, c := range row.components {
			name := c.Name()
			if err := codec.ValidateName(name); err != nil {
				return nil, fmt.Errorf("%w: menu %s: component: %v", domain.ErrInvalidIdentifier, id, err)
			}
			if _, dup := m.byName[name]; dup {
				return nil, fmt.Errorf("%w: menu %s: duplicate component %q", domain.ErrInvalidIdentifier, id, name)
			}
			m.byName[name] = c
			if c.MaxIDLength() > 0 {
				m.interactive = append(m.interactive, c)
				m.slots = append(m.slots, codec.Slot{Prefix: codec.Prefix(id, name), MaxLength: c.MaxIDLength()})
			}
		}
	}
	return m, nil
}

// Rows returns the rows of the menu.
func (m *MessageMenu) Rows() []Row { return append([]Row(nil), m.rows...) }

// Capacity is the number of characters of state the menu can carry.
func (m *MessageMenu) Capacity() int { return codec.Capacity(m.slots) }

// NewState returns an empty state bound to the menu's effects.
func (m *MessageMenu) NewState() *domain.State {
	return m.newState(nil)
}

// NewStateFrom returns a state holding a copy of data.
func (m *MessageMenu) NewStateFrom(data *value.Object) *domain.State {
	if data != nil {
		data = data.Clone()
	}
	return m.newState(data)
}

// Decode rebuilds the state from the identifiers of a rendered message.
// Identifiers of other menus are ignored. Fragments are joined in the
// menu's current component order.
func (m *MessageMenu) Decode(ids []string) (*domain.State, error) {
	data, err := m.decodeIDs(ids)
	if err != nil {
		return nil, err
	}
	return m.newState(data), nil
}

func (m *MessageMenu) decodeIDs(ids []string) (*value.Object, error) {
	fragments := make(map[string]string, len(ids))
	for _, id := range ids {
		menuID, name, fragment, ok := codec.ParseID(id)
		if !ok || menuID != m.id {
			continue
		}
		fragments[name] = fragment
	}
	var sb strings.Builder
	for _, c := range m.interactive {
		sb.WriteString(fragments[c.Name()])
	}
	return m.decodeData(sb.String())
}

// Render runs the cache initializer if it has not run yet, then builds the
// body and packs the state into the component identifiers.
func (m *MessageMenu) Render(ctx context.Context, s *domain.State) (*Message, error) {
	start := time.Now()
	if err := m.initCache(ctx, s); err != nil {
		return nil, err
	}
	body, err := m.body(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("menu %s: body: %w", m.id, err)
	}
	ids, size, err := m.pack(ctx, s, m.slots)
	if err != nil {
		return nil, err
	}

	msg := &Message{Body: body, Rows: make([][]Widget, 0, len(m.rows))}
	next := 0
	for _, row := range m.rows {
		widgets := make([]Widget, 0, len(row.components))
		for _, c := range row.components {
			id := ""
			if c.MaxIDLength() > 0 {
				id = ids[next]
				next++
			}
			widgets = append(widgets, c.Build(id, s))
		}
		msg.Rows = append(msg.Rows, widgets)
	}

	if h := m.hooks().OnRender; h != nil {
		h(ctx, &domain.RenderEvent{
			EventBase:  domain.NewEventBase(domain.EventRender, m.id),
			Components: len(m.byName),
			StateSize:  size,
			Capacity:   m.Capacity(),
			Duration:   time.Since(start),
		})
	}
	return msg, nil
}

// Display renders a fresh state prepared by init as a reply to the current
// interaction.
func (m *MessageMenu) Display(ctx context.Context, r Responder, init InitFunc, ephemeral bool) error {
	msg, err := m.renderFresh(ctx, init)
	if err != nil || msg == nil {
		return err
	}
	return r.Reply(ctx, msg, ephemeral)
}

// Send renders a fresh state prepared by init into channelID.
func (m *MessageMenu) Send(ctx context.Context, r Responder, channelID string, init InitFunc) error {
	msg, err := m.renderFresh(ctx, init)
	if err != nil || msg == nil {
		return err
	}
	return r.Send(ctx, channelID, msg)
}

func (m *MessageMenu) renderFresh(ctx context.Context, init InitFunc) (*Message, error) {
	s := m.newState(nil, domain.WithContext(ctx))
	if err := runInit(s, init); err != nil {
		if domain.IsStop(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("menu %s: init: %w", m.id, err)
	}
	return m.Render(ctx, s)
}

func (m *MessageMenu) serve(ctx context.Context, in *domain.Interaction, r Responder) error {
	if in.Kind != domain.InteractionComponent {
		return fmt.Errorf("menu %s: unexpected %s interaction", m.id, in.Kind)
	}
	_, name, _, ok := codec.ParseID(in.CustomID)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, in.CustomID)
	}
	component, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("menu %s: %w %q", m.id, domain.ErrUnknownComponent, name)
	}

	ids := in.ComponentIDs
	if len(ids) == 0 {
		ids = []string{in.CustomID}
	}
	data, err := m.decodeIDs(ids)
	if err != nil {
		return err
	}
	s := m.newState(data, domain.WithInteraction(in), domain.WithContext(ctx))
	m.fireDecode(ctx, name, utf8.RuneCountInString(s.Serialize()))

	if err := m.initCache(ctx, s); err != nil {
		return err
	}
	if h, ok := component.(Handler); ok {
		ev := &Event{State: s, Interaction: in, Responder: r, Component: name}
		if err := h.HandleInteraction(ctx, ev); err != nil {
			return err
		}
	}

	msg, err := m.Render(ctx, s)
	if err != nil {
		return err
	}
	m.logger().Debug("menu updated", "menu", m.id, "component", name)
	return r.Update(ctx, msg)
}

package ui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/domain"
)

// MaxModalInputs is the number of text inputs a modal may carry.
const MaxModalInputs = 5

// TitleFunc renders the title of a modal.
type TitleFunc func(s *domain.State) string

// StaticTitle always renders title.
func StaticTitle(title string) TitleFunc {
	return func(*domain.State) string { return title }
}

// ModalMenu is a menu rendered as a modal form. The modal identifier is
// "{menuId}:{fragment}" and each input identifier is "{name}:{fragment}".
type ModalMenu struct {
	menuCore
	title  TitleFunc
	inputs []*TextInput
	submit HandlerFunc
	slots  []codec.Slot
}

// NewModalMenu validates and builds a modal menu. submit runs when the
// form is submitted; it is responsible for any response.
func NewModalMenu(id string, title TitleFunc, inputs []*TextInput, submit HandlerFunc, opts ...MenuOption) (*ModalMenu, error) {
	core, err := newMenuCore(id, opts)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 || len(inputs) > MaxModalInputs {
		return nil, fmt.Errorf("menu %s: modal needs 1 to %d inputs, got %d", id, MaxModalInputs, len(inputs))
	}
	if title == nil {
		title = StaticTitle(id)
	}

	m := &ModalMenu{
		menuCore: core,
		title:    title,
		inputs:   append([]*TextInput(nil), inputs...),
		submit:   submit,
		slots:    []codec.Slot{{Prefix: id + codec.Delimiter, MaxLength: codec.MaxModalID}},
	}
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		name := in.Name()
		if err := codec.ValidateName(name); err != nil {
			return nil, fmt.Errorf("%w: menu %s: input: %v", domain.ErrInvalidIdentifier, id, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: menu %s: duplicate input %q", domain.ErrInvalidIdentifier, id, name)
		}
		seen[name] = true
		m.slots = append(m.slots, codec.Slot{Prefix: name + codec.Delimiter, MaxLength: in.MaxIDLength()})
	}
	return m, nil
}

// Capacity is the number of characters of state the modal can carry.
func (m *ModalMenu) Capacity() int { return codec.Capacity(m.slots) }

// NewState returns an empty state bound to the menu's effects.
func (m *ModalMenu) NewState() *domain.State { return m.newState(nil) }

// Render packs the state into the modal and input identifiers.
func (m *ModalMenu) Render(ctx context.Context, s *domain.State) (*Modal, error) {
	start := time.Now()
	if err := m.initCache(ctx, s); err != nil {
		return nil, err
	}
	ids, size, err := m.pack(ctx, s, m.slots)
	if err != nil {
		return nil, err
	}

	modal := &Modal{
		CustomID: ids[0],
		Title:    m.title(s),
		Inputs:   make([]Widget, 0, len(m.inputs)),
	}
	for i, in := range m.inputs {
		modal.Inputs = append(modal.Inputs, in.Build(ids[i+1], s))
	}

	if h := m.hooks().OnRender; h != nil {
		h(ctx, &domain.RenderEvent{
			EventBase:  domain.NewEventBase(domain.EventRender, m.id),
			Components: len(m.inputs),
			StateSize:  size,
			Capacity:   m.Capacity(),
			Duration:   time.Since(start),
		})
	}
	return modal, nil
}

// Decode rebuilds the state from a submitted modal identifier and the
// identifiers of its inputs.
func (m *ModalMenu) Decode(modalID string, inputIDs []string) (*domain.State, error) {
	var sb strings.Builder
	if err := m.collect(&sb, modalID, inputIDs); err != nil {
		return nil, err
	}
	data, err := m.decodeData(sb.String())
	if err != nil {
		return nil, err
	}
	return m.newState(data), nil
}

func (m *ModalMenu) collect(sb *strings.Builder, modalID string, inputIDs []string) error {
	menuID, fragment, ok := strings.Cut(modalID, codec.Delimiter)
	if !ok || menuID != m.id {
		return fmt.Errorf("%w: %q is not a %s modal", domain.ErrInvalidIdentifier, modalID, m.id)
	}
	sb.WriteString(fragment)

	fragments := make(map[string]string, len(inputIDs))
	for _, id := range inputIDs {
		if name, fragment, ok := codec.ParseField(id); ok {
			fragments[name] = fragment
		}
	}
	for _, in := range m.inputs {
		sb.WriteString(fragments[in.Name()])
	}
	return nil
}

// Open shows the modal for a fresh state prepared by init.
func (m *ModalMenu) Open(ctx context.Context, r Responder, init InitFunc) error {
	s := m.newState(nil, domain.WithContext(ctx))
	if err := runInit(s, init); err != nil {
		if domain.IsStop(err) {
			return nil
		}
		return fmt.Errorf("menu %s: init: %w", m.id, err)
	}
	modal, err := m.Render(ctx, s)
	if err != nil {
		return err
	}
	return r.OpenModal(ctx, modal)
}

func (m *ModalMenu) serve(ctx context.Context, in *domain.Interaction, r Responder) error {
	if in.Kind != domain.InteractionModalSubmit {
		return fmt.Errorf("menu %s: unexpected %s interaction", m.id, in.Kind)
	}
	inputIDs := in.ComponentIDs
	if len(inputIDs) == 0 {
		for id := range in.Fields {
			inputIDs = append(inputIDs, id)
		}
	}

	var sb strings.Builder
	if err := m.collect(&sb, in.CustomID, inputIDs); err != nil {
		return err
	}
	data, err := m.decodeData(sb.String())
	if err != nil {
		return err
	}
	s := m.newState(data, domain.WithInteraction(in), domain.WithContext(ctx))
	m.fireDecode(ctx, "", utf8.RuneCountInString(sb.String()))

	if err := m.initCache(ctx, s); err != nil {
		return err
	}
	if m.submit == nil {
		return nil
	}
	if err := m.submit(ctx, &Event{State: s, Interaction: in, Responder: r}); err != nil {
		return err
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("menu %s: %w", m.id, err)
	}
	m.logger().Debug("modal submitted", "menu", m.id)
	return nil
}

package ui

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/value"
)

// Rendered output types live in domain so adapters need not import ui.
type (
	Message      = domain.Message
	Modal        = domain.Modal
	Widget       = domain.Widget
	Body         = domain.Body
	Embed        = domain.Embed
	EmbedField   = domain.EmbedField
	SelectOption = domain.SelectOption
)

// Responder delivers rendered menus to the platform.
type Responder interface {
	// Update replaces the message the interaction came from.
	Update(ctx context.Context, msg *Message) error
	// Reply answers the interaction with a new message.
	Reply(ctx context.Context, msg *Message, ephemeral bool) error
	// OpenModal answers the interaction with a modal form.
	OpenModal(ctx context.Context, modal *Modal) error
	// Send posts a message to a channel outside the interaction.
	Send(ctx context.Context, channelID string, msg *Message) error
}

// Deferrer is implemented by responders that can acknowledge an interaction
// before the response is ready.
type Deferrer interface {
	Defer(ctx context.Context) error
}

// Event is what a handler sees: the decoded state, the triggering
// interaction and the responder of the current cycle.
type Event struct {
	State       *domain.State
	Interaction *domain.Interaction
	Responder   Responder
	Component   string
}

// Values returns the options chosen in a select.
func (e *Event) Values() []string {
	if e.Interaction == nil {
		return nil
	}
	return e.Interaction.Values
}

// Field returns the text submitted in the named modal input.
func (e *Event) Field(name string) (string, bool) {
	if e.Interaction == nil {
		return "", false
	}
	return e.Interaction.Field(name)
}

// HandlerFunc handles an interaction with a component or modal. Returning
// domain.ErrStop ends the cycle without output.
type HandlerFunc func(ctx context.Context, ev *Event) error

// Handler is implemented by components that react to interactions.
type Handler interface {
	HandleInteraction(ctx context.Context, ev *Event) error
}

// InitFunc prepares a fresh state before a menu is first displayed.
type InitFunc func(s *domain.State) error

// CacheInitFunc fills the render cache once per cycle, before handlers run.
type CacheInitFunc func(ctx context.Context, s *domain.State) error

// EffectFunc reacts to a change of a state field.
type EffectFunc func(s *domain.State, name string, old, new value.Value)

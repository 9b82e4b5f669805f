package ui

import (
	"context"

	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/google/uuid"
)

// Component is an element of a menu.
type Component interface {
	// Name identifies the component within its menu.
	Name() string
	// RequiredSpace is the share of a row the component occupies, out of RowCapacity.
	RequiredSpace() int
	// MaxIDLength is the platform cap on the component identifier. Zero
	// means the component is not interactive and stores no state.
	MaxIDLength() int
	// Build renders the component with its packed identifier.
	Build(id string, s *domain.State) Widget
}

// Button is a clickable button.
type Button struct {
	name     string
	label    Label
	style    domain.ButtonStyle
	disabled domain.Condition
	onClick  HandlerFunc
}

// NewButton creates a primary button. onClick may be nil.
func NewButton(name string, label Label, onClick HandlerFunc) *Button {
	return &Button{name: name, label: label, style: domain.StylePrimary, onClick: onClick}
}

// WithStyle sets the button style.
func (b *Button) WithStyle(style domain.ButtonStyle) *Button {
	b.style = style
	return b
}

// DisabledWhen sets the disabled condition.
func (b *Button) DisabledWhen(c domain.Condition) *Button {
	b.disabled = c
	return b
}

func (b *Button) Name() string       { return b.name }
func (b *Button) RequiredSpace() int { return 1 }
func (b *Button) MaxIDLength() int   { return codec.MaxButtonID }

func (b *Button) Build(id string, s *domain.State) Widget {
	text, emoji := b.label.Resolve(s)
	return Widget{
		Kind:     domain.WidgetButton,
		CustomID: id,
		Label:    text,
		Emoji:    emoji,
		Style:    b.style,
		Disabled: b.disabled.Eval(s),
	}
}

func (b *Button) HandleInteraction(ctx context.Context, ev *Event) error {
	if b.onClick == nil {
		return nil
	}
	return b.onClick(ctx, ev)
}

// Link is a button that opens a URL. The platform does not report clicks,
// so it carries no state.
type Link struct {
	name     string
	url      func(*domain.State) string
	label    Label
	disabled domain.Condition
}

// NewLink creates a link to a fixed URL under a random name.
func NewLink(url string, label Label) *Link {
	return NewDynamicLink(func(*domain.State) string { return url }, label)
}

// NewDynamicLink creates a link whose URL is derived from the state.
func NewDynamicLink(url func(*domain.State) string, label Label) *Link {
	return &Link{name: uuid.NewString(), url: url, label: label}
}

// Named replaces the generated name.
func (l *Link) Named(name string) *Link {
	l.name = name
	return l
}

func (l *Link) DisabledWhen(c domain.Condition) *Link {
	l.disabled = c
	return l
}

func (l *Link) Name() string       { return l.name }
func (l *Link) RequiredSpace() int { return 1 }
func (l *Link) MaxIDLength() int   { return 0 }

func (l *Link) Build(_ string, s *domain.State) Widget {
	text, emoji := l.label.Resolve(s)
	return Widget{
		Kind:     domain.WidgetLink,
		Label:    text,
		Emoji:    emoji,
		URL:      l.url(s),
		Disabled: l.disabled.Eval(s),
	}
}

// Select is a string select menu. It fills a whole row.
type Select struct {
	name        string
	options     func(*domain.State) []SelectOption
	placeholder string
	minValues   int
	maxValues   int
	disabled    domain.Condition
	onSelect    HandlerFunc
}

// NewSelect creates a single-choice select. The handler reads the choice
// from Event.Values.
func NewSelect(name string, options func(*domain.State) []SelectOption, onSelect HandlerFunc) *Select {
	return &Select{name: name, options: options, minValues: 1, maxValues: 1, onSelect: onSelect}
}

// StaticOptions returns a fixed option set.
func StaticOptions(opts ...SelectOption) func(*domain.State) []SelectOption {
	return func(*domain.State) []SelectOption { return opts }
}

func (m *Select) Placeholder(text string) *Select {
	m.placeholder = text
	return m
}

// Range sets how many options may be chosen.
func (m *Select) Range(minValues, maxValues int) *Select {
	m.minValues, m.maxValues = minValues, maxValues
	return m
}

func (m *Select) DisabledWhen(c domain.Condition) *Select {
	m.disabled = c
	return m
}

func (m *Select) Name() string       { return m.name }
func (m *Select) RequiredSpace() int { return RowCapacity }
func (m *Select) MaxIDLength() int   { return codec.MaxSelectID }

func (m *Select) Build(id string, s *domain.State) Widget {
	opts := m.options(s)
	maxValues := m.maxValues
	if maxValues > len(opts) {
		maxValues = len(opts)
	}
	return Widget{
		Kind:        domain.WidgetSelect,
		CustomID:    id,
		Placeholder: m.placeholder,
		Options:     opts,
		MinValues:   min(m.minValues, maxValues),
		MaxValues:   maxValues,
		Disabled:    m.disabled.Eval(s),
	}
}

func (m *Select) HandleInteraction(ctx context.Context, ev *Event) error {
	if m.onSelect == nil {
		return nil
	}
	return m.onSelect(ctx, ev)
}

// TextInput is a field of a modal. It fills a whole row.
type TextInput struct {
	name        string
	label       string
	style       domain.TextInputStyle
	placeholder string
	prefill     func(*domain.State) string
	required    bool
	minLength   int
	maxLength   int
}

// NewTextInput creates a required single-line input.
func NewTextInput(name, label string) *TextInput {
	return &TextInput{name: name, label: label, style: domain.TextShort, required: true}
}

func (t *TextInput) Paragraph() *TextInput {
	t.style = domain.TextParagraph
	return t
}

func (t *TextInput) Placeholder(text string) *TextInput {
	t.placeholder = text
	return t
}

// Prefill derives the initial text from the state.
func (t *TextInput) Prefill(fn func(*domain.State) string) *TextInput {
	t.prefill = fn
	return t
}

func (t *TextInput) Optional() *TextInput {
	t.required = false
	return t
}

func (t *TextInput) Length(minLength, maxLength int) *TextInput {
	t.minLength, t.maxLength = minLength, maxLength
	return t
}

func (t *TextInput) Name() string       { return t.name }
func (t *TextInput) RequiredSpace() int { return RowCapacity }
func (t *TextInput) MaxIDLength() int   { return codec.MaxTextInputID }

func (t *TextInput) Build(id string, s *domain.State) Widget {
	w := Widget{
		Kind:        domain.WidgetTextInput,
		CustomID:    id,
		Label:       t.label,
		TextStyle:   t.style,
		Placeholder: t.placeholder,
		Required:    t.required,
		MinLength:   t.minLength,
		MaxLength:   t.maxLength,
	}
	if t.prefill != nil {
		w.Value = t.prefill(s)
	}
	return w
}

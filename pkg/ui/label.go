package ui

import "github.com/aretw0/espalier/pkg/domain"

// Label is the text and emoji shown on a component, fixed or derived from
// the state at render time.
type Label struct {
	text    string
	emoji   string
	dynamic func(*domain.State) (string, string)
}

// Text is a fixed text label.
func Text(text string) Label { return Label{text: text} }

// Emoji is a fixed emoji-only label.
func Emoji(emoji string) Label { return Label{emoji: emoji} }

// TextEmoji is a fixed label with both parts.
func TextEmoji(text, emoji string) Label { return Label{text: text, emoji: emoji} }

// Dynamic derives the label text from the state.
func Dynamic(fn func(s *domain.State) string) Label {
	return Label{dynamic: func(s *domain.State) (string, string) { return fn(s), "" }}
}

// DynamicEmoji derives text and emoji from the state.
func DynamicEmoji(fn func(s *domain.State) (text, emoji string)) Label {
	return Label{dynamic: fn}
}

// Resolve returns the label for s.
func (l Label) Resolve(s *domain.State) (text, emoji string) {
	if l.dynamic != nil {
		return l.dynamic(s)
	}
	return l.text, l.emoji
}

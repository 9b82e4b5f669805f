package domain

import "strings"

// InteractionKind distinguishes component clicks from modal submissions.
type InteractionKind uint8

const (
	InteractionComponent InteractionKind = iota
	InteractionModalSubmit
)

func (k InteractionKind) String() string {
	if k == InteractionModalSubmit {
		return "modal_submit"
	}
	return "component"
}

// Interaction is a platform event normalized for the engine.
type Interaction struct {
	Kind InteractionKind

	// CustomID is the identifier of the clicked component or submitted modal.
	CustomID string

	// ComponentIDs holds every interactive identifier on the originating
	// message, or the text input identifiers of a submitted modal, in
	// platform order.
	ComponentIDs []string

	// Values are the selected options of a select component.
	Values []string

	// Fields maps text input custom ids to their submitted text.
	Fields map[string]string

	ID        string
	UserID    string
	GuildID   string
	ChannelID string
	MessageID string
	Locale    string

	// Raw is the platform payload, for handlers that need more.
	Raw any
}

// MenuID is the first segment of CustomID.
func (in *Interaction) MenuID() string {
	id, _, _ := strings.Cut(in.CustomID, ":")
	return id
}

// Field returns a submitted text input by component name.
func (in *Interaction) Field(name string) (string, bool) {
	for id, text := range in.Fields {
		if n, _, _ := strings.Cut(id, ":"); n == name {
			return text, true
		}
	}
	return "", false
}

package domain

// WidgetKind identifies a rendered component.
type WidgetKind uint8

const (
	WidgetButton WidgetKind = iota
	WidgetLink
	WidgetSelect
	WidgetTextInput
)

func (k WidgetKind) String() string {
	switch k {
	case WidgetButton:
		return "button"
	case WidgetLink:
		return "link"
	case WidgetSelect:
		return "select"
	case WidgetTextInput:
		return "text_input"
	default:
		return "unknown"
	}
}

type ButtonStyle uint8

const (
	StylePrimary ButtonStyle = iota + 1
	StyleSecondary
	StyleSuccess
	StyleDanger
)

type TextInputStyle uint8

const (
	TextShort TextInputStyle = iota + 1
	TextParagraph
)

type SelectOption struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

// Widget is a platform-neutral rendered component. Only the fields relevant
// to Kind are set.
type Widget struct {
	Kind     WidgetKind `json:"kind"`
	CustomID string     `json:"custom_id,omitempty"`
	Label    string     `json:"label,omitempty"`
	Emoji    string     `json:"emoji,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`

	Style ButtonStyle `json:"style,omitempty"`
	URL   string      `json:"url,omitempty"`

	Placeholder string         `json:"placeholder,omitempty"`
	Options     []SelectOption `json:"options,omitempty"`
	MinValues   int            `json:"min_values,omitempty"`
	MaxValues   int            `json:"max_values,omitempty"`

	TextStyle TextInputStyle `json:"text_style,omitempty"`
	Value     string         `json:"value,omitempty"`
	Required  bool           `json:"required,omitempty"`
	MinLength int            `json:"min_length,omitempty"`
	MaxLength int            `json:"max_length,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      string       `json:"footer,omitempty"`
}

// Body is the non-interactive part of a message.
type Body struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Message is a rendered message menu: a body and up to five rows.
type Message struct {
	Body
	Rows [][]Widget `json:"rows,omitempty"`
}

// CustomIDs lists the identifiers of interactive widgets in row order.
func (m *Message) CustomIDs() []string {
	var ids []string
	for _, row := range m.Rows {
		for _, w := range row {
			if w.CustomID != "" {
				ids = append(ids, w.CustomID)
			}
		}
	}
	return ids
}

// Modal is a rendered modal form.
type Modal struct {
	CustomID string   `json:"custom_id"`
	Title    string   `json:"title"`
	Inputs   []Widget `json:"inputs"`
}

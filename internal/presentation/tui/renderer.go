package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/aretw0/espalier/pkg/domain"
)

const defaultWordWrap = 80

// NewRenderer returns a function that renders markdown using glamour.
// Styles are detected from the terminal; output that is not a terminal
// gets the plain "notty" style.
func NewRenderer() func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(wordWrap())}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

func wordWrap() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWordWrap
	}
	return w
}

// Markdown describes a rendered message as markdown for terminal previews.
// Each row becomes a line of bracketed components; disabled components are
// struck through.
func Markdown(msg *domain.Message) string {
	var sb strings.Builder
	if msg.Content != "" {
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}

	for _, e := range msg.Embeds {
		if e.Title != "" {
			fmt.Fprintf(&sb, "### %s\n\n", e.Title)
		}
		if e.Description != "" {
			for _, line := range strings.Split(e.Description, "\n") {
				fmt.Fprintf(&sb, "> %s\n", line)
			}
			sb.WriteString("\n")
		}
		for _, f := range e.Fields {
			fmt.Fprintf(&sb, "- **%s**: %s\n", f.Name, f.Value)
		}
		if len(e.Fields) > 0 {
			sb.WriteString("\n")
		}
		if e.Footer != "" {
			fmt.Fprintf(&sb, "*%s*\n\n", e.Footer)
		}
	}

	for _, row := range msg.Rows {
		parts := make([]string, 0, len(row))
		for _, w := range row {
			parts = append(parts, widget(w))
		}
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteString("\n\n")
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// ModalMarkdown describes a rendered modal as markdown.
func ModalMarkdown(m *domain.Modal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", m.Title)
	for _, in := range m.Inputs {
		label := in.Label
		if in.Required {
			label += " *"
		}
		if in.Value == "" {
			fmt.Fprintf(&sb, "- **%s**: _%s_\n", label, in.Placeholder)
			continue
		}
		fmt.Fprintf(&sb, "- **%s**: `%s`\n", label, in.Value)
	}
	return sb.String()
}

func widget(w domain.Widget) string {
	label := w.Label
	if w.Emoji != "" {
		label = strings.TrimSpace(w.Emoji + " " + label)
	}

	var s string
	switch w.Kind {
	case domain.WidgetLink:
		s = fmt.Sprintf("[%s](%s)", label, w.URL)
	case domain.WidgetSelect:
		s = fmt.Sprintf("`[%s ▾]`", selectLabel(w))
	default:
		s = fmt.Sprintf("`[%s]`", label)
	}

	if w.Disabled {
		return "~~" + s + "~~"
	}
	return s
}

func selectLabel(w domain.Widget) string {
	var picked []string
	for _, o := range w.Options {
		if o.Default {
			picked = append(picked, o.Label)
		}
	}
	if len(picked) > 0 {
		return strings.Join(picked, ", ")
	}
	return w.Placeholder
}

package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/espalier/pkg/domain"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "|_____|___/")
	assert.Contains(t, out, "v1.2.3")
}

func TestMarkdown(t *testing.T) {
	msg := &domain.Message{
		Body: domain.Body{
			Content: "Fruits",
			Embeds: []domain.Embed{{
				Title:       "Page",
				Description: "apple\nbanana",
				Fields:      []domain.EmbedField{{Name: "Total", Value: "5"}},
				Footer:      "5 entries",
			}},
		},
		Rows: [][]domain.Widget{
			{
				{Kind: domain.WidgetButton, Label: "First", Emoji: "⏪", Disabled: true},
				{Kind: domain.WidgetButton, Label: "Next"},
				{Kind: domain.WidgetLink, Label: "Docs", URL: "https://example.com"},
			},
			{
				{Kind: domain.WidgetSelect, Placeholder: "Pick one"},
				{Kind: domain.WidgetSelect, Options: []domain.SelectOption{
					{Label: "A", Default: true}, {Label: "B"}, {Label: "C", Default: true},
				}},
			},
		},
	}

	want := "Fruits\n\n" +
		"### Page\n\n" +
		"> apple\n> banana\n\n" +
		"- **Total**: 5\n\n" +
		"*5 entries*\n\n" +
		"~~`[⏪ First]`~~ `[Next]` [Docs](https://example.com)\n\n" +
		"`[Pick one ▾]` `[A, C ▾]`\n"
	assert.Equal(t, want, Markdown(msg))
}

func TestModalMarkdown(t *testing.T) {
	m := &domain.Modal{
		Title: "Feedback",
		Inputs: []domain.Widget{
			{Kind: domain.WidgetTextInput, Label: "Comment", Placeholder: "Tell us", Required: true},
			{Kind: domain.WidgetTextInput, Label: "Name", Value: "anon"},
		},
	}
	want := "## Feedback\n\n" +
		"- **Comment ***: _Tell us_\n" +
		"- **Name**: `anon`\n"
	assert.Equal(t, want, ModalMarkdown(m))
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title")
	assert.NoError(t, err)
	assert.Contains(t, out, "Title")
}

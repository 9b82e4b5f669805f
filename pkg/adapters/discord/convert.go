// Package discord connects menus to Discord through discordgo: it converts
// rendered messages and modals to discordgo payloads, normalizes incoming
// interactions and answers them through a session.
package discord

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// ToComponents converts rendered rows to action rows.
func ToComponents(rows [][]domain.Widget) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		components := make([]discordgo.MessageComponent, 0, len(row))
		for _, w := range row {
			if c := ToComponent(w); c != nil {
				components = append(components, c)
			}
		}
		if len(components) > 0 {
			out = append(out, discordgo.ActionsRow{Components: components})
		}
	}
	return out
}

// ToComponent converts a single widget. Unknown kinds yield nil.
func ToComponent(w domain.Widget) discordgo.MessageComponent {
	switch w.Kind {
	case domain.WidgetButton:
		return discordgo.Button{
			CustomID: w.CustomID,
			Label:    w.Label,
			Emoji:    emoji(w.Emoji),
			Style:    buttonStyle(w.Style),
			Disabled: w.Disabled,
		}
	case domain.WidgetLink:
		return discordgo.Button{
			URL:      w.URL,
			Label:    w.Label,
			Emoji:    emoji(w.Emoji),
			Style:    discordgo.LinkButton,
			Disabled: w.Disabled,
		}
	case domain.WidgetSelect:
		opts := make([]discordgo.SelectMenuOption, len(w.Options))
		for i, o := range w.Options {
			opts[i] = discordgo.SelectMenuOption{
				Label:       o.Label,
				Value:       o.Value,
				Description: o.Description,
				Emoji:       emoji(o.Emoji),
				Default:     o.Default,
			}
		}
		minValues := w.MinValues
		return discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    w.CustomID,
			Placeholder: w.Placeholder,
			MinValues:   &minValues,
			MaxValues:   w.MaxValues,
			Options:     opts,
			Disabled:    w.Disabled,
		}
	case domain.WidgetTextInput:
		style := discordgo.TextInputShort
		if w.TextStyle == domain.TextParagraph {
			style = discordgo.TextInputParagraph
		}
		return discordgo.TextInput{
			CustomID:    w.CustomID,
			Label:       w.Label,
			Style:       style,
			Placeholder: w.Placeholder,
			Value:       w.Value,
			Required:    w.Required,
			MinLength:   w.MinLength,
			MaxLength:   w.MaxLength,
		}
	}
	return nil
}

func buttonStyle(s domain.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case domain.StyleSecondary:
		return discordgo.SecondaryButton
	case domain.StyleSuccess:
		return discordgo.SuccessButton
	case domain.StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}

func emoji(name string) *discordgo.ComponentEmoji {
	if name == "" {
		return nil
	}
	return &discordgo.ComponentEmoji{Name: name}
}

// ToEmbeds converts rendered embeds.
func ToEmbeds(embeds []domain.Embed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, e := range embeds {
		me := &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			Color:       e.Color,
		}
		for _, f := range e.Fields {
			me.Fields = append(me.Fields, &discordgo.MessageEmbedField{
				Name:   f.Name,
				Value:  f.Value,
				Inline: f.Inline,
			})
		}
		if e.Footer != "" {
			me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
		}
		out = append(out, me)
	}
	return out
}

// ToResponseData converts a rendered message to an interaction response
// body.
func ToResponseData(msg *domain.Message) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    msg.Content,
		Embeds:     ToEmbeds(msg.Embeds),
		Components: ToComponents(msg.Rows),
	}
}

// ToModal converts a rendered modal. Every input takes its own row.
func ToModal(modal *domain.Modal) *discordgo.InteractionResponseData {
	rows := make([][]domain.Widget, len(modal.Inputs))
	for i, in := range modal.Inputs {
		rows[i] = []domain.Widget{in}
	}
	return &discordgo.InteractionResponseData{
		CustomID:   modal.CustomID,
		Title:      modal.Title,
		Components: ToComponents(rows),
	}
}

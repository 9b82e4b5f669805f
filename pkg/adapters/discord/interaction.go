package discord

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/bwmarrin/discordgo"
)

// FromInteraction normalizes a component or modal submit interaction.
// Other interaction types report false.
func FromInteraction(i *discordgo.Interaction) (*domain.Interaction, bool) {
	if i == nil {
		return nil, false
	}

	in := &domain.Interaction{
		ID:        i.ID,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Locale:    string(i.Locale),
		Raw:       i,
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		in.UserID = i.Member.User.ID
	case i.User != nil:
		in.UserID = i.User.ID
	}
	if i.Message != nil {
		in.MessageID = i.Message.ID
	}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		in.Kind = domain.InteractionComponent
		in.CustomID = data.CustomID
		in.Values = data.Values
		if i.Message != nil {
			walk(i.Message.Components, func(c discordgo.MessageComponent) {
				if id := customID(c); id != "" {
					in.ComponentIDs = append(in.ComponentIDs, id)
				}
			})
		}
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		in.Kind = domain.InteractionModalSubmit
		in.CustomID = data.CustomID
		in.Fields = make(map[string]string)
		walk(data.Components, func(c discordgo.MessageComponent) {
			var ti discordgo.TextInput
			switch v := c.(type) {
			case *discordgo.TextInput:
				ti = *v
			case discordgo.TextInput:
				ti = v
			default:
				return
			}
			in.ComponentIDs = append(in.ComponentIDs, ti.CustomID)
			in.Fields[ti.CustomID] = ti.Value
		})
	default:
		return nil, false
	}
	return in, true
}

// walk visits the leaf components of a component tree. Decoded payloads
// hold pointers and locally built ones hold values, so both are accepted.
func walk(components []discordgo.MessageComponent, fn func(discordgo.MessageComponent)) {
	for _, c := range components {
		switch row := c.(type) {
		case *discordgo.ActionsRow:
			walk(row.Components, fn)
		case discordgo.ActionsRow:
			walk(row.Components, fn)
		default:
			fn(c)
		}
	}
}

func customID(c discordgo.MessageComponent) string {
	switch v := c.(type) {
	case *discordgo.Button:
		return v.CustomID
	case discordgo.Button:
		return v.CustomID
	case *discordgo.SelectMenu:
		return v.CustomID
	case discordgo.SelectMenu:
		return v.CustomID
	}
	return ""
}

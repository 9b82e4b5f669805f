package discord

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_CounterRoundTrip(t *testing.T) {
	inc := ui.NewButton("inc", ui.Text("+1"), func(_ context.Context, ev *ui.Event) error {
		ev.State.UpdateInt("n", 0, func(n int) int { return n + 1 })
		return nil
	})
	body := func(_ context.Context, s *domain.State) (ui.Body, error) {
		return ui.Body{Content: "clicks"}, nil
	}
	menu, err := ui.NewMessageMenu("counter", body, []ui.Row{ui.MustRow(inc)})
	require.NoError(t, err)

	menus := ui.NewManager()
	require.NoError(t, menus.Register(menu))

	rendered, err := menu.Render(context.Background(), menu.NewState())
	require.NoError(t, err)

	s := &fakeSession{}
	h := newHandler(menus)
	for i := 0; i < 2; i++ {
		data := ToResponseData(rendered)
		h.serve(s, &discordgo.Interaction{
			Type:    discordgo.InteractionMessageComponent,
			Data:    discordgo.MessageComponentInteractionData{CustomID: rendered.CustomIDs()[0]},
			Message: &discordgo.Message{Components: data.Components},
		})
		last := s.responses[len(s.responses)-1]
		require.Equal(t, discordgo.InteractionResponseUpdateMessage, last.Type)

		button := last.Data.Components[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
		rendered = &domain.Message{Rows: [][]domain.Widget{{{Kind: domain.WidgetButton, CustomID: button.CustomID}}}}
	}

	assert.Equal(t, `counter:inc:{"n":2}`, rendered.CustomIDs()[0])
}

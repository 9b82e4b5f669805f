/*
Package espalier renders stateful chat menus whose whole state lives in the
custom ids of their components.

A menu is a body plus rows of buttons, links and selects (or a modal with
text inputs). Every render serializes the menu state to canonical JSON and
splits it across the custom ids of the interactive components; when a user
clicks, the fragments are collected from the message again, the state is
decoded, the component's handler runs and the menu is rendered anew. No
server-side session store is involved, so any replica can answer any
interaction.

# Key Features

  - Capacity-aware packing: ids are capped per component kind, and a state
    that does not fit is a render error rather than silent truncation.
  - Field effects: reactions to state changes run synchronously, bounded by
    a depth cap.
  - Paginated lists: the list package fetches entries once per interaction
    and keeps only the page number in the state.
  - Hexagonal adapters: Discord gateway and webhook transports, Redis, BoltDB
    and in-memory entry sources, Prometheus metrics.

# Usage

	eng := espalier.New(espalier.WithLogger(logger))

	inc := ui.NewButton("inc", ui.Text("+1"), func(ctx context.Context, ev *ui.Event) error {
		ev.State.UpdateInt("n", 0, func(n int) int { return n + 1 })
		return nil
	})
	counter, _ := ui.NewMessageMenu("counter", body, []ui.Row{ui.MustRow(inc)})
	_ = eng.Register(counter)

	session.AddHandler(discord.Handler(eng.Menus()))
*/
package espalier

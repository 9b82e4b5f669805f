/*
Package ui defines menus and runs the interaction cycle.

A MessageMenu is a body plus up to five rows of components. Its state is not
kept on the server: on every render the state document is serialized and
split across the identifiers of the interactive components, and on the next
interaction it is read back from the identifiers the platform returns.

	counter, err := ui.NewMessageMenu("counter",
		func(ctx context.Context, s *domain.State) (ui.Body, error) {
			return ui.Body{Content: fmt.Sprintf("Count: %d", s.IntOr("n", 0))}, nil
		},
		[]ui.Row{ui.MustRow(
			ui.NewButton("inc", ui.Text("+1"), func(ctx context.Context, ev *ui.Event) error {
				ev.State.UpdateInt("n", 0, func(n int) int { return n + 1 })
				return nil
			}),
		)},
	)

	manager := ui.NewManager(ui.WithLogger(logger))
	_ = manager.Register(counter)

	// later, for each platform event:
	err = manager.Handle(ctx, interaction, responder)

The cycle for a component interaction is decode, cache init, handle (with
effects firing on every changed field), render, encode and update. A modal
submission stops after its submit handler.
*/
package ui

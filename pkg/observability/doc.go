/*
Package observability turns menu lifecycle events into metrics and logs.

Both Metrics.Hooks and LogHooks return domain.LifecycleHooks, so they can be
combined and handed to ui.WithHooks:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	menus := ui.NewManager(
		ui.WithHooks(metrics.Hooks()),
		ui.WithHooks(observability.LogHooks(logger)),
	)
*/
package observability

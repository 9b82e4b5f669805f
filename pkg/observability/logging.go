package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/espalier/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event. Routine events go
// to debug, overflows to warn and failures to error.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDecode: func(ctx context.Context, e *domain.DecodeEvent) {
			logger.DebugContext(ctx, "state decoded",
				"menu", e.MenuID,
				"component", e.Component,
				"state_size", e.StateSize,
			)
		},
		OnRender: func(ctx context.Context, e *domain.RenderEvent) {
			logger.DebugContext(ctx, "menu rendered",
				"menu", e.MenuID,
				"components", e.Components,
				"state_size", e.StateSize,
				"capacity", e.Capacity,
				"duration", e.Duration,
			)
		},
		OnEffect: func(ctx context.Context, e *domain.EffectEvent) {
			logger.DebugContext(ctx, "effect dispatched", "menu", e.MenuID, "field", e.Field, "depth", e.Depth)
		},
		OnOverflow: func(ctx context.Context, e *domain.OverflowEvent) {
			logger.WarnContext(ctx, "state overflow",
				"menu", e.MenuID,
				"size", e.Size,
				"capacity", e.Capacity,
				"leftover", e.Leftover,
			)
		},
		OnDrop: func(ctx context.Context, e *domain.DropEvent) {
			logger.DebugContext(ctx, "interaction dropped", "custom_id", e.CustomID, "reason", e.Reason)
		},
		OnError: func(ctx context.Context, e *domain.ErrorEvent) {
			logger.ErrorContext(ctx, "interaction failed", "menu", e.MenuID, "component", e.Component, "error", e.Err)
		},
	}
}

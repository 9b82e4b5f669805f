package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/domain"
)

// Manager routes interactions to registered menus by menu id and runs the
// decode, handle, render and send cycle.
type Manager struct {
	mu    sync.RWMutex
	menus map[string]Menu
	order []string

	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	deferAfter time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks. Repeated use merges them.
func WithHooks(hooks domain.LifecycleHooks) ManagerOption {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// WithDeferAfter acknowledges an interaction when its cycle has not
// responded within d and the responder implements Deferrer.
func WithDeferAfter(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.deferAfter = d
	}
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		menus:  make(map[string]Menu),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Logger returns the manager's logger.
func (m *Manager) Logger() *slog.Logger { return m.logger }

// Register adds menu. Ids must be unique within the manager.
func (m *Manager) Register(menu Menu) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := menu.ID()
	if _, exists := m.menus[id]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateMenu, id)
	}
	menu.attach(m)
	m.menus[id] = menu
	m.order = append(m.order, id)
	m.logger.Debug("menu registered", "menu", id)
	return nil
}

// Get looks up a menu by id.
func (m *Manager) Get(id string) (Menu, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	menu, ok := m.menus[id]
	return menu, ok
}

// Menus returns the registered menus in registration order.
func (m *Manager) Menus() []Menu {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Menu, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.menus[id])
	}
	return out
}

// Handle runs one interaction. Interactions for unknown menus are dropped
// and ErrStop ends the cycle quietly; both return nil.
func (m *Manager) Handle(ctx context.Context, in *domain.Interaction, r Responder) error {
	menuID := in.MenuID()
	menu, ok := m.Get(menuID)
	if !ok {
		m.logger.Debug("dropping interaction", "custom_id", in.CustomID, "reason", "unknown menu")
		if h := m.hooks.OnDrop; h != nil {
			h(ctx, &domain.DropEvent{
				EventBase: domain.NewEventBase(domain.EventDrop, menuID),
				CustomID:  in.CustomID,
				Reason:    "unknown menu",
			})
		}
		return nil
	}

	if d, ok := r.(Deferrer); ok && m.deferAfter > 0 {
		dr := newDeferringResponder(ctx, r, d, m.deferAfter, m.logger)
		defer dr.stop()
		r = dr
	}

	err := menu.serve(ctx, in, r)
	switch {
	case err == nil:
		return nil
	case domain.IsStop(err):
		m.logger.Debug("interaction stopped", "menu", menuID, "custom_id", in.CustomID)
		return nil
	}

	m.logger.Error("interaction failed", "menu", menuID, "custom_id", in.CustomID, "error", err)
	if h := m.hooks.OnError; h != nil {
		_, component, _, _ := codec.ParseID(in.CustomID)
		h(ctx, &domain.ErrorEvent{
			EventBase: domain.NewEventBase(domain.EventError, menuID),
			Component: component,
			Err:       err,
		})
	}
	return err
}

// deferringResponder acknowledges the interaction once if no response was
// sent before the deadline.
type deferringResponder struct {
	Responder
	mu       sync.Mutex
	timer    *time.Timer
	answered bool
}

func newDeferringResponder(ctx context.Context, r Responder, d Deferrer, after time.Duration, logger *slog.Logger) *deferringResponder {
	dr := &deferringResponder{Responder: r}
	dr.timer = time.AfterFunc(after, func() {
		dr.mu.Lock()
		defer dr.mu.Unlock()
		if dr.answered {
			return
		}
		dr.answered = true
		if err := d.Defer(ctx); err != nil {
			logger.Warn("deferring interaction failed", "error", err)
		}
	})
	return dr
}

func (dr *deferringResponder) answer() {
	dr.mu.Lock()
	dr.answered = true
	dr.mu.Unlock()
	dr.timer.Stop()
}

func (dr *deferringResponder) stop() { dr.timer.Stop() }

func (dr *deferringResponder) Update(ctx context.Context, msg *Message) error {
	dr.answer()
	return dr.Responder.Update(ctx, msg)
}

func (dr *deferringResponder) Reply(ctx context.Context, msg *Message, ephemeral bool) error {
	dr.answer()
	return dr.Responder.Reply(ctx, msg, ephemeral)
}

func (dr *deferringResponder) OpenModal(ctx context.Context, modal *Modal) error {
	dr.answer()
	return dr.Responder.OpenModal(ctx, modal)
}

package espalier

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/list"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine is the high-level entry point of the library. It wires a menu
// manager with the list layer, logging and metrics.
type Engine struct {
	menus   *ui.Manager
	lists   *list.Manager
	metrics *observability.Metrics
	logger  *slog.Logger
}

type config struct {
	logger     *slog.Logger
	hooks      []domain.LifecycleHooks
	registerer prometheus.Registerer
	logEvents  bool
	deferAfter time.Duration
	listOpts   []ui.MenuOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*config)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated use adds hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = append(c.hooks, hooks)
	}
}

// WithMetrics records Prometheus metrics into reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithEventLogging logs every lifecycle event through the engine logger.
func WithEventLogging() Option {
	return func(c *config) {
		c.logEvents = true
	}
}

// WithDeferAfter acknowledges slow interactions, see ui.WithDeferAfter.
func WithDeferAfter(d time.Duration) Option {
	return func(c *config) {
		c.deferAfter = d
	}
}

// WithListMenuOptions applies opts to every list menu.
func WithListMenuOptions(opts ...ui.MenuOption) Option {
	return func(c *config) {
		c.listOpts = append(c.listOpts, opts...)
	}
}

// New initializes an Engine with no menus.
func New(opts ...Option) *Engine {
	cfg := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{logger: cfg.logger}
	managerOpts := []ui.ManagerOption{
		ui.WithLogger(cfg.logger),
		ui.WithDeferAfter(cfg.deferAfter),
	}
	if cfg.registerer != nil {
		e.metrics = observability.NewMetrics(cfg.registerer)
		managerOpts = append(managerOpts, ui.WithHooks(e.metrics.Hooks()))
	}
	if cfg.logEvents {
		managerOpts = append(managerOpts, ui.WithHooks(observability.LogHooks(cfg.logger)))
	}
	for _, h := range cfg.hooks {
		managerOpts = append(managerOpts, ui.WithHooks(h))
	}

	e.menus = ui.NewManager(managerOpts...)
	e.lists = list.NewManager(e.menus, list.WithMenuOptions(cfg.listOpts...))
	return e
}

// Menus returns the menu manager.
func (e *Engine) Menus() *ui.Manager { return e.menus }

// Lists returns the list layer.
func (e *Engine) Lists() *list.Manager { return e.lists }

// Metrics returns the collectors, or nil without WithMetrics.
func (e *Engine) Metrics() *observability.Metrics { return e.metrics }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Register adds a menu built with the ui package.
func (e *Engine) Register(menu ui.Menu) error {
	return e.menus.Register(menu)
}

// Handle runs one interaction through its menu.
func (e *Engine) Handle(ctx context.Context, in *domain.Interaction, r ui.Responder) error {
	return e.menus.Handle(ctx, in, r)
}

// CreateList creates and registers the list menu "list."+path.
func CreateList[T any](e *Engine, path string, provider list.Provider[T], extraRows ...ui.Row) (*ui.MessageMenu, error) {
	return list.CreateMenu(e.lists, path, provider, extraRows...)
}

package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/codec"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/schema"
	"github.com/aretw0/espalier/pkg/value"
)

// Menu is a registered message or modal menu.
type Menu interface {
	ID() string

	serve(ctx context.Context, in *domain.Interaction, r Responder) error
	attach(m *Manager)
}

// MenuOption configures a MessageMenu or ModalMenu.
type MenuOption func(*menuCore)

// WithEffect registers fn for changes of field. Several effects on one field
// run in registration order.
func WithEffect(field string, fn EffectFunc) MenuOption {
	return func(c *menuCore) {
		c.effects[field] = append(c.effects[field], fn)
	}
}

// WithCache sets the initializer that fills the render cache once per cycle.
func WithCache(init CacheInitFunc) MenuOption {
	return func(c *menuCore) {
		c.cacheInit = init
	}
}

// WithSchema rejects decoded states that do not match s.
func WithSchema(s schema.Schema) MenuOption {
	return func(c *menuCore) {
		c.schema = s
	}
}

// WithMaxEffectDepth bounds re-entrant effect dispatch.
func WithMaxEffectDepth(n int) MenuOption {
	return func(c *menuCore) {
		c.maxDepth = n
	}
}

// menuCore is shared by both menu kinds: effects, cache, decoding and the
// manager they report to.
type menuCore struct {
	id        string
	effects   map[string][]EffectFunc
	cacheInit CacheInitFunc
	schema    schema.Schema
	maxDepth  int
	manager   *Manager
}

func newMenuCore(id string, opts []MenuOption) (menuCore, error) {
	if err := codec.ValidateName(id); err != nil {
		return menuCore{}, fmt.Errorf("%w: menu id: %v", domain.ErrInvalidIdentifier, err)
	}
	c := menuCore{
		id:       id,
		effects:  make(map[string][]EffectFunc),
		maxDepth: domain.DefaultMaxEffectDepth,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

// ID returns the menu id, the first segment of every identifier it renders.
func (c *menuCore) ID() string { return c.id }

func (c *menuCore) attach(m *Manager) { c.manager = m }

func (c *menuCore) logger() *slog.Logger {
	if c.manager == nil {
		return logging.NewNop()
	}
	return c.manager.logger
}

func (c *menuCore) hooks() domain.LifecycleHooks {
	if c.manager == nil {
		return domain.LifecycleHooks{}
	}
	return c.manager.hooks
}

// DispatchEffect runs the effects registered for name.
func (c *menuCore) DispatchEffect(s *domain.State, name string, old, new value.Value) {
	fns := c.effects[name]
	if len(fns) == 0 {
		return
	}
	if h := c.hooks().OnEffect; h != nil {
		h(s.Context(), &domain.EffectEvent{
			EventBase: domain.NewEventBase(domain.EventEffect, c.id),
			Field:     name,
			Depth:     s.Depth(),
		})
	}
	for _, fn := range fns {
		fn(s, name, old, new)
	}
}

func (c *menuCore) newState(data *value.Object, opts ...domain.StateOption) *domain.State {
	opts = append([]domain.StateOption{
		domain.WithEffects(c),
		domain.WithMaxEffectDepth(c.maxDepth),
	}, opts...)
	return domain.NewState(data, opts...)
}

// decodeData parses and validates a reassembled state.
func (c *menuCore) decodeData(serialized string) (*value.Object, error) {
	data, err := value.ParseObject(serialized)
	if err != nil {
		return nil, fmt.Errorf("menu %s: decode state: %w", c.id, err)
	}
	if err := schema.Validate(c.schema, data); err != nil {
		return nil, fmt.Errorf("menu %s: %w", c.id, err)
	}
	return data, nil
}

func (c *menuCore) fireDecode(ctx context.Context, component string, size int) {
	if h := c.hooks().OnDecode; h != nil {
		h(ctx, &domain.DecodeEvent{
			EventBase: domain.NewEventBase(domain.EventDecode, c.id),
			Component: component,
			StateSize: size,
		})
	}
}

func (c *menuCore) initCache(ctx context.Context, s *domain.State) error {
	err := s.InitOnce(func() error {
		if c.cacheInit == nil {
			return nil
		}
		return c.cacheInit(ctx, s)
	})
	if err != nil {
		return fmt.Errorf("menu %s: cache init: %w", c.id, err)
	}
	return nil
}

// pack encodes s into slots, reporting overflow to hooks.
func (c *menuCore) pack(ctx context.Context, s *domain.State, slots []codec.Slot) ([]string, int, error) {
	if err := s.Err(); err != nil {
		return nil, 0, fmt.Errorf("menu %s: %w", c.id, err)
	}
	serialized := s.Serialize()
	ids, err := codec.Pack(serialized, slots)
	if err != nil {
		var overflow *codec.OverflowError
		if h := c.hooks().OnOverflow; h != nil && errors.As(err, &overflow) {
			h(ctx, &domain.OverflowEvent{
				EventBase: domain.NewEventBase(domain.EventOverflow, c.id),
				Size:      overflow.Serialized,
				Capacity:  overflow.Capacity,
				Leftover:  overflow.Leftover,
			})
		}
		return nil, 0, fmt.Errorf("menu %s: %w", c.id, err)
	}
	return ids, utf8.RuneCountInString(serialized), nil
}

// runInit applies init to a fresh state. ErrStop is passed through.
func runInit(s *domain.State, init InitFunc) error {
	if init == nil {
		return nil
	}
	return init(s)
}

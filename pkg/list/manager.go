package list

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/aretw0/espalier/pkg/value"
)

// Manager creates paginated menus and registers them with a ui.Manager.
type Manager struct {
	ui       *ui.Manager
	menuOpts []ui.MenuOption
}

// Option configures a Manager.
type Option func(*Manager)

// WithMenuOptions applies opts to every menu the manager creates.
func WithMenuOptions(opts ...ui.MenuOption) Option {
	return func(m *Manager) {
		m.menuOpts = append(m.menuOpts, opts...)
	}
}

// NewManager creates a Manager that registers into menus.
func NewManager(menus *ui.Manager, opts ...Option) *Manager {
	m := &Manager{ui: menus}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// With returns a Manager that registers into the same menu manager and adds
// opts to every menu it creates.
func (m *Manager) With(opts ...ui.MenuOption) *Manager {
	return &Manager{ui: m.ui, menuOpts: append(slices.Clone(m.menuOpts), opts...)}
}

// UI returns the underlying menu manager.
func (m *Manager) UI() *ui.Manager { return m.ui }

// CreateMenu builds and registers the list menu "list."+path. The first row
// holds the first, back, page, next and last controls; extraRows follow.
func CreateMenu[T any](m *Manager, path string, provider Provider[T], extraRows ...ui.Row) (*ui.MessageMenu, error) {
	if provider == nil {
		return nil, fmt.Errorf("list %s: nil provider", path)
	}
	id := MenuPrefix + path

	rows := append([]ui.Row{controls[T]()}, extraRows...)
	opts := append([]ui.MenuOption{
		ui.WithCache(cacheInit(provider)),
		ui.WithEffect(FieldPage, pageEffect[T]),
	}, m.menuOpts...)

	menu, err := ui.NewMessageMenu(id, body[T](), rows, opts...)
	if err != nil {
		return nil, err
	}
	if err := m.ui.Register(menu); err != nil {
		return nil, err
	}
	m.ui.Logger().Debug("list menu created", "menu", id)
	return menu, nil
}

// cacheInit fetches the entries once per cycle and slices the current page.
func cacheInit[T any](provider Provider[T]) ui.CacheInitFunc {
	return func(ctx context.Context, s *domain.State) error {
		l, err := provider(ctx, s)
		if err != nil {
			return fmt.Errorf("resolve listable: %w", err)
		}
		lc := &Context[T]{Interaction: s.Interaction(), PerPage: perPage(l)}
		entries, err := l.Entries(ctx, s, lc)
		if err != nil {
			return fmt.Errorf("fetch entries: %w", err)
		}
		lc.Entries = entries
		lc.MaxPage = MaxPage(len(entries), lc.PerPage)
		s.Cache().Set(cacheContext, lc)
		s.Cache().Set(cacheListable, l)

		page := Clamp(currentPage(s), lc.MaxPage)
		lc.setPage(page)
		if s.Has(FieldPage) {
			s.SetInt(FieldPage, page)
		}
		return nil
	}
}

// pageEffect clamps the page and re-slices the cached entries.
func pageEffect[T any](s *domain.State, name string, _, new value.Value) {
	lc, ok := contextOf[T](s)
	if !ok {
		// Not initialized yet; the cache initializer clamps.
		return
	}
	page, isInt := new.AsInt()
	if new.IsNull() {
		page, isInt = 1, true
	}
	clamped := Clamp(page, lc.MaxPage)
	if !isInt || (clamped != page && !new.IsNull()) {
		s.SetInt(name, clamped)
		return
	}
	lc.setPage(clamped)
}

func body[T any]() ui.BodyFunc {
	return func(ctx context.Context, s *domain.State) (ui.Body, error) {
		lc, ok := contextOf[T](s)
		if !ok {
			return ui.Body{}, fmt.Errorf("list context missing")
		}
		l, _ := s.Cache().Get(cacheListable)
		if bb, ok := l.(BodyBuilder[T]); ok {
			return bb.BuildBody(s, lc, lc.Visible)
		}
		return defaultBody(lc), nil
	}
}

func maxPageOf[T any](s *domain.State) int {
	if lc, ok := contextOf[T](s); ok {
		return lc.MaxPage
	}
	return 1
}

func controls[T any]() ui.Row {
	atFirst := domain.When(func(s *domain.State) bool { return currentPage(s) <= 1 })
	atLast := domain.When(func(s *domain.State) bool { return currentPage(s) >= maxPageOf[T](s) })

	goTo := func(page func(current int) int) ui.HandlerFunc {
		return func(_ context.Context, ev *ui.Event) error {
			ev.State.SetInt(FieldPage, page(currentPage(ev.State)))
			return nil
		}
	}

	first := ui.NewButton("first", ui.Emoji("⏮️"), goTo(func(int) int { return 1 })).
		WithStyle(domain.StyleSecondary).DisabledWhen(atFirst)
	back := ui.NewButton("back", ui.Emoji("◀️"), goTo(func(p int) int { return p - 1 })).
		WithStyle(domain.StyleSecondary).DisabledWhen(atFirst)
	indicator := ui.NewButton("page", ui.Dynamic(func(s *domain.State) string {
		return fmt.Sprintf("📖 %d/%d", currentPage(s), maxPageOf[T](s))
	}), nil).WithStyle(domain.StyleSecondary).DisabledWhen(domain.Always)
	next := ui.NewButton("next", ui.Emoji("▶️"), goTo(func(p int) int { return p + 1 })).
		WithStyle(domain.StyleSecondary).DisabledWhen(atLast)
	last := ui.NewButton("last", ui.Emoji("⏭️"), goTo(func(int) int { return LastPageSentinel })).
		WithStyle(domain.StyleSecondary).DisabledWhen(atLast)

	return ui.MustRow(first, back, indicator, next, last)
}

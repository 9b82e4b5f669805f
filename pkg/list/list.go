package list

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ui"
)

const (
	// DefaultEntriesPerPage applies when a Listable does not implement PageSizer.
	DefaultEntriesPerPage = 20

	// LastPageSentinel is written by the "last" control and clamped to the
	// last page by the page effect.
	LastPageSentinel = math.MaxInt32

	// FieldPage is the state field holding the current page, 1-based.
	FieldPage = "page"

	// MenuPrefix is prepended to the path of every list menu id.
	MenuPrefix = "list."

	cacheContext  = "list.context"
	cacheListable = "list.listable"
)

// Listable supplies the entries of a list menu. It is resolved and queried
// once per cycle, before any handler runs.
type Listable[T any] interface {
	Entries(ctx context.Context, s *domain.State, lc *Context[T]) ([]T, error)
}

// PageSizer overrides DefaultEntriesPerPage.
type PageSizer interface {
	EntriesPerPage() int
}

// BodyBuilder renders the visible page instead of the default entry list.
type BodyBuilder[T any] interface {
	BuildBody(s *domain.State, lc *Context[T], visible []T) (ui.Body, error)
}

// Entry is an element that knows how to print itself in a list.
type Entry interface {
	Format(index int) string
}

// Provider resolves the Listable for a cycle.
type Provider[T any] func(ctx context.Context, s *domain.State) (Listable[T], error)

// Static always provides l.
func Static[T any](l Listable[T]) Provider[T] {
	return func(context.Context, *domain.State) (Listable[T], error) { return l, nil }
}

// Context describes the list of the current cycle.
type Context[T any] struct {
	Interaction *domain.Interaction
	PerPage     int

	// Set once the entries are fetched.
	Entries []T
	MaxPage int
	Page    int
	Visible []T
}

// Size is the total number of entries.
func (c *Context[T]) Size() int { return len(c.Entries) }

// Offset is the index of the first visible entry.
func (c *Context[T]) Offset() int { return (c.Page - 1) * c.PerPage }

func (c *Context[T]) setPage(page int) {
	c.Page = page
	start := min((page-1)*c.PerPage, len(c.Entries))
	end := min(start+c.PerPage, len(c.Entries))
	c.Visible = c.Entries[start:end]
}

// MaxPage is max(1, ceil(size/perPage)).
func MaxPage(size, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultEntriesPerPage
	}
	return max(1, (size+perPage-1)/perPage)
}

// Clamp bounds page to [1, maxPage].
func Clamp(page, maxPage int) int {
	return max(1, min(page, maxPage))
}

func perPage(l any) int {
	if ps, ok := l.(PageSizer); ok && ps.EntriesPerPage() > 0 {
		return ps.EntriesPerPage()
	}
	return DefaultEntriesPerPage
}

// contextOf returns the list context cached for s.
func contextOf[T any](s *domain.State) (*Context[T], bool) {
	return domain.CacheAs[*Context[T]](s.Cache(), cacheContext)
}

// currentPage reads the page field; absent or malformed pages are 1.
func currentPage(s *domain.State) int {
	return s.IntOr(FieldPage, 1)
}

// defaultBody prints one line per visible entry.
func defaultBody[T any](lc *Context[T]) ui.Body {
	if len(lc.Visible) == 0 {
		return ui.Body{Embeds: []ui.Embed{{Description: "No entries."}}}
	}
	lines := make([]string, len(lc.Visible))
	offset := lc.Offset()
	for i, e := range lc.Visible {
		if entry, ok := any(e).(Entry); ok {
			lines[i] = entry.Format(offset + i)
		} else {
			lines[i] = fmt.Sprint(e)
		}
	}
	return ui.Body{Embeds: []ui.Embed{{
		Description: strings.Join(lines, "\n"),
		Footer:      fmt.Sprintf("%d entries", lc.Size()),
	}}}
}

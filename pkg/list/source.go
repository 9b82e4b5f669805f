package list

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// SourceListable lists the entries an EntrySource holds under a key.
type SourceListable struct {
	Source ports.EntrySource

	// Key is read from the state field KeyField when that is set and
	// present, and falls back to Key otherwise.
	Key      string
	KeyField string

	PerPage int
}

func (l *SourceListable) Entries(ctx context.Context, s *domain.State, _ *Context[string]) ([]string, error) {
	return l.Source.Entries(ctx, l.key(s))
}

func (l *SourceListable) EntriesPerPage() int {
	if l.PerPage > 0 {
		return l.PerPage
	}
	return DefaultEntriesPerPage
}

func (l *SourceListable) key(s *domain.State) string {
	if l.KeyField != "" {
		if k, ok := s.String(l.KeyField); ok {
			return k
		}
	}
	return l.Key
}

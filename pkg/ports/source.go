package ports

import "context"

// EntrySource supplies the entries of a list. A key without entries yields
// an empty slice and no error.
type EntrySource interface {
	Entries(ctx context.Context, key string) ([]string, error)
}

// EntryStore is an EntrySource that can also be written, as used by the
// CLI to seed demo data.
type EntryStore interface {
	EntrySource

	// Append adds entries to the end of the list under key.
	Append(ctx context.Context, key string, entries ...string) error

	// Clear removes every entry under key.
	Clear(ctx context.Context, key string) error
}

// Package demo wires the menus served by the espalier CLI: a paginated
// catalog over the configured entry source and a feedback modal opened
// from it.
package demo

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/list"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/schema"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/aretw0/espalier/pkg/value"
)

const (
	// CatalogPath is the list path; the menu id is "list.catalog".
	CatalogPath = "catalog"
	// FeedbackID is the id of the feedback modal.
	FeedbackID = "feedback"
	// FieldKey holds the entry source key the catalog is showing.
	FieldKey = "key"
)

var (
	catalogSchema = schema.Schema{
		FieldKey:       schema.Optional(schema.String()),
		list.FieldPage: schema.Optional(schema.Int()),
	}
	feedbackSchema = schema.Schema{
		FieldKey:       schema.String(),
		list.FieldPage: schema.Optional(schema.Int()),
	}
)

// DefaultSeed fills an empty store so the demo has something to page through.
var DefaultSeed = map[string][]string{
	"fruits": {
		"apple", "banana", "cherry", "date", "elderberry", "fig", "grape",
		"honeydew", "kiwi", "lemon", "mango", "nectarine", "orange", "papaya",
	},
	"planets": {
		"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune",
	},
}

// Menus holds the registered demo menus.
type Menus struct {
	Catalog  *ui.MessageMenu
	Feedback *ui.ModalMenu
}

// Register builds the demo menus over source and registers them with e.
// keys are the entry source keys the catalog can switch between; the first
// one is shown by default.
func Register(e *espalier.Engine, source ports.EntrySource, keys []string, perPage int) (*Menus, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("demo: no entry keys")
	}
	m := &Menus{}

	feedback, err := ui.NewModalMenu(FeedbackID,
		func(s *domain.State) string {
			key, _ := s.String(FieldKey)
			return fmt.Sprintf("Feedback on %s", key)
		},
		[]*ui.TextInput{
			ui.NewTextInput("comment", "Comment").Paragraph().Placeholder("What should change?").Length(1, 500),
		},
		func(ctx context.Context, ev *ui.Event) error {
			key, err := ev.State.RequireString(FieldKey)
			if err != nil {
				return err
			}
			page := ev.State.IntOr(list.FieldPage, 1)
			comment, _ := ev.Field("comment")
			e.Logger().Info("feedback received", "key", key, "page", page, "comment", comment)
			return ev.Responder.Reply(ctx, &ui.Message{Body: ui.Body{
				Content: fmt.Sprintf("Thanks for the feedback on %s, page %d.", key, page),
			}}, true)
		},
		ui.WithSchema(feedbackSchema),
	)
	if err != nil {
		return nil, err
	}
	if err := e.Register(feedback); err != nil {
		return nil, err
	}
	m.Feedback = feedback

	source = keyed(source, keys)
	listable := &list.SourceListable{Source: source, Key: keys[0], KeyField: FieldKey, PerPage: perPage}

	var rows []ui.Row
	if len(keys) > 1 {
		pick := ui.NewSelect("source", func(s *domain.State) []ui.SelectOption {
			current := currentKey(s, keys[0])
			opts := make([]ui.SelectOption, len(keys))
			for i, k := range keys {
				opts[i] = ui.SelectOption{Label: k, Value: k, Default: k == current}
			}
			return opts
		}, func(ctx context.Context, ev *ui.Event) error {
			values := ev.Values()
			if len(values) == 0 {
				return nil
			}
			// The cached entries belong to the previous key.
			msg, err := m.Catalog.Render(ctx, m.Catalog.NewStateFrom(value.ObjectOf(FieldKey, values[0])))
			if err != nil {
				return err
			}
			if err := ev.Responder.Update(ctx, msg); err != nil {
				return err
			}
			return domain.ErrStop
		}).Placeholder("Choose a list")
		rows = append(rows, ui.MustRow(pick))
	}

	comment := ui.NewButton("comment", ui.TextEmoji("Feedback", "📝"), func(ctx context.Context, ev *ui.Event) error {
		key := currentKey(ev.State, keys[0])
		page := ev.State.IntOr(list.FieldPage, 1)
		if err := m.Feedback.Open(ctx, ev.Responder, func(s *domain.State) error {
			s.SetString(FieldKey, key)
			s.SetInt(list.FieldPage, page)
			return nil
		}); err != nil {
			return err
		}
		return domain.ErrStop
	}).WithStyle(domain.StylePrimary)
	rows = append(rows, ui.MustRow(comment))

	lists := e.Lists().With(ui.WithSchema(catalogSchema))
	catalog, err := list.CreateMenu(lists, CatalogPath, list.Static[string](listable), rows...)
	if err != nil {
		return nil, err
	}
	m.Catalog = catalog
	return m, nil
}

// Seed replaces the entries under every key of seed.
func Seed(ctx context.Context, store ports.EntryStore, seed map[string][]string) error {
	for _, key := range Keys(seed) {
		if err := store.Clear(ctx, key); err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
		if err := store.Append(ctx, key, seed[key]...); err != nil {
			return fmt.Errorf("seed %s: %w", key, err)
		}
	}
	return nil
}

// Keys returns the keys of seed in sorted order.
func Keys(seed map[string][]string) []string {
	keys := make([]string, 0, len(seed))
	for k := range seed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func currentKey(s *domain.State, def string) string {
	if k, ok := s.String(FieldKey); ok {
		return k
	}
	return def
}

// allowedSource hides keys outside the configured set.
type allowedSource struct {
	ports.EntrySource
	keys []string
}

func keyed(src ports.EntrySource, keys []string) ports.EntrySource {
	return &allowedSource{EntrySource: src, keys: keys}
}

func (s *allowedSource) Entries(ctx context.Context, key string) ([]string, error) {
	if !slices.Contains(s.keys, key) {
		return nil, nil
	}
	return s.EntrySource.Entries(ctx, key)
}

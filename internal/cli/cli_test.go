package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Menus.PerPage = 5
	for _, m := range mutate {
		m(cfg)
	}
	app, err := NewApp(context.Background(), cfg, AppOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_RegistersDemoMenus(t *testing.T) {
	app := newTestApp(t)

	_, ok := app.Engine.Menus().Get("list.catalog")
	assert.True(t, ok)
	_, ok = app.Engine.Menus().Get("feedback")
	assert.True(t, ok)
	assert.NotNil(t, app.Engine.Metrics())
}

func TestNewApp_ConfiguredSeed(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) {
		c.Seed = map[string][]string{"colors": {"red", "green"}}
	})

	var buf bytes.Buffer
	require.NoError(t, Preview(context.Background(), app, &buf, PreviewOptions{Raw: true}))
	assert.Contains(t, buf.String(), "> red\n> green\n")
	assert.Contains(t, buf.String(), "*2 entries*")
}

func TestNewApp_BoltStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "espalier.db")
	withBolt := func(c *config.Config) {
		c.Store.Driver = config.DriverBolt
		c.Store.BoltPath = path
		c.Seed = map[string][]string{"fruits": {"apple"}}
	}

	app, err := NewApp(context.Background(), func() *config.Config {
		cfg := config.Default()
		withBolt(cfg)
		return cfg
	}(), AppOptions{})
	require.NoError(t, err)
	require.NoError(t, app.Close())

	// A second start with a different seed keeps the stored entries.
	app = newTestApp(t, withBolt, func(c *config.Config) {
		c.Seed = map[string][]string{"fruits": {"banana"}}
	})
	var buf bytes.Buffer
	require.NoError(t, Preview(context.Background(), app, &buf, PreviewOptions{Raw: true}))
	assert.Contains(t, buf.String(), "> apple\n")
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := openStore(config.StoreConfig{Driver: "etcd"})
	assert.Error(t, err)
}

func TestSeedMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Append(ctx, "a", "kept"))

	require.NoError(t, seedMissing(ctx, store, map[string][]string{"a": {"x"}, "b": {"y"}}))

	a, _ := store.Entries(ctx, "a")
	b, _ := store.Entries(ctx, "b")
	assert.Equal(t, []string{"kept"}, a)
	assert.Equal(t, []string{"y"}, b)
}

func TestCreateLogger(t *testing.T) {
	_, err := createLogger(config.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)

	logger, err := createLogger(config.LogConfig{Level: "error"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), -4), "debug forces the debug level")
}

func TestPreview(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	t.Run("Catalog page", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Preview(ctx, app, &buf, PreviewOptions{Key: "planets", Page: 2, Raw: true}))
		out := buf.String()
		assert.Contains(t, out, "> Saturn\n> Uranus\n> Neptune\n")
		assert.Contains(t, out, "`[📖 2/2]`")
	})

	t.Run("Modal", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Preview(ctx, app, &buf, PreviewOptions{Key: "fruits", Modal: true, Raw: true}))
		assert.Contains(t, buf.String(), "## Feedback on fruits")
	})

	t.Run("Styled", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Preview(ctx, app, &buf, PreviewOptions{}))
		assert.Contains(t, buf.String(), "apple")
	})
}

func TestInspect(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Inspect(ctx, app, &buf, "json"))

		var infos []ui.MenuInfo
		require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "feedback", infos[0].ID)
		assert.Equal(t, "modal", infos[0].Kind)
		assert.Equal(t, "list.catalog", infos[1].ID)
		assert.Len(t, infos[1].Rows, 3)
	})

	t.Run("Mermaid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Inspect(ctx, app, &buf, "mermaid"))
		out := buf.String()
		assert.Contains(t, out, "graph TD\n")
		assert.Contains(t, out, "class list_catalog__first disabled;")
		assert.Contains(t, out, "class list_catalog current;")
		assert.NotContains(t, out, "class list_catalog__next disabled;")
	})

	t.Run("Unknown format", func(t *testing.T) {
		assert.Error(t, Inspect(ctx, app, &bytes.Buffer{}, "yaml"))
	})
}

func TestOpenStore_Encrypted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sealed.db")
	key := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

	store, closer, err := openStore(config.StoreConfig{Driver: config.DriverBolt, BoltPath: path, EncryptionKey: key})
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, "k", "secret"))
	require.NoError(t, closer.Close())

	plain, closer, err := openStore(config.StoreConfig{Driver: config.DriverBolt, BoltPath: path})
	require.NoError(t, err)
	defer closer.Close()
	raw, err := plain.Entries(ctx, "k")
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.NotEqual(t, "secret", raw[0])
}

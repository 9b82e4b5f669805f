package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/config"
	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/adapters/bolt"
	httpAdapter "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/persistence/middleware"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// AppOptions are the flags shared by every command.
type AppOptions struct {
	Debug bool
	// Reseed replaces stored entries with the configured seed.
	Reseed bool
}

// App bundles the engine, the demo menus and their collaborators.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Engine   *espalier.Engine
	Menus    *demo.Menus
	Registry *prometheus.Registry
	Streams  *httpAdapter.StreamManager

	closer io.Closer
}

// NewApp opens the configured store, seeds it and registers the demo menus.
func NewApp(ctx context.Context, cfg *config.Config, opts AppOptions) (*App, error) {
	logger, err := createLogger(cfg.Log, opts.Debug)
	if err != nil {
		return nil, err
	}

	store, closer, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closer: closer}

	seed := cfg.Seed
	if len(seed) == 0 {
		seed = demo.DefaultSeed
	}
	if opts.Reseed {
		err = demo.Seed(ctx, store, seed)
	} else {
		err = seedMissing(ctx, store, seed)
	}
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	app.Streams = httpAdapter.NewStreamManager(logger)

	engineOpts := []espalier.Option{
		espalier.WithLogger(logger),
		espalier.WithMetrics(app.Registry),
		espalier.WithLifecycleHooks(httpAdapter.EventHooks(app.Streams)),
		espalier.WithDeferAfter(cfg.Menus.DeferAfter),
	}
	if cfg.Menus.MaxEffectDepth > 0 {
		engineOpts = append(engineOpts, espalier.WithListMenuOptions(ui.WithMaxEffectDepth(cfg.Menus.MaxEffectDepth)))
	}
	if opts.Debug {
		engineOpts = append(engineOpts, espalier.WithEventLogging())
	}
	app.Engine = espalier.New(engineOpts...)

	app.Menus, err = demo.Register(app.Engine, store, demo.Keys(seed), cfg.Menus.PerPage)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("error registering menus: %w", err)
	}
	logger.Debug("app ready", "store", cfg.Store.Driver, "lists", len(seed))
	return app, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// createLogger configures the application logger. Debug mode forces the
// debug level.
func createLogger(cfg config.LogConfig, debug bool) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWith(logging.Options{Level: level, Format: cfg.Format}), nil
}

// openStore opens the configured driver, encrypting entries when a key is set.
func openStore(cfg config.StoreConfig) (ports.EntryStore, io.Closer, error) {
	store, closer, err := openDriver(cfg)
	if err != nil {
		return nil, nil, err
	}
	active, fallback, err := cfg.Keys()
	if err != nil || active == nil {
		return store, closer, err
	}
	encrypt, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
	if err != nil {
		return nil, nil, err
	}
	return encrypt(store), closer, nil
}

func openDriver(cfg config.StoreConfig) (ports.EntryStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return memory.NewStore(), nil, nil
	case config.DriverRedis:
		var opts []redis.Option
		if cfg.RedisPrefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.RedisPrefix))
		}
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
		return s, s, nil
	case config.DriverBolt:
		s, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening bolt store: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// seedMissing fills only the keys that hold no entries yet.
func seedMissing(ctx context.Context, store ports.EntryStore, seed map[string][]string) error {
	var errs []error
	for _, key := range demo.Keys(seed) {
		entries, err := store.Entries(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed %s: %w", key, err))
			continue
		}
		if len(entries) > 0 {
			continue
		}
		if err := store.Append(ctx, key, seed[key]...); err != nil {
			errs = append(errs, fmt.Errorf("seed %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

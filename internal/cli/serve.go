package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkz/internal/server"
	"github.com/matzehuels/gridkz/pkg/cache"
	"github.com/matzehuels/gridkz/pkg/config"
	"github.com/matzehuels/gridkz/pkg/convert"
	"github.com/matzehuels/gridkz/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: `Run the HTTP conversion service.

The service converts templates over HTTP (POST /v1/convert) and can
persist converted layouts (POST /v1/layouts). Backends come from the
[serve] config section: conversions are cached in a file cache, Redis,
or not at all, and layouts are stored in memory or MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe wires the configured backends and runs the server until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr == "" {
		addr = cfg.Serve.Addr
	}

	backend, err := c.serveCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := convert.NewRunner(backend, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	// ctx is cancelled by the time the deferred close runs, so the
	// store disconnects under a fresh context.
	defer st.Close(context.Background())

	srv := server.New(server.Options{
		Runner:  runner,
		Store:   st,
		Vars:    cfg.Variables,
		Padding: cfg.Convert.Padding,
		Logger:  c.Logger,
	})

	printKeyValue("address", addr)
	printKeyValue("cache", cfg.Serve.Cache)
	printKeyValue("store", cfg.Serve.Store)
	printNewline()

	c.Logger.Info("starting server", "addr", addr)
	return srv.Run(ctx, addr)
}

// serveCache builds the conversion cache named by the config. Redis
// connections retry briefly so the service can start while the backend
// is still coming up.
func (c *CLI) serveCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Serve.Cache {
	case config.CacheOff:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		var backend cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			rc, err := cache.NewRedisCache(ctx, cfg.Serve.RedisAddr)
			if err != nil {
				return cache.Retryable(err)
			}
			backend = rc
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Serve.RedisAddr, err)
		}
		return backend, nil
	default:
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	}
}

// serveStore builds the layout store named by the config.
func (c *CLI) serveStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	if cfg.Serve.Store != config.StoreMongo {
		return store.NewMemoryStore(), nil
	}

	var st store.Store
	err := cache.RetryWithBackoff(ctx, func() error {
		ms, err := store.NewMongoStore(ctx, cfg.Serve.MongoURI, cfg.Serve.MongoDB)
		if err != nil {
			return cache.Retryable(err)
		}
		st = ms
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect mongo %s: %w", cfg.Serve.MongoURI, err)
	}
	return st, nil
}

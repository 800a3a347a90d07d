package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-multiselect/components/multiselect"
	"github.com/goliatone/go-multiselect/pkg/config"
	"github.com/goliatone/go-multiselect/pkg/option"
	"github.com/goliatone/go-multiselect/pkg/renderers/vanilla"
	"github.com/goliatone/go-multiselect/pkg/session"
	"github.com/goliatone/go-multiselect/pkg/source"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr      string
		highlight bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the widget over HTTP",
		Long: `Serve the widget page, the event endpoint and the option endpoint.
Sessions live in memory unless MULTISELECT_STORE=redis.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.serverConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cmd, cfg, highlight)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: $MULTISELECT_ADDR or :8080)")
	cmd.Flags().BoolVar(&highlight, "highlight", true, "highlight the search query inside option labels")
	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, cfg config.Server, highlight bool) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	widget, err := loadWidget(cfg)
	if err != nil {
		return err
	}
	themeCfg, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	src, closeSource, err := openSource(ctx, cfg, widget, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	mux := http.NewServeMux()
	routes, err := multiselect.RegisterRoutes(mux, cfg.BasePath,
		multiselect.WithWidget(widget),
		multiselect.WithSource(src),
		multiselect.WithStore(store),
		multiselect.WithTheme(themeCfg),
		multiselect.WithHighlight(highlight),
		multiselect.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	assetsPath := strings.TrimRight(cfg.BasePath, "/") + "/assets/"
	mux.Handle(assetsPath, http.StripPrefix(assetsPath, http.FileServer(http.FS(vanilla.AssetsFS()))))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.start",
			slog.String("addr", cfg.Addr),
			slog.String("widget", routes.Widget),
			slog.String("events", routes.Events),
			slog.String("options", routes.Options),
			slog.String("store", cfg.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("server.stop")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Server) (session.Store, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		store, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:      cfg.RedisAddr,
			KeyPrefix: cfg.KeyPrefix,
			TTL:       cfg.SessionTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}
}

// openSource watches the options file when one is configured so edits show
// up without a restart.
func openSource(ctx context.Context, cfg config.Server, widget config.Widget, logger *slog.Logger) (source.Source, func(), error) {
	if cfg.OptionsFile == "" {
		return source.Static(widget.NormalizedOptions()), func() {}, nil
	}
	watcher, err := source.Watch(ctx, cfg.OptionsFile, source.WithOnReload(func(options []option.Option, err error) {
		if err != nil {
			logger.Warn("options.reload.fail", slog.String("path", cfg.OptionsFile), slog.String("err", err.Error()))
			return
		}
		logger.Info("options.reload.ok", slog.String("path", cfg.OptionsFile), slog.Int("count", len(options)))
	}))
	if err != nil {
		return nil, nil, err
	}
	return watcher, func() { _ = watcher.Close() }, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hardship/internal/app"
	"github.com/goliatone/go-hardship/internal/config"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	listen    string
	theme     string
	variant   string
	templates string
	navstate  string
	redisAddr string
}

func (s *serveFlags) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("listen") {
			cfg.Listen = s.listen
		}
		if flags.Changed("theme") {
			cfg.Theme.Name = s.theme
		}
		if flags.Changed("variant") {
			cfg.Theme.Variant = s.variant
		}
		if flags.Changed("templates") {
			cfg.Theme.Templates = s.templates
		}
		if flags.Changed("navstate") {
			cfg.NavState.Backend = s.navstate
		}
		if flags.Changed("redis-addr") {
			cfg.NavState.Redis.Addr = s.redisAddr
		}
	}
}

func serveCmd(global *globalFlags) *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the hardship screens over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.load(cmd, flags.apply(cmd))
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.listen, "listen", "l", "", "address to listen on")
	f.StringVar(&flags.theme, "theme", "", "theme name")
	f.StringVar(&flags.variant, "variant", "", "theme variant")
	f.StringVar(&flags.templates, "templates", "", "directory of templates overriding the embedded ones")
	f.StringVar(&flags.navstate, "navstate", "", "navigation state backend (memory, redis)")
	f.StringVar(&flags.redisAddr, "redis-addr", "", "redis address for the redis navigation backend")
	return cmd
}

func runServe(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := cfg.Log.NewLogger(os.Stderr)
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := a.Handler(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving hardship screens",
			"listen", cfg.Listen,
			"service", a.Client.BaseURL(),
			"theme", cfg.Theme.Name,
			"navstate", cfg.NavState.Backend,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jbweber/homelab/cornerstone/internal/api"
	"github.com/jbweber/homelab/cornerstone/internal/config"
	"github.com/jbweber/homelab/cornerstone/internal/crud"
	"github.com/jbweber/homelab/cornerstone/internal/resources"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			stores, closeStores, err := openStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStores()

			controllers := resources.NewControllers(stores, crud.Config{
				SkipIdentityCheck: cfg.SkipIdentityCheck,
				Validate:          crud.NewValidator(),
				Logger:            slog.Default(),
			})

			srv := &http.Server{
				Addr:              net.JoinHostPort("", cfg.Port),
				Handler:           api.New(stores, controllers, slog.Default()).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return serve(ctx, srv)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default from config)")
	return cmd
}

// openStores connects the configured backend and returns its stores with a
// function closing the connection.
func openStores(ctx context.Context, cfg *config.Config) (resources.Stores, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := cfg.OpenGorm(ctx)
		if err != nil {
			return resources.Stores{}, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return resources.Stores{}, nil, err
		}
		return resources.GormStores(db), closer(sqlDB.Close), nil
	default:
		db, err := cfg.InitializeDatabase(ctx)
		if err != nil {
			return resources.Stores{}, nil, err
		}
		return resources.SQLStores(db), closer(db.Close), nil
	}
}

func closer(closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting cornerstone web service", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

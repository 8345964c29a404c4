package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/okutsev/httpool/internal/config"
	"github.com/okutsev/httpool/internal/httpd"
	"github.com/okutsev/httpool/internal/infra"
	"github.com/okutsev/httpool/internal/workerpool"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		workers    int
	)

	cmd := &cobra.Command{
		Use:          "httpool",
		Short:        "Static web server built on a fixed-size worker pool",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.ListenAddress = addr
			}
			if workers != 0 {
				cfg.Server.Workers = workers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to yaml config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (overrides config)")
	return cmd
}

func run(cfg *config.Config) error {
	pool, err := workerpool.New(cfg.Server.Workers)
	if err != nil {
		return err
	}

	srv := httpd.New(cfg, pool)
	if err := srv.Listen(); err != nil {
		pool.Close()
		return err
	}

	admin := infra.NewAdmin(cfg.Admin.Address, pool, srv.Pages())
	admin.Start()

	var g errgroup.Group
	g.Go(srv.Serve)

	var shutdownErr error
	infra.Graceful(shutdownTimeout,
		func(ctx context.Context) {
			shutdownErr = multierr.Append(shutdownErr, srv.Shutdown(ctx))
		},
		admin.Shutdown,
		func(ctx context.Context) { pool.Close() },
	)

	return multierr.Combine(shutdownErr, g.Wait())
}

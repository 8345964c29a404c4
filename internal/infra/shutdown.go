package infra

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Graceful blocks until SIGINT or SIGTERM, then runs the shutdown callbacks
// in order, all under one deadline. Callback order is the teardown order:
// stop accepting first, drain last.
func Graceful(timeout time.Duration, cb ...func(context.Context)) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, f := range cb {
		f(ctx)
	}
	slog.Info("shutdown complete")
}

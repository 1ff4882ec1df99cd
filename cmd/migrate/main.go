// Command migrate applies the embedded goose migrations and exits. Useful
// in deploy pipelines where migrations run before the application starts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wordflow/wordflow-backend/internal/app"
	"github.com/wordflow/wordflow-backend/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)

	if err := app.RunMigrations(ctx, logger, cfg.Database.DSN); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	logger.Info("migrations up to date")
}

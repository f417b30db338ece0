package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"VentureScanner/internal/app"
	"VentureScanner/internal/config"
	"VentureScanner/internal/logging"
)

func main() {
	inputPath := flag.String("input", "", "company list file (.csv or .txt); runs one batch and exits")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("application init failed", "error", err)
		os.Exit(1)
	}

	if *inputPath != "" {
		if err := application.RunBatch(ctx, *inputPath); err != nil {
			logger.Error("batch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := application.Serve(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

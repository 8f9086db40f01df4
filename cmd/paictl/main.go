package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/ericfisherdev/professionalaize/internal/adapter/driven/gemini"
	"github.com/ericfisherdev/professionalaize/internal/adapter/driving/cli"
	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/bootstrap"
	"github.com/ericfisherdev/professionalaize/internal/config"
)

func main() {
	if err := run(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Keep stderr quiet for interactive use unless debugging was asked for.
	level := slog.LevelWarn
	if cfg.LogLevel == slog.LevelDebug {
		level = slog.LevelDebug
	}
	logger := bootstrap.NewLogger(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Error("error closing credential store", "error", closeErr)
		}
	}()

	generator := gemini.NewClient(
		gemini.WithBaseURL(cfg.GeminiBaseURL),
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithTimeout(cfg.GenerationTimeout),
	)
	credentialSvc := application.NewCredentialService(store, logger)
	relaySvc := application.NewRelayService(credentialSvc, generator, logger)

	root := cli.NewRootCommand(&cli.App{
		Relay:       relaySvc,
		Credentials: credentialSvc,
	})
	return root.ExecuteContext(ctx)
}

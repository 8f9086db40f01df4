package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/professionalaize/internal/adapter/driven/gemini"
	amqphandler "github.com/ericfisherdev/professionalaize/internal/adapter/driving/amqp"
	httphandler "github.com/ericfisherdev/professionalaize/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/professionalaize/internal/adapter/driving/web"
	"github.com/ericfisherdev/professionalaize/internal/adapter/driving/ws"
	"github.com/ericfisherdev/professionalaize/internal/application"
	"github.com/ericfisherdev/professionalaize/internal/bootstrap"
	"github.com/ericfisherdev/professionalaize/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (.env first, then YAML file and env vars).
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := bootstrap.NewLogger(os.Stdout, cfg.LogLevel)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"store", cfg.Store,
		"gemini_model", cfg.GeminiModel,
		"generation_timeout", cfg.GenerationTimeout,
		"amqp_enabled", cfg.AMQPEnabled(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the credential store (runs migrations for sqlite).
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			logger.Error("error closing credential store", "error", closeErr)
		}
	}()

	// 4. Wire the generation client and application services.
	generator := gemini.NewClient(
		gemini.WithBaseURL(cfg.GeminiBaseURL),
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithTimeout(cfg.GenerationTimeout),
	)
	credentialSvc := application.NewCredentialService(store, logger)
	relaySvc := application.NewRelayService(credentialSvc, generator, logger)

	// 5. Register API, WebSocket and GUI routes on one mux.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(relaySvc, credentialSvc, logger))

	wsHandler := ws.NewHandler(relaySvc, logger, cfg.AllowedOrigins)
	ws.RegisterRoutes(mux, wsHandler)

	webhandler.RegisterRoutes(mux, webhandler.NewHandler(relaySvc, credentialSvc, logger))

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, logger, cfg.AllowedOrigins)

	// WriteTimeout must outlive a full generation round trip.
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.GenerationTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 6. Optional AMQP RPC surface.
	if cfg.AMQPEnabled() {
		broker, err := amqphandler.Dial(ctx, cfg.AMQPURL, amqphandler.DefaultDialAttempts, logger)
		if err != nil {
			return err
		}
		defer broker.Close()

		consumer := amqphandler.NewConsumer(broker.Channel(), cfg.AMQPQueue, relaySvc, logger)
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	// 7. Log startup complete.
	logger.Info("professionalaize started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal or a surface failing.
	<-gctx.Done()
	logger.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wsHandler.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// 10. Log shutdown complete.
	logger.Info("shutdown complete")
	return nil
}

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

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/i18n"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/search"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/session"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/telemetry"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/ui"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/view"
)

const serviceName = "pokedeck"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Service: serviceName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("pokedeck stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown error", "error", err)
		}
	}()

	kv, closeKV, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeKV()

	var publisher events.CartPublisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		rabbitConn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer rabbitConn.Close()

		pub, err := events.NewPublisher(rabbitConn, events.PublisherOptions{Producer: serviceName})
		if err != nil {
			return err
		}
		defer func() {
			if err := pub.Close(); err != nil {
				logger.Warn("publisher close error", "error", err)
			}
		}()
		publisher = pub
		logger.Info("cart events enabled", "exchange", events.EventsExchange)
	}

	catalogClient, err := catalog.NewClient("pokeapi", cfg.CatalogURL, &http.Client{
		Timeout: cfg.CatalogTimeout,
	})
	if err != nil {
		return err
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	defaultLang, ok := i18n.ParseTag(cfg.DefaultLang)
	if !ok {
		logger.Warn("unsupported DEFAULT_LANG, using Spanish", "lang", cfg.DefaultLang)
		defaultLang = i18n.Supported()[0]
	}

	handler := httpapi.NewHandler(httpapi.Deps{
		Logger:      logger,
		Carts:       session.NewRegistry(kv, publisher, logger, session.WithMaxCarts(cfg.MaxCarts)),
		Searcher:    search.New(catalogClient, logger),
		Dispatcher:  ui.NewDispatcher(),
		Renderer:    renderer,
		DefaultLang: defaultLang,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.CatalogTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pokedeck listening", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
	return nil
}

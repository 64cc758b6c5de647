// Package app wires the service's dependencies together and owns the
// process lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/akyuz-dev/product-search-api/internal/config"
	"github.com/akyuz-dev/product-search-api/internal/embedding"
	"github.com/akyuz-dev/product-search-api/internal/engine"
	esengine "github.com/akyuz-dev/product-search-api/internal/engine/elasticsearch"
	"github.com/akyuz-dev/product-search-api/internal/engine/memory"
	"github.com/akyuz-dev/product-search-api/internal/event"
	handler "github.com/akyuz-dev/product-search-api/internal/handler/http"
	"github.com/akyuz-dev/product-search-api/internal/service"
	"github.com/akyuz-dev/product-search-api/pkg/health"
	pkgkafka "github.com/akyuz-dev/product-search-api/pkg/kafka"
	"github.com/akyuz-dev/product-search-api/pkg/tracing"
)

// App wires together all dependencies and runs the product search service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	consumer        *pkgkafka.Consumer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Search engine.
	var eng engine.SearchEngine
	var esEng *esengine.Engine
	switch cfg.Engine {
	case config.EngineElasticsearch:
		var err error
		esEng, err = esengine.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		eng = esEng
		logger.Info("elasticsearch engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		eng = memory.New()
		logger.Info("in-memory engine initialized")
	}

	// Embedding enrichment is a no-op unless an API key is configured.
	var embedder embedding.Embedder = embedding.Noop{}
	if cfg.EmbeddingEnabled() {
		embedder = embedding.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel)
		logger.Info("embedding enrichment enabled", slog.String("model", cfg.EmbeddingModel))
	}

	// Service layer.
	productService := service.NewProductService(eng, embedder, logger)
	searchService := service.NewSearchService(eng, logger)

	// Optional Kafka consumer for catalog product events.
	var consumer *pkgkafka.Consumer
	if cfg.KafkaEnabled() {
		eventHandler := event.NewProductEventHandler(productService, logger)
		consumer = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  cfg.KafkaGroupID,
			Topic:    cfg.KafkaTopic,
			MinBytes: 1,
			MaxBytes: 10e6, // 10 MB
		}, eventHandler.Handle, logger)
		logger.Info("kafka consumer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaTopic),
		)
	}

	// Tracing.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  cfg.ServiceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.TracingEndpoint,
		SampleRate:   cfg.TracingSample,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	if esEng != nil {
		healthHandler.Register("elasticsearch", esEng.Ping)
	}
	if cfg.KafkaEnabled() {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins,
		TracingEnabled: cfg.TracingEnabled,
		PprofEnabled:   cfg.PprofEnabled,
		PprofCIDRs:     cfg.PprofCIDRs,
	}, productService, searchService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		consumer:        consumer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and, when configured, the Kafka consumer.
// It blocks until the context is canceled or a component fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	if a.consumer != nil {
		go func() {
			if err := a.consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

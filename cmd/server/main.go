package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/gaapledger/internal/adapter/http"
	"github.com/iho/gaapledger/internal/adapter/http/handler"
	"github.com/iho/gaapledger/internal/adapter/repository/memory"
	redisRepo "github.com/iho/gaapledger/internal/adapter/repository/redis"
	"github.com/iho/gaapledger/internal/infrastructure/config"
	"github.com/iho/gaapledger/internal/infrastructure/eventpublisher"
	"github.com/iho/gaapledger/internal/infrastructure/idgen"
	"github.com/iho/gaapledger/internal/infrastructure/logger"
	"github.com/iho/gaapledger/internal/infrastructure/metrics"
	"github.com/iho/gaapledger/internal/infrastructure/redis"
	"github.com/iho/gaapledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "gaapledger",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

// app is the wired service: its HTTP handler plus the background pieces
// that must be started and stopped with it.
type app struct {
	handler   http.Handler
	publisher *eventpublisher.EventPublisher
	redis     *goredis.Client
	books     *usecase.BookUseCase
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	var (
		recorder usecase.Recorder
		observer httpAdapter.Observer
		exporter http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)
		recorder, observer = m, m
		exporter = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		Logger: log.With().Str("component", "events").Logger(),
	})

	deps := usecase.Deps{
		Store:     memory.NewBookStore(),
		IDGen:     idgen.NewULIDGenerator(),
		Recorder:  recorder,
		Publisher: publisher,
		Logger:    log,
	}
	books := usecase.NewBookUseCase(deps)

	checks := map[string]handler.Check{}
	routerCfg := httpAdapter.RouterConfig{
		BookHandler:    handler.NewBookHandler(books),
		AccountHandler: handler.NewAccountHandler(usecase.NewAccountUseCase(deps)),
		EntryHandler:   handler.NewEntryHandler(usecase.NewEntryUseCase(deps)),
		LedgerHandler:  handler.NewLedgerHandler(usecase.NewLedgerUseCase(deps)),
		IdempotencyTTL: cfg.IdempotencyTTL,
		Metrics:        observer,
		MetricsHandler: exporter,
		Logger:         log,
	}

	a := &app{publisher: publisher, books: books}

	// Connect to Redis
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		log.Info().Msg("connected to redis")
		a.redis = client
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(client)
		checks["redis"] = redis.Ping(client)
	} else {
		log.Warn().Msg("REDIS_URL not set, idempotency keys are ignored")
	}

	routerCfg.HealthHandler = handler.NewHealthHandler(checks)
	a.handler = httpAdapter.NewRouter(routerCfg)

	if cfg.DefaultBookName != "" {
		book, err := books.CreateBook(ctx, usecase.CreateBookInput{Name: cfg.DefaultBookName})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("create default book: %w", err)
		}
		log.Info().Str("book_id", book.ID).Str("name", book.Name).Msg("default book created")
	}

	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		_ = a.publisher.Start(workerCtx)
	}()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Flush queued events once no request can publish more.
	cancelWorker()
	<-workerDone
	return nil
}

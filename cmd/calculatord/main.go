package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibbank/calculator/internal/application/usecase"
	"github.com/bibbank/calculator/internal/application/validation"
	"github.com/bibbank/calculator/internal/domain/port"
	"github.com/bibbank/calculator/internal/domain/service"
	"github.com/bibbank/calculator/internal/infrastructure/cache"
	"github.com/bibbank/calculator/internal/infrastructure/config"
	"github.com/bibbank/calculator/internal/infrastructure/kafka"
	"github.com/bibbank/calculator/internal/infrastructure/messaging"
	"github.com/bibbank/calculator/internal/infrastructure/metrics"
	grpcPresentation "github.com/bibbank/calculator/internal/presentation/grpc"
	"github.com/bibbank/calculator/internal/presentation/rest"
	pkgkafka "github.com/bibbank/calculator/pkg/kafka"
	"github.com/bibbank/calculator/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("calculator-service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.ServiceName,
	})

	logger.Info("starting calculator-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"base_rate", cfg.Rates.BaseRate.String(),
		"rate_config", cfg.Rates.Fingerprint(),
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
		SetGlobal:   true,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := metrics.NewRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("init recorder: %w", err)
	}

	// Event publisher.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.Kafka.ClientID,
			TLS:           cfg.Kafka.TLS,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka producer close error", "error", err)
			}
		}()
		publisher = kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogEventPublisher(cfg.Kafka.Topic, logger)
		logger.Info("kafka not configured, logging events")
	}

	// Offer cache.
	var (
		offerCache  port.OfferCache = cache.NoopOfferCache{}
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled() {
		redisClient, err = cache.ConnectRedis(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		})
		if err != nil {
			logger.Warn("redis unavailable, offers will not be cached", "error", err)
		} else {
			defer func() { _ = redisClient.Close() }()
			offerCache = cache.NewRedisOfferCache(redisClient, cfg.Redis.OfferTTL, cfg.Rates.Fingerprint())
			logger.Info("offer cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.OfferTTL)
		}
	}

	// Domain services and use cases.
	rates := service.NewRateEngine(cfg.Rates, cfg.Policy)
	rules := service.NewRefusalRuleChain(cfg.Policy, logger)
	validator := validation.New(cfg.Limits, time.Now)

	offersUC := usecase.NewCalculateOffersUseCase(
		validator,
		service.NewOfferGenerator(cfg.Rates, rates),
		offerCache,
		publisher,
		recorder,
		logger,
		time.Now,
	)
	creditUC := usecase.NewCalculateCreditUseCase(
		validator,
		service.NewCreditEngine(cfg.Rates, rates, rules, logger),
		publisher,
		recorder,
		logger,
		time.Now,
	)

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewCalculatorHandler(offersUC, creditUC),
		grpcPresentation.ServerConfig{
			ServiceName:  cfg.ServiceName,
			Reflection:   cfg.GRPC.Reflection,
			TLSCertFile:  cfg.GRPC.TLSCertFile,
			TLSKeyFile:   cfg.GRPC.TLSKeyFile,
			ClientCAFile: cfg.GRPC.ClientCAFile,
		},
		logger,
	)
	if err != nil {
		return err
	}

	// HTTP server.
	var draining drainState
	router := rest.NewRouter(rest.RouterConfig{
		ServiceName:    cfg.ServiceName,
		Handler:        rest.NewCalculatorHandler(offersUC, creditUC, logger),
		Logger:         logger,
		Meter:          meterProvider.Meter(cfg.ServiceName),
		MetricsHandler: metricsHandler,
		RateLimit:      cfg.RateLimit,
		Ready:          draining.check,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	draining.start()
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("calculator-service stopped")
	return serveErr
}

// drainState flips /readyz to unavailable once shutdown begins. A cache
// outage does not affect readiness; the cache is best effort.
type drainState struct {
	draining atomic.Bool
}

func (d *drainState) start() { d.draining.Store(true) }

func (d *drainState) check() error {
	if d.draining.Load() {
		return errors.New("shutting down")
	}
	return nil
}

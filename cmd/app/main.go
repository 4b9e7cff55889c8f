package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shop/cmd"
	httpin "shop/internal/adapters/in/http"
	"shop/internal/adapters/out/kafka"
	"shop/internal/adapters/out/postgres"
	"shop/internal/adapters/out/rediscache"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/ports"
	"shop/internal/jobs"
	"shop/internal/pkg/logging"
	"shop/internal/pkg/tracing"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const serviceName = "shop"

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(configs.Env, configs.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, serviceName, configs.Env, configs.OTelEndpoint)
	if err != nil {
		logger.Fatal("tracing init failed", zap.Error(err))
	}

	gormDB, sqlDB, err := postgres.Open(configs.DSN())
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()
	if err = postgres.Migrate(sqlDB); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	var cartCache queries.CartViewCache
	if configs.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		defer func() { _ = client.Close() }()
		if err = client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, cart cache will trip its breaker", zap.Error(err))
		}
		cartCache = rediscache.NewCartCache(client, configs.CartCacheTTL, logger)
	}

	var publisher ports.MessagePublisher
	if len(configs.KafkaBrokers) > 0 {
		producer, err := kafka.NewSyncProducer(configs.KafkaBrokers)
		if err != nil {
			logger.Fatal("kafka producer failed", zap.Error(err))
		}
		kafkaPublisher := kafka.NewPublisher(producer, configs.KafkaOrderEventsTopic, logger)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	}

	app := cmd.NewCompositionRoot(gormDB, cartCache, publisher, logger)

	var jobList []jobs.Job
	if relay, ok := app.CreatePublishOutboxCommandHandler(); ok {
		jobList = append(jobList, jobs.NewOutboxRelayJob(relay, configs.OutboxRelaySchedule, configs.OutboxBatchSize, logger))
	} else {
		logger.Info("KAFKA_BROKERS not set, outbox relay disabled")
	}
	jobManager := jobs.NewJobManager(logger, jobList...)
	if err = jobManager.StartAll(); err != nil {
		logger.Fatal("jobs failed to start", zap.Error(err))
	}

	server := httpin.NewServer(app.CreateHTTPHandlers(), logger, configs.HTTPTimeout)
	srv := &http.Server{
		Addr:              configs.HTTPAddr(),
		Handler:           otelhttp.NewHandler(server.NewEcho(), serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	jobManager.StopAll()
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", zap.Error(err))
	}
}

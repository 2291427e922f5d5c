package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/inflight/config"
	"github.com/Domenick1991/inflight/internal/auth"
	"github.com/Domenick1991/inflight/internal/bootstrap"
	"github.com/Domenick1991/inflight/internal/cache"
	"github.com/Domenick1991/inflight/internal/kafka"
	"github.com/Domenick1991/inflight/internal/logger"
	"github.com/Domenick1991/inflight/internal/metrics"
	"github.com/Domenick1991/inflight/internal/repository"
	"github.com/Domenick1991/inflight/internal/service/qrcodes"
	"github.com/Domenick1991/inflight/internal/service/scanner"
	"github.com/Domenick1991/inflight/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	lg := logger.New(cfg.Log, "scanner-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = lg.WithContext(ctx)

	shutdownTracer, err := tracing.InitTracerProvider(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
	if err != nil {
		lg.Fatal().Err(err).Msg("init tracing")
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			lg.Error().Err(err).Msg("shutdown tracing")
		}
	}()

	pool, err := repository.NewPool(ctx, cfg.Database)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	cacheTTL := time.Duration(cfg.Scanner.KnownCodesCacheTTL) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, cacheTTL)
	defer redisCache.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	scannerMetrics := metrics.NewScanner(reg)

	knownCodeRepo := repository.NewKnownCodeRepository(pool)
	bottleRepo := repository.NewBottleRepository(pool)
	eventRepo := repository.NewBottleEventRepository(pool)

	var recorderOpts []scanner.EventRecorderOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		recorderOpts = append(recorderOpts, scanner.WithPublisher(producer, cfg.Kafka.BottleEventsTopic))
	} else {
		lg.Warn().Msg("kafka brokers not configured, bottle events will not be published")
	}
	recorder := scanner.NewEventRecorder(eventRepo, time.Duration(cfg.Scanner.EventTimeoutMs)*time.Millisecond, recorderOpts...)

	scannerService := scanner.NewScannerService(
		knownCodeRepo,
		bottleRepo,
		scanner.WithRecorder(recorder),
		scanner.WithMetrics(scannerMetrics),
	)
	qrCodeService := qrcodes.NewQRCodeService(knownCodeRepo, bottleRepo, redisCache)

	if err := bootstrap.Run(ctx, cfg, bootstrap.Deps{
		Scanner:   scannerService,
		QRCodes:   qrCodeService,
		Validator: auth.NewTokenValidator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer),
		DB:        pool,
		Gatherer:  reg,
		Logger:    lg,
	}); err != nil {
		lg.Fatal().Err(err).Msg("server error")
	}
}

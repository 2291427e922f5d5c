package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/inflight/config"
	"github.com/Domenick1991/inflight/internal/alert"
	"github.com/Domenick1991/inflight/internal/cache"
	"github.com/Domenick1991/inflight/internal/kafka"
	"github.com/Domenick1991/inflight/internal/logger"
	"github.com/Domenick1991/inflight/internal/repository"
	"github.com/Domenick1991/inflight/internal/service/qrcodes"
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

	lg := logger.New(cfg.Log, "scanner-worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = lg.WithContext(ctx)

	pool, err := repository.NewPool(ctx, cfg.Database)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Scanner.KnownCodesCacheTTL)*time.Second)
	defer redisCache.Close()

	qrCodeService := qrcodes.NewQRCodeService(
		repository.NewKnownCodeRepository(pool),
		repository.NewBottleRepository(pool),
		redisCache,
	)

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BottleEventsTopic)
		defer consumer.Close()

		notifier := alert.NewNotifier(cfg.Scanner.LowFillThresholdPct)

		go func() {
			if err := consumer.ConsumeBottleEvents(ctx, func(ctx context.Context, event kafka.BottleEventMessage) error {
				notifier.Notify(ctx, event)
				return nil
			}); err != nil {
				lg.Error().Err(err).Msg("consumer stopped")
			}
		}()
	} else {
		lg.Warn().Msg("kafka brokers not configured, low fill alerts disabled")
	}

	refresh := func() {
		n, err := qrCodeService.RefreshKnownCodes(ctx)
		if err != nil {
			lg.Error().Err(err).Msg("refresh known codes")
			return
		}
		lg.Info().Int("count", n).Msg("known codes cache refreshed")
	}
	refresh()

	refreshTicker := time.NewTicker(time.Duration(cfg.Worker.CacheRefreshMinutes) * time.Minute)
	defer refreshTicker.Stop()

	for {
		select {
		case <-refreshTicker.C:
			refresh()
		case <-ctx.Done():
			lg.Info().Msg("shutting down")
			return
		}
	}
}

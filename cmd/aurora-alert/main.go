package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/aurora-alert/internal/adapter/geotz"
	kafkaadapter "github.com/couchcryptid/aurora-alert/internal/adapter/kafka"
	smtpadapter "github.com/couchcryptid/aurora-alert/internal/adapter/smtp"
	"github.com/couchcryptid/aurora-alert/internal/adapter/swpc"
	"github.com/couchcryptid/aurora-alert/internal/config"
	"github.com/couchcryptid/aurora-alert/internal/domain"
	"github.com/couchcryptid/aurora-alert/internal/observability"
	"github.com/couchcryptid/aurora-alert/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	resolver, err := geotz.NewResolver()
	if err != nil {
		logger.Error("failed to initialize timezone resolver", "error", err)
		os.Exit(1)
	}

	fetcher := swpc.NewClient(cfg.ForecastURL, cfg.FetchTimeout, logger)
	notifier := smtpadapter.NewNotifier(cfg, logger)

	// Alert event publishing (feature-flagged via KAFKA_BROKERS).
	var publisher pipeline.AlertPublisher
	if len(cfg.KafkaBrokers) > 0 {
		writer := kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaAlertTopic, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("alert event publishing enabled", "topic", cfg.KafkaAlertTopic)
	}

	coord := domain.Coordinate{Lat: cfg.Latitude, Lon: cfg.Longitude}
	p := pipeline.New(fetcher, resolver, notifier, publisher, coord, cfg.KpThreshold, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("aurora alert check starting",
		"threshold", cfg.KpThreshold,
		"lat", cfg.Latitude,
		"lon", cfg.Longitude,
	)

	runErr := p.Run(ctx)

	metrics.RunTimestamp.SetToCurrentTime()
	if runErr == nil {
		metrics.RunSucceeded.Set(1)
	} else {
		metrics.RunSucceeded.Set(0)
	}
	if cfg.PushgatewayURL != "" {
		if err := metrics.Push(cfg.PushgatewayURL, "aurora_alert"); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
	}

	if runErr != nil {
		logger.Error("aurora alert check failed", "error", runErr)
		os.Exit(1)
	}
	logger.Info("aurora alert check finished")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"newscast/app"
	"newscast/config"
	"newscast/events"
	"newscast/logger"
	"newscast/orchestrator"
	"newscast/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info")
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Logging.Level)
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal().Msg("KAFKA_BROKERS is required for the archiver")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer app.CloseStore(st, log)

	archiver := &orchestrator.Archiver{Store: st, Log: log}
	consumer, err := events.NewConsumer(events.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.ConsumedTopic,
		GroupID: cfg.Kafka.GroupID,
		Handler: archiver.MessageHandler(),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create kafka consumer")
	}
	defer consumer.Close()

	if err := consumer.Run(ctx); err != nil {
		log.Error().Err(err).Msg("consumer stopped")
	}
}

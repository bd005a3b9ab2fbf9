package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"newscast/app"
	"newscast/config"
	"newscast/deduplication"
	"newscast/logger"
	"newscast/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info")
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer app.CloseStore(st, log)

	filter := deduplication.NewLinkFilter(&cfg.Redis, log)
	defer filter.Close()

	collector, err := app.NewCollector(&cfg.Collector, st, filter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build collector")
	}

	log.Info().Int("feeds", len(collector.Feeds)).Msg("=== Newscast Collector ===")
	report, err := collector.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("❌ Collection failed")
		os.Exit(1)
	}
	for _, f := range report.Feeds {
		ev := log.Info()
		if f.Error != "" {
			ev = log.Warn().Str("error", f.Error)
		}
		ev.Str("category", string(f.Category)).
			Int("fetched", f.Fetched).
			Int("inserted", f.Inserted).
			Int("skipped", f.Skipped).
			Msg("📰 Feed processed")
	}
	log.Info().Int("inserted", report.Inserted).Int("skipped", report.Skipped).Int("failed", report.Failed).
		Msg("✅ Collection complete")
}

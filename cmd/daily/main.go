package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"newscast/app"
	"newscast/config"
	"newscast/logger"
	"newscast/orchestrator"
	"newscast/store"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Generate and save locally, skip upload, publish and status update")
	skipStatus := flag.Bool("skip-status-update", false, "Do not archive the used news")
	flag.Parse()

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

	gen, err := app.NewGenerator(&cfg.LLM, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build generator")
	}
	job, cleanup, err := app.NewDailyJob(ctx, cfg, st, gen, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build daily job")
	}
	defer cleanup()

	log.Info().Msg("=== Newscast Daily Script ===")
	res, err := job.Run(ctx, orchestrator.Options{DryRun: *dryRun, SkipStatusUpdate: *skipStatus})
	if err != nil {
		log.Error().Err(err).Msg("❌ Daily run failed")
		cleanup()
		os.Exit(1)
	}
	if res.Skipped {
		log.Warn().Msg("No script generated")
		return
	}
	log.Info().Str("date", res.Date).Str("path", res.LocalPath).Str("key", res.RemoteKey).
		Bool("published", res.Published).Int("archived", res.Archived).Msg("Done")
}

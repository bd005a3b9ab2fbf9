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
	gen, err := app.NewGenerator(&cfg.LLM, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build generator")
	}
	job, cleanup, err := app.NewDailyJob(ctx, cfg, st, gen, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build daily job")
	}
	defer cleanup()

	sched := orchestrator.NewScheduler(orchestrator.Tokyo(), log)
	if err := sched.Add("collect", cfg.Schedule.Collect, func(ctx context.Context) error {
		_, err := collector.Run(ctx)
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("invalid collect schedule")
	}
	if err := sched.Add("daily", cfg.Schedule.Daily, func(ctx context.Context) error {
		_, err := job.Run(ctx, orchestrator.Options{})
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("invalid daily schedule")
	}

	sched.Start()
	log.Info().Str("collect", cfg.Schedule.Collect).Str("daily", cfg.Schedule.Daily).Msg("⏰ Scheduler running (Asia/Tokyo)")
	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	stopCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		log.Warn().Err(err).Msg("running jobs did not finish in time")
	}
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"newscast/common"
	"newscast/config"
	"newscast/deduplication"
	"newscast/events"
	"newscast/generator"
	"newscast/orchestrator"
	"newscast/rssfeeds"
	"newscast/store"
)

// NewCollector builds the feed collector from configuration. FeedsFile overrides
// the built-in Yahoo! topic feeds.
func NewCollector(cfg *config.CollectorConfig, st store.DocumentStore, filter deduplication.LinkFilter, log zerolog.Logger) (*rssfeeds.Collector, error) {
	feeds := rssfeeds.DefaultFeeds
	if cfg.FeedsFile != "" {
		loaded, err := rssfeeds.LoadFeeds(cfg.FeedsFile)
		if err != nil {
			return nil, fmt.Errorf("load feeds: %w", err)
		}
		feeds = loaded
	}

	c := &rssfeeds.Collector{
		Feeds:   feeds,
		Fetcher: rssfeeds.NewFetcher(cfg.MaxPerFeed),
		Store:   st,
		Filter:  filter,
		Workers: cfg.Workers,
		Log:     log,
	}
	if cfg.Enrich {
		c.Extractor = rssfeeds.ReadabilityExtractor{}
	}
	return c, nil
}

// NewGenerator builds the script generator. A backend that cannot be configured
// does not stop the caller; every generation then fails with the setup error.
func NewGenerator(cfg *config.LLMConfig, log zerolog.Logger) (*generator.Generator, error) {
	llm, err := generator.NewLLMFromConfig(cfg)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.Provider).Msg("⚠️  LLM not configured; script generation disabled")
		llm = unavailableLLM{err: err}
	}
	return generator.NewGenerator(llm, cfg.Validate, log)
}

type unavailableLLM struct{ err error }

func (u unavailableLLM) Complete(context.Context, generator.Prompt) (string, error) {
	return "", u.err
}

// NewDailyJob wires the daily job with its optional S3 sink and Kafka publisher.
// The returned cleanup closes whatever was opened.
func NewDailyJob(ctx context.Context, cfg *config.Config, st store.DocumentStore, gen orchestrator.ScriptGenerator, log zerolog.Logger) (*orchestrator.DailyJob, func(), error) {
	job := &orchestrator.DailyJob{
		Store:     st,
		Generator: gen,
		Local:     orchestrator.LocalSink{Dir: cfg.Output.Dir},
		Topic:     cfg.Kafka.GeneratedTopic,
		Location:  orchestrator.Tokyo(),
		Log:       log,
	}
	cleanup := func() {}

	if cfg.S3.Bucket == "" {
		log.Warn().Msg("⚠️  S3_BUCKET not set; scripts are only saved locally")
	} else {
		objects, err := common.NewS3(ctx, &cfg.S3)
		if err != nil {
			return nil, cleanup, fmt.Errorf("init s3: %w", err)
		}
		job.Remote = orchestrator.S3Sink{Objects: objects, Prefix: cfg.S3.Prefix, Log: log}
	}

	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn().Msg("⚠️  KAFKA_BROKERS not set; script events are not published")
	} else {
		producer, err := events.NewProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			return nil, cleanup, err
		}
		job.Publisher = producer
		cleanup = func() {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("close kafka producer")
			}
		}
	}
	return job, cleanup, nil
}

// CloseStore closes st when the backend holds resources.
func CloseStore(st store.DocumentStore, log zerolog.Logger) {
	if c, ok := st.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}
}

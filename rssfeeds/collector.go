package rssfeeds

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"newscast/deduplication"
	"newscast/store"
	"newscast/types"
)

// CategoryReport counts one feed's outcome.
type CategoryReport struct {
	Category types.Category `json:"category"`
	Fetched  int            `json:"fetched"`
	Inserted int            `json:"inserted"`
	Skipped  int            `json:"skipped"`
	Failed   int            `json:"failed"`
	Error    string         `json:"error,omitempty"`
}

// Report summarizes one collection run.
type Report struct {
	Feeds    []CategoryReport `json:"feeds"`
	Fetched  int              `json:"fetched"`
	Inserted int              `json:"inserted"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
}

// Collector fetches every configured feed and upserts new entries by link.
type Collector struct {
	Feeds     []Feed
	Fetcher   FeedFetcher
	Store     store.DocumentStore
	Filter    deduplication.LinkFilter
	Extractor SummaryExtractor // nil disables summary enrichment
	Workers   int
	Log       zerolog.Logger
}

// Run processes the feeds in order. A failing feed is recorded and skipped; Run only
// returns an error when the context ends or every feed failed.
func (c *Collector) Run(ctx context.Context) (Report, error) {
	var report Report
	filter := c.Filter
	if filter == nil {
		filter = deduplication.NopFilter{}
	}

	failedFeeds := 0
	for _, feed := range c.Feeds {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		c.Log.Info().Str("category", feed.Category.Label()).Msg("📰 Fetching feed")
		cr := c.collectFeed(ctx, feed, filter)
		if cr.Error != "" {
			failedFeeds++
			c.Log.Warn().Str("category", feed.Category.Label()).Str("error", cr.Error).Msg("⚠️  Feed failed")
		} else {
			c.Log.Info().
				Str("category", feed.Category.Label()).
				Int("fetched", cr.Fetched).
				Int("inserted", cr.Inserted).
				Int("skipped", cr.Skipped).
				Msg("✅ Feed stored")
		}

		report.Feeds = append(report.Feeds, cr)
		report.Fetched += cr.Fetched
		report.Inserted += cr.Inserted
		report.Skipped += cr.Skipped
		report.Failed += cr.Failed
	}

	c.Log.Info().Int("inserted", report.Inserted).Int("skipped", report.Skipped).Msg("🎉 Collection complete")

	if len(c.Feeds) > 0 && failedFeeds == len(c.Feeds) {
		return report, fmt.Errorf("all %d feeds failed", failedFeeds)
	}
	return report, nil
}

func (c *Collector) collectFeed(ctx context.Context, feed Feed, filter deduplication.LinkFilter) CategoryReport {
	cr := CategoryReport{Category: feed.Category}

	docs, err := c.Fetcher.Fetch(ctx, feed)
	if err != nil {
		cr.Error = err.Error()
		return cr
	}
	cr.Fetched = len(docs)

	fresh := make([]types.NewsDocument, 0, len(docs))
	for _, d := range docs {
		known, err := c.alreadyStored(ctx, filter, d.Link)
		if err != nil {
			cr.Failed++
			c.Log.Error().Err(err).Str("link", d.Link).Msg("❌ Link check failed")
			continue
		}
		if known {
			cr.Skipped++
			continue
		}
		fresh = append(fresh, d)
	}

	if c.Extractor != nil && len(fresh) > 0 {
		n := EnrichSummaries(fresh, c.Extractor, c.Workers, c.Log)
		c.Log.Debug().Int("filled", n).Int("candidates", len(fresh)).Msg("summaries enriched")
	}

	for _, d := range fresh {
		inserted, err := c.Store.Insert(ctx, d)
		if err != nil {
			cr.Failed++
			c.Log.Error().Err(err).Str("link", d.Link).Msg("❌ Insert failed")
			continue
		}
		if inserted {
			cr.Inserted++
		} else {
			cr.Skipped++
		}
		if err := filter.Mark(ctx, d.Link); err != nil {
			c.Log.Warn().Err(err).Msg("⚠️  Bloom mark failed")
		}
	}
	return cr
}

// alreadyStored consults the bloom filter first; only a hit costs a store lookup,
// since a bloom hit may be a false positive.
func (c *Collector) alreadyStored(ctx context.Context, filter deduplication.LinkFilter, link string) (bool, error) {
	seen, err := filter.Seen(ctx, link)
	if err != nil {
		c.Log.Warn().Err(err).Msg("⚠️  Bloom check failed; falling back to store")
		seen = true
	}
	if !seen {
		return false, nil
	}
	return c.Store.ExistsByLink(ctx, link)
}

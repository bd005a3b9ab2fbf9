package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"newscast/config"
	"newscast/events"
	"newscast/store"
	"newscast/types"
)

// ScriptGenerator produces a script from exactly three items.
type ScriptGenerator interface {
	Generate(ctx context.Context, items []types.ScriptItem) (*types.PodcastScript, error)
}

// Publisher sends an event to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, v any) error
}

// Options tune one daily run.
type Options struct {
	// DryRun generates and saves locally but skips upload, publish and archiving
	DryRun           bool
	SkipStatusUpdate bool
}

// Result describes what a daily run did.
type Result struct {
	Skipped     bool                 `json:"skipped"`
	Date        string               `json:"date"`
	DocumentIDs []string             `json:"document_ids"`
	LocalPath   string               `json:"local_path,omitempty"`
	RemoteKey   string               `json:"remote_key,omitempty"`
	Published   bool                 `json:"published"`
	Archived    int                  `json:"archived"`
	Script      *types.PodcastScript `json:"-"`
}

// DailyJob turns the selected documents into the day's script.
type DailyJob struct {
	Store     store.DocumentStore
	Generator ScriptGenerator
	Local     ScriptSink
	Remote    ScriptSink // optional
	Publisher Publisher  // optional
	Topic     string
	Location  *time.Location
	Now       func() time.Time
	Log       zerolog.Logger
}

// Run executes one daily cycle. Fewer than three selected documents is not an
// error; the run is reported as skipped.
func (j *DailyJob) Run(ctx context.Context, opts Options) (Result, error) {
	if j.Store == nil || j.Generator == nil {
		return Result{}, errors.New("daily job needs a store and a generator")
	}
	now := j.now()
	res := Result{Date: ScriptDate(now, j.location())}
	log := j.Log.With().Str("date", res.Date).Bool("dry_run", opts.DryRun).Logger()

	// Step 1: pick the curated documents
	selected := types.StatusSelected
	docs, err := j.Store.List(ctx, store.Query{Status: &selected, Limit: config.ScriptItemCount})
	if err != nil {
		return res, fmt.Errorf("list selected news: %w", err)
	}
	if len(docs) < config.ScriptItemCount {
		log.Warn().Int("selected", len(docs)).Int("required", config.ScriptItemCount).
			Msg("⚠️  Not enough selected news, skipping generation")
		res.Skipped = true
		return res, nil
	}

	items := make([]types.ScriptItem, 0, len(docs))
	for _, d := range docs {
		res.DocumentIDs = append(res.DocumentIDs, d.ID)
		items = append(items, types.ScriptItemFromDocument(d))
	}

	// Step 2: generate
	log.Info().Strs("ids", res.DocumentIDs).Msg("Generating script...")
	script, err := j.Generator.Generate(ctx, items)
	if err != nil {
		return res, err
	}
	res.Script = script

	// Step 3: persist
	local := j.Local
	if local == nil {
		local = LocalSink{}
	}
	if res.LocalPath, err = local.Save(ctx, res.Date, script); err != nil {
		return res, err
	}
	log.Info().Str("path", res.LocalPath).Int("words", script.WordCount()).Msg("💾 Script saved")

	if opts.DryRun {
		log.Info().Msg("Dry run: skipping upload, publish and status update")
		return res, nil
	}

	if j.Remote != nil {
		if res.RemoteKey, err = j.Remote.Save(ctx, res.Date, script); err != nil {
			return res, err
		}
		log.Info().Str("key", res.RemoteKey).Msg("☁️  Script uploaded")
	}

	// Step 4: notify downstream
	if j.Publisher != nil {
		ev := events.ScriptGenerated{
			ID:          uuid.NewString(),
			Date:        res.Date,
			DocumentIDs: res.DocumentIDs,
			ScriptKey:   res.RemoteKey,
			Topics:      script.Metadata.Topics,
			CreatedAt:   now,
		}
		if ev.ScriptKey == "" {
			ev.ScriptKey = res.LocalPath
		}
		if err := j.Publisher.Publish(ctx, j.topic(), res.Date, ev); err != nil {
			return res, err
		}
		res.Published = true
	}

	// Step 5: archive the used documents
	if opts.SkipStatusUpdate {
		log.Info().Msg("Skipping status update")
		return res, nil
	}
	if err := j.Store.UpdateStatus(ctx, res.DocumentIDs, types.StatusArchived, now); err != nil {
		return res, fmt.Errorf("archive used news: %w", err)
	}
	res.Archived = len(res.DocumentIDs)
	log.Info().Int("archived", res.Archived).Msg("✅ Daily script complete")
	return res, nil
}

func (j *DailyJob) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *DailyJob) location() *time.Location {
	if j.Location != nil {
		return j.Location
	}
	return Tokyo()
}

func (j *DailyJob) topic() string {
	if j.Topic != "" {
		return j.Topic
	}
	return events.TopicScriptGenerated
}

// ScriptDate formats t as YYYYMMDD in loc.
func ScriptDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("20060102")
}

// Tokyo loads Asia/Tokyo, falling back to a fixed +09:00 zone without tzdata.
func Tokyo() *time.Location {
	loc, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

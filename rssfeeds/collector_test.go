package rssfeeds

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"newscast/store"
	"newscast/types"
)

type fakeFetcher struct {
	byURL map[string][]types.NewsDocument
	errs  map[string]error
}

func (f *fakeFetcher) Fetch(_ context.Context, feed Feed) ([]types.NewsDocument, error) {
	if err := f.errs[feed.URL]; err != nil {
		return nil, err
	}
	return f.byURL[feed.URL], nil
}

// fakeFilter is an exact set, so it never produces false positives.
type fakeFilter struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeFilter) Seen(_ context.Context, link string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[link], nil
}

func (f *fakeFilter) Mark(_ context.Context, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[link] = true
	return nil
}

func (f *fakeFilter) Close() error { return nil }

type fakeExtractor struct{ summary string }

func (f fakeExtractor) Extract(string) (string, error) { return f.summary, nil }

func doc(cat types.Category, link, summary string) types.NewsDocument {
	return types.NewsDocument{Category: cat, Title: "title " + link, Link: link, Summary: summary, Status: types.StatusUnread}
}

func TestCollectorSkipsKnownLinks(t *testing.T) {
	mem := store.NewMemory()
	if _, err := mem.Insert(context.Background(), doc(types.CategoryMain, "https://x/1", "")); err != nil {
		t.Fatalf("seed: %v", err)
	}
	filter := &fakeFilter{seen: map[string]bool{"https://x/1": true}}

	c := &Collector{
		Feeds: []Feed{{Category: types.CategoryMain, URL: "main"}, {Category: types.CategorySports, URL: "sports"}},
		Fetcher: &fakeFetcher{byURL: map[string][]types.NewsDocument{
			"main":   {doc(types.CategoryMain, "https://x/1", ""), doc(types.CategoryMain, "https://x/2", "s")},
			"sports": {doc(types.CategorySports, "https://x/3", "s"), doc(types.CategorySports, "https://x/2", "dup")},
		}},
		Store:  mem,
		Filter: filter,
		Log:    zerolog.Nop(),
	}

	report, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if report.Fetched != 4 || report.Inserted != 2 || report.Skipped != 2 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if mem.Len() != 3 {
		t.Fatalf("store has %d docs; want 3", mem.Len())
	}
	if !filter.seen["https://x/3"] {
		t.Fatalf("inserted link should be marked in the filter")
	}

	// A second run over the same feeds inserts nothing.
	report, err = c.Run(context.Background())
	if err != nil || report.Inserted != 0 || report.Skipped != 4 {
		t.Fatalf("second run report = %+v, err %v", report, err)
	}
}

func TestCollectorBloomFalsePositiveStillInserts(t *testing.T) {
	mem := store.NewMemory()
	c := &Collector{
		Feeds:   []Feed{{Category: types.CategoryIT, URL: "it"}},
		Fetcher: &fakeFetcher{byURL: map[string][]types.NewsDocument{"it": {doc(types.CategoryIT, "https://x/new", "")}}},
		Store:   mem,
		Filter:  &fakeFilter{seen: map[string]bool{"https://x/new": true}},
		Log:     zerolog.Nop(),
	}
	report, err := c.Run(context.Background())
	if err != nil || report.Inserted != 1 {
		t.Fatalf("report = %+v, err %v; want 1 inserted", report, err)
	}
}

func TestCollectorIsolatesFeedFailures(t *testing.T) {
	mem := store.NewMemory()
	c := &Collector{
		Feeds: []Feed{{Category: types.CategoryMain, URL: "down"}, {Category: types.CategoryIT, URL: "up"}},
		Fetcher: &fakeFetcher{
			byURL: map[string][]types.NewsDocument{"up": {doc(types.CategoryIT, "https://x/9", "")}},
			errs:  map[string]error{"down": errors.New("timeout")},
		},
		Store:     mem,
		Extractor: fakeExtractor{summary: "filled"},
		Workers:   2,
		Log:       zerolog.Nop(),
	}

	report, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if report.Feeds[0].Error == "" || report.Inserted != 1 {
		t.Fatalf("report = %+v", report)
	}
	got, _ := mem.Get(context.Background(), types.DocumentID("https://x/9"))
	if got == nil || got.Summary != "filled" {
		t.Fatalf("summary should be enriched, got %+v", got)
	}

	c.Feeds = c.Feeds[:1]
	if _, err := c.Run(context.Background()); err == nil {
		t.Fatalf("expected error when every feed fails")
	}
}

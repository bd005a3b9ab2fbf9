package rssfeeds

import (
	"os"
	"path/filepath"
	"testing"

	"newscast/types"
)

func TestDefaultFeedsCoverEveryCategory(t *testing.T) {
	feeds, err := LoadFeeds("")
	if err != nil {
		t.Fatalf("LoadFeeds error: %v", err)
	}
	if len(feeds) != len(types.Categories) {
		t.Fatalf("got %d feeds; want %d", len(feeds), len(types.Categories))
	}
	for i, c := range types.Categories {
		if feeds[i].Category != c {
			t.Fatalf("feed %d category = %s; want %s", i, feeds[i].Category, c)
		}
	}
}

func TestLoadFeedsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	body := "feeds:\n  - category: 国際\n    url: https://example.com/world.xml\n  - category: it\n    url: https://example.com/it.xml\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds error: %v", err)
	}
	if len(feeds) != 2 || feeds[0].Category != types.CategoryInternational || feeds[1].Category != types.CategoryIT {
		t.Fatalf("feeds = %+v", feeds)
	}
}

func TestParseFeedsErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty", "feeds: []\n"},
		{"bad category", "feeds:\n  - category: weather\n    url: https://x\n"},
		{"missing url", "feeds:\n  - category: main\n"},
		{"bad yaml", "feeds: [\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseFeeds([]byte(c.body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

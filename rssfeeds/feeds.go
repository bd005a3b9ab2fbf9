package rssfeeds

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"newscast/types"
)

// Feed is one category-bound RSS endpoint.
type Feed struct {
	Category types.Category `yaml:"category" json:"category"`
	URL      string         `yaml:"url" json:"url"`
}

// DefaultFeeds are the Yahoo! News topic feeds, one per category.
var DefaultFeeds = []Feed{
	{Category: types.CategoryMain, URL: "https://news.yahoo.co.jp/rss/topics/top-picks.xml"},
	{Category: types.CategoryDomestic, URL: "https://news.yahoo.co.jp/rss/topics/domestic.xml"},
	{Category: types.CategoryInternational, URL: "https://news.yahoo.co.jp/rss/topics/world.xml"},
	{Category: types.CategoryEconomy, URL: "https://news.yahoo.co.jp/rss/topics/business.xml"},
	{Category: types.CategoryEntertainment, URL: "https://news.yahoo.co.jp/rss/topics/entertainment.xml"},
	{Category: types.CategorySports, URL: "https://news.yahoo.co.jp/rss/topics/sports.xml"},
	{Category: types.CategoryIT, URL: "https://news.yahoo.co.jp/rss/topics/it.xml"},
}

type feedsFile struct {
	Feeds []struct {
		Category string `yaml:"category"`
		URL      string `yaml:"url"`
	} `yaml:"feeds"`
}

// LoadFeeds returns DefaultFeeds when path is empty, otherwise the feeds listed in
// the YAML file at path.
func LoadFeeds(path string) ([]Feed, error) {
	if path == "" {
		return DefaultFeeds, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}
	return ParseFeeds(data)
}

// ParseFeeds decodes a feeds YAML document. Categories may be codes or Japanese labels.
func ParseFeeds(data []byte) ([]Feed, error) {
	var f feedsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse feeds yaml: %w", err)
	}
	if len(f.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file lists no feeds")
	}

	out := make([]Feed, 0, len(f.Feeds))
	for i, raw := range f.Feeds {
		cat, err := types.ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("feed %d: %w", i, err)
		}
		if raw.URL == "" {
			return nil, fmt.Errorf("feed %d (%s): url is required", i, cat)
		}
		out = append(out, Feed{Category: cat, URL: raw.URL})
	}
	return out, nil
}

package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"newscast/config"
	"newscast/types"
)

// FeedFetcher turns one feed into candidate documents.
type FeedFetcher interface {
	Fetch(ctx context.Context, feed Feed) ([]types.NewsDocument, error)
}

// Fetcher retrieves and parses RSS/Atom feeds with gofeed
type Fetcher struct {
	parser   *gofeed.Parser
	maxCount int
}

// NewFetcher returns a Fetcher. maxCount <= 0 keeps every entry.
func NewFetcher(maxCount int) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: config.FeedFetchTimeout}
	parser.UserAgent = "newscast-collector/1.0"
	return &Fetcher{parser: parser, maxCount: maxCount}
}

// Fetch downloads feed.URL and maps entries into unread documents tagged with feed.Category.
func (f *Fetcher) Fetch(ctx context.Context, feed Feed) ([]types.NewsDocument, error) {
	parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feed.URL, err)
	}
	return mapItems(parsed.Items, feed.Category, f.maxCount), nil
}

func mapItems(items []*gofeed.Item, category types.Category, maxCount int) []types.NewsDocument {
	count := len(items)
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}

	docs := make([]types.NewsDocument, 0, count)
	for _, item := range items[:count] {
		link := strings.TrimSpace(item.Link)
		title := strings.TrimSpace(item.Title)
		if link == "" || title == "" {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		// Keep the raw published text; fall back to the parsed value when the feed omits it.
		pubDate := item.Published
		if pubDate == "" && item.PublishedParsed != nil {
			pubDate = item.PublishedParsed.Format(time.RFC1123Z)
		}

		docs = append(docs, types.NewsDocument{
			ID:       types.DocumentID(link),
			Category: category,
			Title:    title,
			Link:     link,
			Summary:  plainText(summary),
			PubDate:  pubDate,
			Status:   types.StatusUnread,
		})
	}
	return docs
}

package rssfeeds

import (
	"fmt"
	"strings"
	"sync"

	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"

	"newscast/config"
	"newscast/types"
)

// SummaryExtractor fetches an article page and returns a short text summary.
type SummaryExtractor interface {
	Extract(link string) (string, error)
}

// ReadabilityExtractor pulls the excerpt (or leading text) of a page with go-readability.
type ReadabilityExtractor struct {
	MaxRunes int
}

func (r ReadabilityExtractor) Extract(link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("article URL is empty")
	}

	article, err := readability.FromURL(link, config.ExtractorTimeout)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	text := article.Excerpt
	if strings.TrimSpace(text) == "" {
		text = article.TextContent
	}
	text = strings.Join(strings.Fields(text), " ")

	limit := r.MaxRunes
	if limit <= 0 {
		limit = 280
	}
	if runes := []rune(text); len(runes) > limit {
		text = string(runes[:limit]) + "…"
	}
	return text, nil
}

// EnrichSummaries fills empty summaries in place using a fixed pool of workers.
// Failures leave the summary empty and are only logged.
func EnrichSummaries(docs []types.NewsDocument, ex SummaryExtractor, workers int, log zerolog.Logger) int {
	if workers <= 0 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		filled  int
		indexes = make(chan int, len(docs))
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range indexes {
				summary, err := ex.Extract(docs[i].Link)
				if err != nil {
					log.Debug().Err(err).Int("worker", workerID).Str("link", docs[i].Link).Msg("summary extraction failed")
					continue
				}
				if summary == "" {
					continue
				}
				docs[i].Summary = summary
				mu.Lock()
				filled++
				mu.Unlock()
			}
		}(w)
	}

	for i := range docs {
		if docs[i].Summary == "" {
			indexes <- i
		}
	}
	close(indexes)
	wg.Wait()

	return filled
}

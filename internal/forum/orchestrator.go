package forum

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

// DefaultPageDelay is the fixed inter-page delay used to stay under
// anti-scraping rate limits.
const DefaultPageDelay = 500 * time.Millisecond

// Orchestrator drives sequential authenticated page fetches for one
// thread and aggregates them into a single Thread record. Pages are
// fetched strictly in order; a single page failure aborts the whole
// fetch with no partial result.
type Orchestrator struct {
	parser    Parser
	fetcher   Fetcher
	pageDelay time.Duration
	logger    arbor.ILogger
}

// NewOrchestrator creates a thread fetch orchestrator. A pageDelay of 0
// falls back to DefaultPageDelay.
func NewOrchestrator(parser Parser, fetcher Fetcher, pageDelay time.Duration, logger arbor.ILogger) *Orchestrator {
	if pageDelay <= 0 {
		pageDelay = DefaultPageDelay
	}
	return &Orchestrator{
		parser:    parser,
		fetcher:   fetcher,
		pageDelay: pageDelay,
		logger:    logger,
	}
}

// GetThread fetches up to maxPages pages of the thread at url. The
// first page reports the total page count, which is clamped to
// maxPages; pages 2..clamped are then fetched sequentially with the
// inter-page delay between requests.
func (o *Orchestrator) GetThread(ctx context.Context, url string, maxPages int) (*Thread, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	fetchID := uuid.NewString()
	o.logger.Debug().
		Str("fetch_id", fetchID).
		Str("url", url).
		Int("max_pages", maxPages).
		Msg("Starting thread fetch")

	first, err := o.GetPage(ctx, url, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page 1: %w", err)
	}

	totalPages := first.TotalPages
	if totalPages > maxPages {
		totalPages = maxPages
	}
	if totalPages < 1 {
		totalPages = 1
	}

	posts := append([]Post{}, first.Posts...)

	// Token-bucket limiter spacing page fetches by pageDelay. The
	// initial token is consumed up front so page 2 already waits.
	limiter := rate.NewLimiter(rate.Every(o.pageDelay), 1)
	limiter.Allow()

	for page := 2; page <= totalPages; page++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("thread fetch cancelled: %w", err)
		}

		result, err := o.GetPage(ctx, url, page)
		if err != nil {
			// Deliberate: no retry, no partial-thread fallback.
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		posts = append(posts, result.Posts...)
	}

	o.logger.Debug().
		Str("fetch_id", fetchID).
		Int("pages", totalPages).
		Int("posts", len(posts)).
		Msg("Thread fetch complete")

	return &Thread{
		ID:         o.parser.ExtractThreadID(url),
		Title:      first.Title,
		URL:        url,
		TotalPages: totalPages,
		Posts:      posts,
	}, nil
}

// GetPage fetches and parses a single page of a thread.
func (o *Orchestrator) GetPage(ctx context.Context, url string, page int) (*PageResult, error) {
	pageURL := o.parser.BuildPageURL(url, page)

	html, err := o.fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	result := o.parser.ParsePage(html, page)
	return &result, nil
}

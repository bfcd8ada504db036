package forum

import "context"

// Parser is the per-forum capability: page parsing plus URL navigation.
// The two forums have unrelated markup and URL shapes, so each site
// package provides its own implementation; they must never be conflated.
type Parser interface {
	// ParsePage extracts posts, the reported total page count, and the
	// thread title from raw page HTML. It never fails: missing fields
	// degrade to documented defaults and a page with zero recognizable
	// post blocks is a valid empty result with TotalPages 1.
	ParsePage(html string, pageNumber int) PageResult

	// BuildPageURL returns the URL addressing the given page of a
	// thread. Pure and deterministic.
	BuildPageURL(threadURL string, page int) string

	// ExtractThreadID derives the forum-assigned thread id from a
	// thread URL. Pure and deterministic.
	ExtractThreadID(threadURL string) string
}

// Fetcher retrieves rendered page HTML. Implemented by the
// authenticated browser session; substituted with fixtures in tests.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

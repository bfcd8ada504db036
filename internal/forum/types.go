// -----------------------------------------------------------------------
// Shared forum data model. All entities are value objects created fresh
// per fetch and owned by the caller; content fields have passed through
// the sanitizer exactly once by the time they leave the parser.
// -----------------------------------------------------------------------

package forum

// Post is a single user-authored message within a thread.
type Post struct {
	ID         string
	Author     string
	AuthorID   string
	Date       string // forum-local display format, not normalized
	Content    string // reply text only, quote blocks excised
	Quotes     []string
	Likes      int
	PageNumber int
}

// Thread is an ordered collection of posts across fetched pages.
// TotalPages reflects the pages actually fetched, which may be clamped
// below the forum's reported total by a caller-supplied page cap.
type Thread struct {
	ID         string
	Title      string
	URL        string
	TotalPages int
	Posts      []Post
}

// Quote is one entry on a profile's quotes/mentions page, newest first
// as presented by the source.
type Quote struct {
	PostID      string
	Author      string
	Date        string
	Time        string
	ThreadTitle string
	ThreadURL   string
	Preview     string
}

// PageResult is the outcome of parsing a single thread page.
type PageResult struct {
	Posts      []Post
	TotalPages int
	Title      string
}

// SearchResult is one thread hit from a subforum search.
type SearchResult struct {
	ID    string
	Title string
	URL   string
}

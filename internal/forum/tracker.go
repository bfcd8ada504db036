package forum

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/interfaces"
)

// QuoteCheck is the outcome of classifying a freshly fetched quote list
// against the persisted cursor for its profile URL.
type QuoteCheck struct {
	Quotes     []Quote
	NewCount   int
	LastSeenID string
	// FirstCheck marks a baseline-establishing call: no cursor existed
	// yet, so NewCount is 0 by definition, not because nothing is new.
	FirstCheck bool
}

// QuoteTracker maintains the per-profile-URL last-seen high-water mark
// used to partition quote lists into new vs already-seen.
type QuoteTracker struct {
	store  interfaces.CursorStorage
	logger arbor.ILogger
}

// NewQuoteTracker creates a quote tracker backed by the given cursor
// storage.
func NewQuoteTracker(store interfaces.CursorStorage, logger arbor.ILogger) *QuoteTracker {
	return &QuoteTracker{store: store, logger: logger}
}

// Classify partitions quotes (newest first, as presented by the source)
// into new vs seen relative to the cursor for profileURL, then persists
// the newest quote's id as the new cursor. Distinct profile URLs never
// share a cursor.
func (t *QuoteTracker) Classify(ctx context.Context, profileURL string, quotes []Quote) (*QuoteCheck, error) {
	check := &QuoteCheck{Quotes: quotes}

	lastSeen, err := t.store.Get(ctx, profileURL)
	switch {
	case errors.Is(err, interfaces.ErrCursorNotFound):
		check.FirstCheck = true
	case err != nil:
		return nil, fmt.Errorf("failed to read quote cursor: %w", err)
	default:
		check.LastSeenID = lastSeen
		check.NewCount = countNewQuotes(quotes, lastSeen)
	}

	if len(quotes) > 0 {
		if err := t.store.Set(ctx, profileURL, quotes[0].PostID); err != nil {
			return nil, fmt.Errorf("failed to persist quote cursor: %w", err)
		}
		t.logger.Debug().
			Str("profile_url", profileURL).
			Str("cursor", quotes[0].PostID).
			Int("new_count", check.NewCount).
			Bool("first_check", check.FirstCheck).
			Msg("Quote cursor updated")
	}

	return check, nil
}

// countNewQuotes counts leading quotes whose id does not match or
// precede the cursor. Post ids are forum-assigned and numeric in
// practice; when either side is non-numeric only an exact match stops
// the scan.
func countNewQuotes(quotes []Quote, lastSeenID string) int {
	cursorNum, cursorNumeric := parsePostID(lastSeenID)

	for i, q := range quotes {
		if q.PostID == lastSeenID {
			return i
		}
		if cursorNumeric {
			if n, ok := parsePostID(q.PostID); ok && n <= cursorNum {
				return i
			}
		}
	}
	return len(quotes)
}

func parsePostID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	return n, err == nil
}

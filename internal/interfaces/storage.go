package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCursorNotFound is returned when no cursor exists for a source URL.
var ErrCursorNotFound = errors.New("cursor not found")

// QuoteCursor is the persisted last-seen high-water mark for a profile
// quotes page, keyed by the exact source URL.
type QuoteCursor struct {
	SourceURL  string `badgerhold:"key"`
	LastSeenID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CursorStorage persists quote-tracking cursors across invocations.
// Single-writer assumption: not designed for concurrent multi-process
// access against the same URL.
type CursorStorage interface {
	// Get returns the last-seen quote id for sourceURL, or
	// ErrCursorNotFound when this URL has never been checked.
	Get(ctx context.Context, sourceURL string) (string, error)

	// Set records lastSeenID as the new cursor for sourceURL, creating
	// the cursor on first write.
	Set(ctx context.Context, sourceURL, lastSeenID string) error
}

// StorageManager provides access to all storage interfaces.
type StorageManager interface {
	CursorStorage() CursorStorage
	Close() error
}

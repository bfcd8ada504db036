package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/jvidalv/lo-claude/internal/interfaces"
)

// CursorStorage implements the CursorStorage interface for Badger. Each
// cursor is keyed by the exact source URL, so distinct profile URLs
// never share state.
type CursorStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCursorStorage creates a new CursorStorage instance
func NewCursorStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CursorStorage {
	return &CursorStorage{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the last-seen id for a source URL
func (s *CursorStorage) Get(ctx context.Context, sourceURL string) (string, error) {
	var cursor interfaces.QuoteCursor
	err := s.db.Store().Get(sourceURL, &cursor)
	if err == badgerhold.ErrNotFound {
		return "", interfaces.ErrCursorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cursor: %w", err)
	}

	return cursor.LastSeenID, nil
}

// Set inserts or updates the cursor for a source URL, preserving the
// original CreatedAt on update
func (s *CursorStorage) Set(ctx context.Context, sourceURL, lastSeenID string) error {
	now := time.Now()

	cursor := interfaces.QuoteCursor{
		SourceURL:  sourceURL,
		LastSeenID: lastSeenID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var existing interfaces.QuoteCursor
	if err := s.db.Store().Get(sourceURL, &existing); err == nil {
		cursor.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Store().Upsert(sourceURL, &cursor); err != nil {
		return fmt.Errorf("failed to store cursor: %w", err)
	}

	s.logger.Debug().
		Str("source_url", sourceURL).
		Str("last_seen_id", lastSeenID).
		Msg("Quote cursor updated")

	return nil
}

package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/jvidalv/lo-claude/internal/common"
	"github.com/jvidalv/lo-claude/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db     *BadgerDB
	cursor interfaces.CursorStorage
	logger arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:     db,
		cursor: NewCursorStorage(db, logger),
		logger: logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// CursorStorage returns the quote cursor storage interface
func (m *Manager) CursorStorage() interfaces.CursorStorage {
	return m.cursor
}

// Close closes the underlying database
func (m *Manager) Close() error {
	return m.db.Close()
}

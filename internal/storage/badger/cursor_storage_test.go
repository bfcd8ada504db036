package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/jvidalv/lo-claude/internal/interfaces"
)

func openTestStorage(t *testing.T) interfaces.CursorStorage {
	t.Helper()

	tmpDir := t.TempDir()
	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db := &BadgerDB{store: store}
	return NewCursorStorage(db, arbor.NewLogger())
}

func TestCursorStorage_GetMissing(t *testing.T) {
	storage := openTestStorage(t)
	ctx := t.Context()

	_, err := storage.Get(ctx, "https://forocoches.com/foro/usercp.php")
	assert.ErrorIs(t, err, interfaces.ErrCursorNotFound)
}

func TestCursorStorage_SetThenGet(t *testing.T) {
	storage := openTestStorage(t)
	ctx := t.Context()
	url := "https://forocoches.com/foro/usercp.php"

	require.NoError(t, storage.Set(ctx, url, "500"))

	got, err := storage.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "500", got)
}

func TestCursorStorage_UpdateOverwrites(t *testing.T) {
	storage := openTestStorage(t)
	ctx := t.Context()
	url := "https://forocoches.com/foro/usercp.php"

	require.NoError(t, storage.Set(ctx, url, "500"))
	require.NoError(t, storage.Set(ctx, url, "750"))

	got, err := storage.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "750", got)
}

func TestCursorStorage_DistinctURLsIsolated(t *testing.T) {
	storage := openTestStorage(t)
	ctx := t.Context()

	require.NoError(t, storage.Set(ctx, "https://forocoches.com/a", "100"))
	require.NoError(t, storage.Set(ctx, "https://forocoches.com/b", "200"))

	a, err := storage.Get(ctx, "https://forocoches.com/a")
	require.NoError(t, err)
	b, err := storage.Get(ctx, "https://forocoches.com/b")
	require.NoError(t, err)

	assert.Equal(t, "100", a)
	assert.Equal(t, "200", b)
}

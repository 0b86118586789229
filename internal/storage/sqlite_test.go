package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winedash/internal/dataset"
	"winedash/internal/engine"
)

func TestSeedAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wines.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, Seed(ctx, db, dataset.GermanRieslings()))
	// Seeding twice replaces rather than appends.
	require.NoError(t, Seed(ctx, db, dataset.GermanRieslings()))
	require.NoError(t, db.Close())

	store, err := engine.LoadColumnar(ctx, SQLiteSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, dataset.GermanRieslings(), store.Wines())
}

func TestLoadEmptyDatabase(t *testing.T) {
	wines, err := SQLiteSource{Path: filepath.Join(t.TempDir(), "empty.db")}.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, wines)
}

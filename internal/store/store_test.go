package store

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaanHessen/kidsrd/internal/engine"
)

func TestToItems(t *testing.T) {
	rows := []CatalogItem{
		{ID: "1", Kind: "story", Title: "A", Likes: 9},
		{ID: "2", Kind: "story", Title: "B", Likes: 3},
	}
	items := toItems(rows)
	assert.Equal(t, []engine.ContentItem{{ID: "1", Title: "A", Likes: 9}, {ID: "2", Title: "B", Likes: 3}}, items)
	assert.Empty(t, toItems(nil))
}

func TestMissingDSN(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
	_, err = NewMigrator("")
	assert.Error(t, err)
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrations, "migrations")
	require.NoError(t, err)
	defer src.Close()

	v, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)

	up, _, err := src.ReadUp(v)
	require.NoError(t, err)
	defer up.Close()
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	sql := string(body)
	assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS catalog_items"))

	// the migration seeds the same catalog as the builtin source
	for _, kind := range engine.AllKinds {
		for _, it := range engine.DefaultSeed().Items(kind) {
			title := strings.ReplaceAll(it.Title, "'", "''")
			assert.Contains(t, sql, "'"+title+"'", "%s %s", kind, it.Title)
		}
	}
}

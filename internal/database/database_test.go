package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"equiptrack/config"
	"equiptrack/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		DatabaseDriver: "sqlite",
		DatabaseDbPath: filepath.Join(t.TempDir(), "test.db"),
	}
}

func newTestDB(t *testing.T) DB {
	db, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_SQLite(t *testing.T) {
	cfg := testConfig(t)

	db, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.NotNil(t, db.SQL)
	assert.Equal(t, "sqlite", db.Driver())
	assert.FileExists(t, cfg.DatabaseDbPath)
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New(config.Config{DatabaseDriver: "sqlite", DatabaseDbPath: ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestNew_PostgresWithoutURL(t *testing.T) {
	_, err := New(config.Config{DatabaseDriver: "postgres", DatabaseURL: ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database url is empty")
}

func TestInitializeSQLiteDB_EmptyPath(t *testing.T) {
	db := &DB{log: logger.New("test")}

	err := db.initializeSQLiteDB(&gorm.Config{}, config.Config{DatabaseDbPath: ""})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestMigrate_SQLiteCreatesSequencesTable(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Migrate(""))

	assert.True(t, db.SQL.Migrator().HasTable("sequences"))
}

func TestNextSequence(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(""))
	require.NoError(t, db.EnsureSequence(ctx, "certificate_numbers", 10000))

	first, err := db.NextSequence(ctx, "certificate_numbers")
	require.NoError(t, err)
	assert.Equal(t, int64(10001), first)

	// Every read advances; values never repeat
	seen := map[int64]bool{first: true}
	previous := first
	for i := 0; i < 25; i++ {
		next, err := db.NextSequence(ctx, "certificate_numbers")
		require.NoError(t, err)
		assert.Greater(t, next, previous)
		assert.False(t, seen[next], "sequence value %d repeated", next)
		seen[next] = true
		previous = next
	}
}

func TestNextSequence_MissingCounter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(""))

	_, err := db.NextSequence(ctx, "nonexistent")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSequenceUnavailable))
}

func TestEnsureSequence_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(""))
	require.NoError(t, db.EnsureSequence(ctx, "certificate_numbers", 10000))
	require.NoError(t, db.EnsureSequence(ctx, "certificate_numbers", 10000))

	next, err := db.NextSequence(ctx, "certificate_numbers")
	require.NoError(t, err)
	assert.Equal(t, int64(10001), next, "re-ensuring must not reset the counter")
}

func TestCacheBuilder_NoClientIsNoop(t *testing.T) {
	builder := NewCacheBuilder(nil, "key")

	assert.NoError(t, builder.WithStruct(map[string]string{"a": "b"}).Set())

	var dest map[string]string
	found, err := NewCacheBuilder(nil, "key").Get(&dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, NewCacheBuilder(nil, "key").Delete())
}

package migrations

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trngaudit/internal/errors"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_Up(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	m := NewMigrator(db, nil)

	require.NoError(t, m.Up(ctx))
	// idempotent
	require.NoError(t, m.Up(ctx))

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, 2, count)

	_, err := db.Exec("SELECT id, fingerprint, overall, created_at FROM audits")
	assert.NoError(t, err)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, "001", status[0].Version)
	assert.Equal(t, "create_audits", status[0].Name)
	assert.True(t, status[1].Applied)
}

func TestMigrator_StatusBeforeUp(t *testing.T) {
	db := openTestDB(t)
	status, err := NewMigrator(db, nil).Status(context.Background())
	require.NoError(t, err)
	for _, s := range status {
		assert.False(t, s.Applied, s.Version)
	}
}

func TestMigrator_ChecksumMismatch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	m := NewMigrator(db, nil)
	m.source = fstest.MapFS{"001_t.sql": {Data: []byte("CREATE TABLE t (id INTEGER)")}}
	require.NoError(t, m.Up(ctx))

	m.source = fstest.MapFS{"001_t.sql": {Data: []byte("CREATE TABLE t (id TEXT)")}}
	err := m.Up(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDatabaseError))
}

func TestFindMigrationFiles_SkipsInvalid(t *testing.T) {
	m := &Migrator{source: fstest.MapFS{
		"002_b.sql":    {Data: []byte("SELECT 2")},
		"001_a.sql":    {Data: []byte("SELECT 1")},
		"README.md":    {Data: []byte("docs")},
		"noprefix.sql": {Data: []byte("SELECT 3")},
	}}
	files, err := m.findMigrationFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "001", files[0].Version)
	assert.Equal(t, calculateChecksum([]byte("SELECT 1")), files[0].Checksum)
}

func TestSplitStatements(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, splitStatements(" A;\n\nB;\n"))
	assert.Empty(t, splitStatements("  "))
}

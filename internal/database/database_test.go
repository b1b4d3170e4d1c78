package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"classics-study/internal/domain"
	"classics-study/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"file:/tmp/h.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		DSN("/tmp/h.db"))
	assert.Equal(t, "file::memory:", DSN("file::memory:"))
	assert.Equal(t, "h.db?mode=ro", DSN("h.db?mode=ro"))
}

func TestNewSQLXSQLiteDB_EmptyPath(t *testing.T) {
	_, err := NewSQLXSQLiteDB(context.Background(), "")
	assert.Error(t, err)
}

func TestMigrationsAndAttemptRepository(t *testing.T) {
	ctx := context.Background()
	db, err := NewSQLXSQLiteDB(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db.DB))
	// A second run is a no-op.
	require.NoError(t, RunMigrations(db.DB))

	repo := repository.NewSQLXAttemptRepository(db)
	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	attempts := []*domain.Attempt{
		{ID: "01HZZZ0000000000000000000A", SessionID: "s1", TextID: 1, Correct: 1, Total: 2, Percentage: 50, SubmittedAt: base},
		{ID: "01HZZZ0000000000000000000B", SessionID: "s2", TextID: 1, Correct: 2, Total: 2, Percentage: 100, SubmittedAt: base.Add(time.Minute)},
		{ID: "01HZZZ0000000000000000000C", SessionID: "s3", TextID: 0, Correct: 5, Total: 16, Percentage: 31, SubmittedAt: base.Add(2 * time.Minute)},
	}
	for _, a := range attempts {
		require.NoError(t, repo.Create(ctx, a))
	}

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "s3", recent[0].SessionID)
	assert.Equal(t, "s2", recent[1].SessionID)

	byText, err := repo.ListByText(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, byText, 2)
	assert.Equal(t, base.Add(time.Minute), byText[0].SubmittedAt)

	stats, err := repo.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Attempts)
	assert.Equal(t, 100, stats.BestPercentage)
	assert.InDelta(t, 75.0, stats.AveragePercentage, 0.001)
	require.NotNil(t, stats.LastSubmittedAt)
	assert.Equal(t, base.Add(time.Minute), *stats.LastSubmittedAt)

	all, err := repo.Stats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Attempts)

	empty, err := repo.Stats(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Attempts)
	assert.Nil(t, empty.LastSubmittedAt)

	// Duplicate ids are rejected by the primary key.
	assert.Error(t, repo.Create(ctx, attempts[0]))

	require.NoError(t, RollbackMigrations(db.DB))
	_, err = repo.ListRecent(ctx, 1)
	assert.Error(t, err)
}

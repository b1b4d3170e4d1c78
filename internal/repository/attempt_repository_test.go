package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"classics-study/internal/domain"
	"classics-study/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAttemptTestDB creates a sqlx.DB backed by sqlmock.
func setupAttemptTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(mockDB, "sqlite"), mock
}

var attemptRowColumns = []string{"id", "session_id", "text_id", "correct", "total", "percentage", "submitted_at"}

func TestAttemptConverters(t *testing.T) {
	when := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	a := &domain.Attempt{ID: "01J0", SessionID: "s", TextID: 3, Correct: 1, Total: 3, Percentage: 33, SubmittedAt: when}

	m := fromDomainAttempt(a)
	assert.Equal(t, when.UnixMilli(), m.SubmittedAt)
	assert.Equal(t, a, toDomainAttempt(m))

	assert.Nil(t, fromDomainAttempt(nil))
	assert.Nil(t, toDomainAttempt((*models.Attempt)(nil)))
}

func TestSQLXAttemptRepository_Create(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attempts`)).
			WithArgs("a1", "s1", 2, 3, 4, 75, when.UnixMilli()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, &domain.Attempt{ID: "a1", SessionID: "s1", TextID: 2, Correct: 3, Total: 4, Percentage: 75, SubmittedAt: when})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fills submitted_at", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attempts`)).
			WithArgs("a1", "s1", 0, 1, 1, 100, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		attempt := &domain.Attempt{ID: "a1", SessionID: "s1", Correct: 1, Total: 1, Percentage: 100}
		require.NoError(t, repo.Create(ctx, attempt))
		assert.False(t, attempt.SubmittedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id", func(t *testing.T) {
		db, _ := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)
		assert.Error(t, repo.Create(ctx, &domain.Attempt{}))
	})

	t.Run("exec failure", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		dbErr := errors.New("database is locked")
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO attempts`)).WillReturnError(dbErr)

		err := repo.Create(ctx, &domain.Attempt{ID: "a1", SubmittedAt: when})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestSQLXAttemptRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	db, mock := setupAttemptTestDB(t)
	defer db.Close()
	repo := NewSQLXAttemptRepository(db)

	newer := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	rows := sqlmock.NewRows(attemptRowColumns).
		AddRow("a2", "s2", 1, 2, 2, 100, newer.UnixMilli()).
		AddRow("a1", "s1", 0, 1, 3, 33, older.UnixMilli())
	mock.ExpectQuery(regexp.QuoteMeta(`FROM attempts ORDER BY submitted_at DESC, id DESC LIMIT ?`)).
		WithArgs(5).
		WillReturnRows(rows)

	attempts, err := repo.ListRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "a2", attempts[0].ID)
	assert.Equal(t, newer, attempts[0].SubmittedAt)
	assert.Equal(t, 0, attempts[1].TextID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXAttemptRepository_ListByText(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM attempts WHERE text_id = ?`)).
			WithArgs(7, 10).
			WillReturnRows(sqlmock.NewRows(attemptRowColumns).AddRow("a1", "s1", 7, 1, 2, 50, int64(0)))

		attempts, err := repo.ListByText(ctx, 7, 10)
		require.NoError(t, err)
		require.Len(t, attempts, 1)
		assert.Equal(t, 50, attempts[0].Percentage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM attempts WHERE text_id = ?`)).
			WithArgs(7, 10).
			WillReturnRows(sqlmock.NewRows(attemptRowColumns))

		attempts, err := repo.ListByText(ctx, 7, 10)
		require.NoError(t, err)
		assert.NotNil(t, attempts)
		assert.Empty(t, attempts)
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM attempts WHERE text_id = ?`)).
			WillReturnError(errors.New("no such table: attempts"))

		_, err := repo.ListByText(ctx, 7, 10)
		assert.ErrorContains(t, err, "no such table")
	})
}

func TestSQLXAttemptRepository_Stats(t *testing.T) {
	ctx := context.Background()
	statsColumns := []string{"attempts", "best_percentage", "average_percentage", "last_submitted_at"}
	last := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	t.Run("one text", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) AS attempts.*FROM attempts WHERE text_id = \?`).
			WithArgs(4).
			WillReturnRows(sqlmock.NewRows(statsColumns).AddRow(3, 100, 72.33, last.UnixMilli()))

		stats, err := repo.Stats(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, stats.TextID)
		assert.Equal(t, 3, stats.Attempts)
		assert.Equal(t, 100, stats.BestPercentage)
		assert.InDelta(t, 72.33, stats.AveragePercentage, 0.001)
		require.NotNil(t, stats.LastSubmittedAt)
		assert.Equal(t, last, *stats.LastSubmittedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no attempts yet", func(t *testing.T) {
		db, mock := setupAttemptTestDB(t)
		defer db.Close()
		repo := NewSQLXAttemptRepository(db)

		mock.ExpectQuery(`SELECT COUNT\(\*\) AS attempts.*FROM attempts$`).
			WillReturnRows(sqlmock.NewRows(statsColumns).AddRow(0, nil, nil, nil))

		stats, err := repo.Stats(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Attempts)
		assert.Equal(t, 0, stats.BestPercentage)
		assert.Nil(t, stats.LastSubmittedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package repository

import (
	"context"
	"fmt"
	"time"

	"classics-study/internal/domain"
	"classics-study/internal/repository/models"
)

const attemptColumns = "id, session_id, text_id, correct, total, percentage, submitted_at"

var attemptsTable = models.Attempt{}.TableName()

// sqlxAttemptRepository implements domain.AttemptRepository on SQLite.
type sqlxAttemptRepository struct {
	db DBTX
}

// NewSQLXAttemptRepository accepts a *sqlx.DB or *sqlx.Tx.
func NewSQLXAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	return &domain.Attempt{
		ID:          m.ID,
		SessionID:   m.SessionID,
		TextID:      m.TextID,
		Correct:     m.Correct,
		Total:       m.Total,
		Percentage:  m.Percentage,
		SubmittedAt: time.UnixMilli(m.SubmittedAt).UTC(),
	}
}

func fromDomainAttempt(a *domain.Attempt) *models.Attempt {
	if a == nil {
		return nil
	}
	return &models.Attempt{
		ID:          a.ID,
		SessionID:   a.SessionID,
		TextID:      a.TextID,
		Correct:     a.Correct,
		Total:       a.Total,
		Percentage:  a.Percentage,
		SubmittedAt: a.SubmittedAt.UnixMilli(),
	}
}

func (r *sqlxAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	if attempt == nil || attempt.ID == "" {
		return fmt.Errorf("attempt id is required")
	}
	if attempt.SubmittedAt.IsZero() {
		attempt.SubmittedAt = time.Now().UTC()
	}

	query := `INSERT INTO ` + attemptsTable + ` (` + attemptColumns + `)
	          VALUES (:id, :session_id, :text_id, :correct, :total, :percentage, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fromDomainAttempt(attempt)); err != nil {
		return fmt.Errorf("failed to create attempt: %w", err)
	}
	return nil
}

// ListRecent returns the newest attempts first.
func (r *sqlxAttemptRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Attempt, error) {
	query := `SELECT ` + attemptColumns + ` FROM ` + attemptsTable + ` ORDER BY submitted_at DESC, id DESC LIMIT ?`
	var rows []models.Attempt
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent attempts: %w", err)
	}
	return toDomainAttempts(rows), nil
}

func (r *sqlxAttemptRepository) ListByText(ctx context.Context, textID int, limit int) ([]*domain.Attempt, error) {
	query := `SELECT ` + attemptColumns + ` FROM ` + attemptsTable + ` WHERE text_id = ? ORDER BY submitted_at DESC, id DESC LIMIT ?`
	var rows []models.Attempt
	if err := r.db.SelectContext(ctx, &rows, query, textID, limit); err != nil {
		return nil, fmt.Errorf("failed to list attempts for text %d: %w", textID, err)
	}
	return toDomainAttempts(rows), nil
}

// Stats aggregates one text's attempts, or all attempts when textID is 0.
func (r *sqlxAttemptRepository) Stats(ctx context.Context, textID int) (*domain.AttemptStats, error) {
	query := `SELECT COUNT(*) AS attempts,
	                 MAX(percentage) AS best_percentage,
	                 AVG(percentage) AS average_percentage,
	                 MAX(submitted_at) AS last_submitted_at
	          FROM ` + attemptsTable
	args := []interface{}{}
	if textID != 0 {
		query += ` WHERE text_id = ?`
		args = append(args, textID)
	}

	var row models.AttemptStats
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate attempts: %w", err)
	}

	stats := &domain.AttemptStats{
		TextID:            textID,
		Attempts:          row.Attempts,
		BestPercentage:    int(row.BestPercentage.Int64),
		AveragePercentage: row.AveragePercentage.Float64,
	}
	if row.LastSubmittedAt.Valid {
		last := time.UnixMilli(row.LastSubmittedAt.Int64).UTC()
		stats.LastSubmittedAt = &last
	}
	return stats, nil
}

func toDomainAttempts(rows []models.Attempt) []*domain.Attempt {
	out := make([]*domain.Attempt, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainAttempt(&rows[i]))
	}
	return out
}

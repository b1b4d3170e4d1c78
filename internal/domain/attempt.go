package domain

import (
	"context"
	"time"
)

// Attempt is the recorded score of one submitted session.
type Attempt struct {
	ID          string
	SessionID   string
	TextID      int // 0 when the session covered the whole bank
	Correct     int
	Total       int
	Percentage  int
	SubmittedAt time.Time
}

// NewAttempt builds the history record for a graded session.
func NewAttempt(sessionID string, textID int, score Score) *Attempt {
	return &Attempt{
		SessionID:   sessionID,
		TextID:      textID,
		Correct:     score.Correct,
		Total:       score.Total,
		Percentage:  score.Percentage,
		SubmittedAt: time.Now().UTC(),
	}
}

// AttemptStats aggregates attempts for a text, or for everything when
// TextID is 0.
type AttemptStats struct {
	TextID            int
	Attempts          int
	BestPercentage    int
	AveragePercentage float64
	LastSubmittedAt   *time.Time
}

// AttemptRepository persists attempt history.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *Attempt) error
	ListRecent(ctx context.Context, limit int) ([]*Attempt, error)
	ListByText(ctx context.Context, textID int, limit int) ([]*Attempt, error)
	Stats(ctx context.Context, textID int) (*AttemptStats, error)
}

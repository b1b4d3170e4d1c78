package models

import "database/sql"

// Attempt is a row of the attempts table. Timestamps are unix milliseconds
// in UTC so they sort and aggregate as plain integers.
type Attempt struct {
	ID          string `db:"id"`           // ULID
	SessionID   string `db:"session_id"`   // Session that produced the score
	TextID      int    `db:"text_id"`      // 0 for whole-bank sessions
	Correct     int    `db:"correct"`      // Questions answered correctly
	Total       int    `db:"total"`        // Questions in the session
	Percentage  int    `db:"percentage"`   // Rounded score
	SubmittedAt int64  `db:"submitted_at"` // Unix milliseconds
}

// AttemptStats is the result row of the aggregate query.
type AttemptStats struct {
	Attempts          int             `db:"attempts"`
	BestPercentage    sql.NullInt64   `db:"best_percentage"`
	AveragePercentage sql.NullFloat64 `db:"average_percentage"`
	LastSubmittedAt   sql.NullInt64   `db:"last_submitted_at"`
}

func (Attempt) TableName() string {
	return "attempts"
}

package dto

import (
	"encoding/json"
	"time"
)

// TextSummaryResponse is a text as listed in the browser sidebar.
type TextSummaryResponse struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Period        string `json:"period"`
	Category      string `json:"category"`
	MainTheme     string `json:"main_theme"`
	QuestionCount int    `json:"question_count"`
}

// TextListResponse wraps the text list.
type TextListResponse struct {
	Texts []TextSummaryResponse `json:"texts"`
}

// TextDetailResponse carries everything the browser tabs display.
// @Description Text detail
type TextDetailResponse struct {
	TextSummaryResponse
	KeyPoints            json.RawMessage `json:"key_points,omitempty" swaggertype:"object"`
	RhetoricalDevices    []string        `json:"rhetorical_devices,omitempty"`
	ArgumentationMethods []string        `json:"argumentation_methods,omitempty"`
	ImportantPhrases     []string        `json:"important_phrases,omitempty"`
	ExaminationFocus     []string        `json:"examination_focus,omitempty"`
	FullText             string          `json:"full_text,omitempty"`
	Translation          string          `json:"translation,omitempty"`
	Analysis             string          `json:"analysis,omitempty"`
}

// QuestionListResponse lists questions without answers.
type QuestionListResponse struct {
	TextID    int            `json:"text_id"`
	Questions []QuestionView `json:"questions"`
}

// AttemptResponse is one recorded attempt.
type AttemptResponse struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	TextID      int       `json:"text_id"`
	Correct     int       `json:"correct"`
	Total       int       `json:"total"`
	Percentage  int       `json:"percentage"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// AttemptListResponse wraps an attempt list.
type AttemptListResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
}

// AttemptStatsResponse aggregates attempts.
// @Description Attempt statistics
type AttemptStatsResponse struct {
	TextID            int        `json:"text_id"`
	Attempts          int        `json:"attempts"`
	BestPercentage    int        `json:"best_percentage"`
	AveragePercentage float64    `json:"average_percentage"`
	LastSubmittedAt   *time.Time `json:"last_submitted_at,omitempty"`
}

// HealthResponse reports the state of each backing dependency.
// @Description Health status
type HealthResponse struct {
	Status    string            `json:"status"`
	Texts     int               `json:"texts"`
	Questions int               `json:"questions"`
	Checks    map[string]string `json:"checks"`
}

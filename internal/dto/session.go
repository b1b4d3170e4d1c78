package dto

import "classics-study/internal/domain"

// StartSessionRequest starts a quiz over one text, or over the whole bank
// when TextID is 0.
// @Description Request body for starting a quiz session
type StartSessionRequest struct {
	TextID int `json:"text_id"`
}

// SelectAnswerRequest carries an option index for multiple-choice questions
// or a string for short-answer and fill-blank questions.
// @Description Request body for selecting an answer
type SelectAnswerRequest struct {
	Answer domain.Answer `json:"answer" swaggertype:"string"`
}

// QuestionView is a question without its correct answer.
type QuestionView struct {
	ID      int      `json:"id"`
	TextID  int      `json:"text_id"`
	Type    string   `json:"type"`
	Prompt  string   `json:"question"`
	Options []string `json:"options,omitempty"`
}

// FeedbackResponse is shown once the current question is revealed.
type FeedbackResponse struct {
	Correct       bool          `json:"correct"`
	CorrectAnswer domain.Answer `json:"correct_answer" swaggertype:"string"`
	Explanation   string        `json:"explanation"`
}

// ActionsResponse tells the client which controls to enable.
type ActionsResponse struct {
	CanReveal  bool `json:"can_reveal"`
	CanAdvance bool `json:"can_advance"`
	CanRetreat bool `json:"can_retreat"`
	CanSubmit  bool `json:"can_submit"`
}

// SessionResponse is the client's view of a quiz session.
// @Description Quiz session state
type SessionResponse struct {
	ID            string            `json:"id"`
	TextID        int               `json:"text_id"`
	State         string            `json:"state"`
	CurrentIndex  int               `json:"current_index"`
	Total         int               `json:"total"`
	Progress      int               `json:"progress"`
	AnsweredCount int               `json:"answered_count"`
	Revealed      bool              `json:"revealed"`
	Submitted     bool              `json:"submitted"`
	Answers       []domain.Answer   `json:"answers" swaggertype:"array,string"`
	Question      *QuestionView     `json:"question,omitempty"`
	Feedback      *FeedbackResponse `json:"feedback,omitempty"`
	Actions       ActionsResponse   `json:"actions"`
}

// NavigationResponse reports whether advance or retreat moved the session.
type NavigationResponse struct {
	Moved   bool             `json:"moved"`
	Session *SessionResponse `json:"session"`
}

// ScoreResponse is the graded outcome of a submitted session.
// @Description Session score
type ScoreResponse struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// SubmitResponse is returned by a successful submit.
type SubmitResponse struct {
	Session *SessionResponse `json:"session"`
	Score   ScoreResponse    `json:"score"`
}

// ResultItem is one row of the answer review.
type ResultItem struct {
	Position      int           `json:"position"`
	Question      QuestionView  `json:"question"`
	Given         domain.Answer `json:"given" swaggertype:"string"`
	CorrectAnswer domain.Answer `json:"correct_answer" swaggertype:"string"`
	Correct       bool          `json:"correct"`
	Explanation   string        `json:"explanation"`
}

// ResultsResponse is the full review of a submitted session.
// @Description Session results
type ResultsResponse struct {
	SessionID string        `json:"session_id"`
	Score     ScoreResponse `json:"score"`
	Items     []ResultItem  `json:"items"`
}

func NewQuestionView(q domain.Question) QuestionView {
	return QuestionView{
		ID:      q.ID,
		TextID:  q.TextID,
		Type:    string(q.Kind),
		Prompt:  q.Prompt,
		Options: q.Options,
	}
}

func NewScoreResponse(s domain.Score) ScoreResponse {
	return ScoreResponse{
		Correct:    s.Correct,
		Incorrect:  s.Incorrect(),
		Total:      s.Total,
		Percentage: s.Percentage,
	}
}

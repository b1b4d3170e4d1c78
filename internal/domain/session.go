package domain

// SessionState is the externally visible phase of a quiz session.
type SessionState int

const (
	StateLoading SessionState = iota
	StateActive
	StateReviewing
	StateSubmitted
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateReviewing:
		return "reviewing"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Score is the graded outcome of a submitted session.
type Score struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Incorrect is the number of questions not answered correctly.
func (s Score) Incorrect() int { return s.Total - s.Correct }

// Percentage rounds 100*correct/total half-up using integer arithmetic,
// so 1/8 is 13 and 1/3 is 33. total must be positive.
func Percentage(correct, total int) int {
	return (200*correct + total) / (2 * total)
}

// QuestionResult is one row of the post-submission review.
type QuestionResult struct {
	Position      int      `json:"position"`
	Question      Question `json:"question"`
	Given         Answer   `json:"given"`
	CorrectAnswer Answer   `json:"correctAnswer"`
	Correct       bool     `json:"correct"`
	Explanation   string   `json:"explanation"`
}

// Session is the quiz state machine for a single attempt over a question
// bank. It is not safe for concurrent use; owners serialize access.
//
// The zero value is not usable; create sessions with NewSession.
type Session struct {
	questions []Question
	current   int
	answers   []Answer
	revealed  bool
	submitted bool
}

// NewSession returns an empty session in the Loading state.
func NewSession() *Session {
	return &Session{}
}

// NewLoadedSession is NewSession followed by Load.
func NewLoadedSession(questions []Question) (*Session, error) {
	s := NewSession()
	if err := s.Load(questions); err != nil {
		return nil, err
	}
	return s, nil
}

// State derives the phase from the session's flags.
func (s *Session) State() SessionState {
	switch {
	case s.questions == nil:
		return StateLoading
	case s.submitted:
		return StateSubmitted
	case s.revealed:
		return StateReviewing
	default:
		return StateActive
	}
}

// Load populates the session atomically. Only valid while Loading.
func (s *Session) Load(questions []Question) error {
	if st := s.State(); st != StateLoading {
		return NewInvalidTransitionError("load", st, "session already loaded")
	}
	if len(questions) == 0 {
		return NewEmptyBankError()
	}
	qs := make([]Question, len(questions))
	copy(qs, questions)

	s.questions = qs
	s.answers = make([]Answer, len(qs))
	s.current = 0
	s.revealed = false
	s.submitted = false
	return nil
}

// SelectAnswer records a for the current question, replacing any earlier
// selection. The position and reveal flag are left untouched.
func (s *Session) SelectAnswer(a Answer) error {
	if err := s.requireOpen("select an answer"); err != nil {
		return err
	}
	q := &s.questions[s.current]
	if err := q.Accepts(a); err != nil {
		return err
	}
	s.answers[s.current] = a
	return nil
}

// Reveal discloses whether the current selection is correct. Idempotent.
func (s *Session) Reveal() error {
	if err := s.requireOpen("reveal"); err != nil {
		return err
	}
	if !s.answers[s.current].IsAnswered() {
		return NewNoAnswerSelectedError(s.current)
	}
	s.revealed = true
	return nil
}

// Advance moves to the next question once the current one is revealed.
// It reports false without error at the last question.
func (s *Session) Advance() (bool, error) {
	if err := s.requireOpen("advance"); err != nil {
		return false, err
	}
	if !s.revealed {
		return false, NewInvalidTransitionError("advance", s.State(), "current question has not been revealed")
	}
	if s.current >= len(s.questions)-1 {
		return false, nil
	}
	s.current++
	s.revealed = false
	return true, nil
}

// Retreat moves to the previous question. It reports false without error
// at the first question.
func (s *Session) Retreat() (bool, error) {
	if err := s.requireOpen("retreat"); err != nil {
		return false, err
	}
	if s.current == 0 {
		return false, nil
	}
	s.current--
	s.revealed = false
	return true, nil
}

// Submit finalizes the session. Requires the last question to be revealed.
func (s *Session) Submit() error {
	if err := s.requireOpen("submit"); err != nil {
		return err
	}
	if s.current != len(s.questions)-1 {
		return NewInvalidTransitionError("submit", s.State(), "not at the last question")
	}
	if !s.revealed {
		return NewInvalidTransitionError("submit", s.State(), "last question has not been revealed")
	}
	s.submitted = true
	return nil
}

// Reset starts a retake over the same questions.
func (s *Session) Reset() error {
	if st := s.State(); st == StateLoading {
		return NewInvalidTransitionError("reset", st, "session not loaded")
	}
	for i := range s.answers {
		s.answers[i] = Unanswered()
	}
	s.current = 0
	s.revealed = false
	s.submitted = false
	return nil
}

// Score grades a submitted session.
func (s *Session) Score() (Score, error) {
	if st := s.State(); st != StateSubmitted {
		return Score{}, NewInvalidTransitionError("score", st, "session not submitted")
	}
	correct := 0
	for i := range s.questions {
		if s.questions[i].IsCorrect(s.answers[i]) {
			correct++
		}
	}
	total := len(s.questions)
	return Score{Correct: correct, Total: total, Percentage: Percentage(correct, total)}, nil
}

// Results lists every question with the given and correct answers.
func (s *Session) Results() ([]QuestionResult, error) {
	if st := s.State(); st != StateSubmitted {
		return nil, NewInvalidTransitionError("list results", st, "session not submitted")
	}
	out := make([]QuestionResult, len(s.questions))
	for i, q := range s.questions {
		out[i] = QuestionResult{
			Position:      i,
			Question:      q,
			Given:         s.answers[i],
			CorrectAnswer: q.CorrectAnswer,
			Correct:       q.IsCorrect(s.answers[i]),
			Explanation:   q.Explanation,
		}
	}
	return out, nil
}

// CurrentIsCorrect reports the correctness of the current selection. It is
// only available while the current question is revealed.
func (s *Session) CurrentIsCorrect() (bool, error) {
	if !s.revealed || s.State() == StateLoading {
		return false, NewInvalidTransitionError("check answer", s.State(), "current question has not been revealed")
	}
	return s.questions[s.current].IsCorrect(s.answers[s.current]), nil
}

// CurrentQuestion returns the question at the current position.
func (s *Session) CurrentQuestion() (Question, bool) {
	if s.State() == StateLoading {
		return Question{}, false
	}
	return s.questions[s.current], true
}

func (s *Session) CurrentIndex() int { return s.current }
func (s *Session) Len() int          { return len(s.questions) }
func (s *Session) Revealed() bool    { return s.revealed }
func (s *Session) Submitted() bool   { return s.submitted }
func (s *Session) IsLast() bool      { return len(s.questions) > 0 && s.current == len(s.questions)-1 }

// Answers returns a copy of the recorded answers, one per question.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Questions returns a copy of the loaded questions.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// AnsweredCount is the number of positions holding an answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, a := range s.answers {
		if a.IsAnswered() {
			n++
		}
	}
	return n
}

func (s *Session) requireOpen(op string) error {
	switch st := s.State(); st {
	case StateLoading:
		return NewInvalidTransitionError(op, st, "session not loaded")
	case StateSubmitted:
		return NewInvalidTransitionError(op, st, "session already submitted")
	}
	return nil
}

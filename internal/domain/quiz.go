package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// QuestionKind is the answer format a question expects.
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple-choice"
	KindShortAnswer    QuestionKind = "short-answer"
	KindFillBlank      QuestionKind = "fill-blank"
)

// Valid reports whether k is one of the known kinds.
func (k QuestionKind) Valid() bool {
	switch k {
	case KindMultipleChoice, KindShortAnswer, KindFillBlank:
		return true
	default:
		return false
	}
}

// TakesChoice reports whether answers to this kind are option indexes.
func (k QuestionKind) TakesChoice() bool {
	return k == KindMultipleChoice
}

type answerTag uint8

const (
	tagUnanswered answerTag = iota
	tagChoice
	tagText
)

// Answer is either unanswered, an index into a question's options, or a
// literal string. The zero value is unanswered.
type Answer struct {
	tag    answerTag
	choice int
	text   string
}

// Unanswered returns the empty answer.
func Unanswered() Answer { return Answer{} }

// ChoiceAnswer selects option i of a multiple-choice question.
func ChoiceAnswer(i int) Answer { return Answer{tag: tagChoice, choice: i} }

// TextAnswer is a literal answer for short-answer and fill-blank questions.
func TextAnswer(s string) Answer { return Answer{tag: tagText, text: s} }

func (a Answer) IsAnswered() bool { return a.tag != tagUnanswered }
func (a Answer) IsChoice() bool   { return a.tag == tagChoice }
func (a Answer) IsText() bool     { return a.tag == tagText }

// Choice returns the option index and whether a is a choice.
func (a Answer) Choice() (int, bool) { return a.choice, a.tag == tagChoice }

// Text returns the literal and whether a is a text answer.
func (a Answer) Text() (string, bool) { return a.text, a.tag == tagText }

// Equal compares variant and payload. Two unanswered values are equal.
func (a Answer) Equal(b Answer) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case tagChoice:
		return a.choice == b.choice
	case tagText:
		return a.text == b.text
	default:
		return true
	}
}

func (a Answer) String() string {
	switch a.tag {
	case tagChoice:
		return "choice(" + strconv.Itoa(a.choice) + ")"
	case tagText:
		return strconv.Quote(a.text)
	default:
		return "unanswered"
	}
}

// MarshalJSON encodes choices as numbers, text as strings and unanswered as null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.tag {
	case tagChoice:
		return json.Marshal(a.choice)
	case tagText:
		return json.Marshal(a.text)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Unanswered()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAnswer(s)
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("answer must be an integer index, a string or null: %w", err)
	}
	*a = ChoiceAnswer(i)
	return nil
}

// Question is one quiz item. Questions are immutable once loaded.
type Question struct {
	ID            int          `json:"id"`
	TextID        int          `json:"textId"`
	Kind          QuestionKind `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer Answer       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
}

// Accepts checks that a fits this question's kind: an in-range option index
// for multiple-choice, a text answer otherwise.
func (q *Question) Accepts(a Answer) error {
	if q.Kind.TakesChoice() {
		if !a.IsChoice() {
			return NewInvalidAnswerError(fmt.Sprintf("question %d expects an option index", q.ID))
		}
		i, _ := a.Choice()
		if i < 0 || i >= len(q.Options) {
			return NewInvalidAnswerError(fmt.Sprintf("option %d out of range for question %d", i, q.ID)).
				WithContext("options", len(q.Options))
		}
		return nil
	}
	if !a.IsText() {
		return NewInvalidAnswerError(fmt.Sprintf("question %d expects a text answer", q.ID))
	}
	return nil
}

// IsCorrect reports whether a matches the correct answer exactly.
func (q *Question) IsCorrect(a Answer) bool {
	return a.IsAnswered() && a.Equal(q.CorrectAnswer)
}

// Validate checks the record is internally consistent.
func (q *Question) Validate() error {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("questions[id=%d].%s", q.ID, name) }

	if q.ID <= 0 {
		errs = append(errs, NewInvalidFormatError(field("id"), q.ID))
	}
	if q.TextID <= 0 {
		errs = append(errs, NewInvalidFormatError(field("textId"), q.TextID))
	}
	if !q.Kind.Valid() {
		errs = append(errs, NewInvalidFormatError(field("type"), string(q.Kind)))
	}
	if q.Prompt == "" {
		errs = append(errs, NewMissingFieldError(field("question")))
	}
	switch {
	case !q.CorrectAnswer.IsAnswered():
		errs = append(errs, NewMissingFieldError(field("correctAnswer")))
	case q.Kind.TakesChoice():
		if len(q.Options) < 2 {
			errs = append(errs, ValidationError{Field: field("options"), Message: "multiple-choice needs at least two options"})
		}
		if i, ok := q.CorrectAnswer.Choice(); !ok {
			errs = append(errs, ValidationError{Field: field("correctAnswer"), Message: "must be an option index"})
		} else if i < 0 || i >= len(q.Options) {
			errs = append(errs, NewOutOfRangeError(field("correctAnswer"), i, 0, len(q.Options)-1))
		}
	case q.Kind.Valid():
		if !q.CorrectAnswer.IsText() {
			errs = append(errs, ValidationError{Field: field("correctAnswer"), Message: "must be a string"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Text is one of the studied literary works.
type Text struct {
	ID                   int             `json:"id"`
	Title                string          `json:"title"`
	Author               string          `json:"author"`
	Period               string          `json:"period"`
	Category             string          `json:"category"`
	MainTheme            string          `json:"mainTheme"`
	KeyPoints            json.RawMessage `json:"keyPoints,omitempty"`
	RhetoricalDevices    []string        `json:"rhetoricalDevices,omitempty"`
	ArgumentationMethods []string        `json:"argumentationMethods,omitempty"`
	ImportantPhrases     []string        `json:"importantPhrases,omitempty"`
	ExaminationFocus     []string        `json:"examinationFocus,omitempty"`
	FullText             string          `json:"fullText,omitempty"`
	Translation          string          `json:"translation,omitempty"`
	Analysis             string          `json:"analysis,omitempty"`
}

// Validate checks the fields the browser relies on.
func (t *Text) Validate() error {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("texts[id=%d].%s", t.ID, name) }

	if t.ID <= 0 {
		errs = append(errs, NewInvalidFormatError(field("id"), t.ID))
	}
	if t.Title == "" {
		errs = append(errs, NewMissingFieldError(field("title")))
	}
	if t.Author == "" {
		errs = append(errs, NewMissingFieldError(field("author")))
	}
	if len(t.KeyPoints) > 0 && !json.Valid(t.KeyPoints) {
		errs = append(errs, NewInvalidFormatError(field("keyPoints"), string(t.KeyPoints)))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

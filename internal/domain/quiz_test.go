package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Answer
		wantErr bool
	}{
		{"index", `2`, ChoiceAnswer(2), false},
		{"string", `"仁者愛人"`, TextAnswer("仁者愛人"), false},
		{"empty string is still text", `""`, TextAnswer(""), false},
		{"null", `null`, Unanswered(), false},
		{"float index", `1.5`, Answer{}, true},
		{"object", `{"a":1}`, Answer{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Answer
			err := json.Unmarshal([]byte(tt.input), &a)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestQuestion_DecodeSourceRecord(t *testing.T) {
	raw := `{
		"id": 7,
		"textId": 3,
		"type": "multiple-choice",
		"question": "《勸學》的中心論點是？",
		"options": ["學不可以已", "青出於藍", "鍥而不舍", "積土成山"],
		"correctAnswer": 0,
		"explanation": "首句即點明論點。"
	}`
	var q Question
	require.NoError(t, json.Unmarshal([]byte(raw), &q))
	assert.Equal(t, KindMultipleChoice, q.Kind)
	assert.Equal(t, ChoiceAnswer(0), q.CorrectAnswer)
	assert.NoError(t, q.Validate())

	out, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"correctAnswer":0`)
}

func TestAnswer_Equal(t *testing.T) {
	assert.True(t, ChoiceAnswer(1).Equal(ChoiceAnswer(1)))
	assert.False(t, ChoiceAnswer(1).Equal(ChoiceAnswer(2)))
	assert.False(t, ChoiceAnswer(1).Equal(TextAnswer("1")))
	assert.True(t, TextAnswer("a").Equal(TextAnswer("a")))
	assert.True(t, Unanswered().Equal(Answer{}))

	q := Question{Kind: KindShortAnswer, CorrectAnswer: TextAnswer("")}
	assert.False(t, q.IsCorrect(Unanswered()))
}

func TestQuestion_Validate(t *testing.T) {
	valid := func() Question { return mcQuestion(1, 1) }

	tests := []struct {
		name   string
		mutate func(*Question)
		fields []string
	}{
		{"valid", func(*Question) {}, nil},
		{"bad id", func(q *Question) { q.ID = 0 }, []string{"questions[id=0].id"}},
		{"bad text id", func(q *Question) { q.TextID = 0 }, []string{"questions[id=1].textId"}},
		{"unknown kind", func(q *Question) { q.Kind = "essay" }, []string{"questions[id=1].type"}},
		{"missing prompt", func(q *Question) { q.Prompt = "" }, []string{"questions[id=1].question"}},
		{"missing answer", func(q *Question) { q.CorrectAnswer = Unanswered() }, []string{"questions[id=1].correctAnswer"}},
		{"answer out of range", func(q *Question) { q.CorrectAnswer = ChoiceAnswer(9) }, []string{"questions[id=1].correctAnswer"}},
		{"text answer for choice", func(q *Question) { q.CorrectAnswer = TextAnswer("a") }, []string{"questions[id=1].correctAnswer"}},
		{"too few options", func(q *Question) { q.Options = q.Options[:1]; q.CorrectAnswer = ChoiceAnswer(0) }, []string{"questions[id=1].options"}},
		{"choice for fill blank", func(q *Question) { q.Kind = KindFillBlank }, []string{"questions[id=1].correctAnswer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(&q)
			err := q.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verrs ValidationErrors
			require.True(t, errors.As(err, &verrs))
			var got []string
			for _, e := range verrs {
				got = append(got, e.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestText_Validate(t *testing.T) {
	txt := Text{ID: 1, Title: "師說", Author: "韓愈", KeyPoints: json.RawMessage(`{"thesis":"古之學者必有師"}`)}
	assert.NoError(t, txt.Validate())

	txt.Author = ""
	txt.KeyPoints = json.RawMessage(`{`)
	err := txt.Validate()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestDomainError_Is(t *testing.T) {
	err := NewInvalidTransitionError("submit", StateActive, "not at the last question")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NotErrorIs(t, err, ErrEmptyBank)
	assert.Equal(t, "submit", err.Context["operation"])
	assert.Equal(t, "active", err.Context["state"])

	wrapped := NewInternalError("store failed", errors.New("boom"))
	assert.Equal(t, "store failed: boom", wrapped.Error())
}

package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"classics-study/internal/domain"
	"classics-study/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxDocumentSize bounds how much of a document is read.
const maxDocumentSize = 16 << 20

type questionsDocument struct {
	Questions []domain.Question `json:"questions"`
}

type textsDocument struct {
	Texts []domain.Text `json:"texts"`
}

// Bank is the loaded, validated content. It is read-only after Load.
type Bank struct {
	questions  []domain.Question
	texts      []domain.Text
	textIndex  map[int]int
	byText     map[int][]domain.Question
	questionIx map[int]int
}

// Loader reads and validates both documents from a Source.
type Loader struct {
	source Source
}

func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load fetches both documents concurrently. Any fetch, decode or validation
// failure fails the whole load; no partial bank is returned.
func (l *Loader) Load(ctx context.Context) (*Bank, error) {
	var (
		qdoc questionsDocument
		tdoc textsDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.decode(gctx, QuestionsDocument, &qdoc) })
	g.Go(func() error { return l.decode(gctx, TextsDocument, &tdoc) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b, err := New(tdoc.Texts, qdoc.Questions)
	if err != nil {
		logger.Get().Error("Content validation failed",
			zap.String("source", l.source.Describe()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Info("Content loaded",
		zap.String("source", l.source.Describe()),
		zap.Int("texts", len(b.texts)),
		zap.Int("questions", len(b.questions)),
	)
	return b, nil
}

func (l *Loader) decode(ctx context.Context, name string, dst interface{}) error {
	rc, err := l.source.Open(ctx, name)
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to open %s from %s", name, l.source.Describe()), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDocumentSize+1))
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to read %s", name), err)
	}
	if len(data) > maxDocumentSize {
		return domain.NewInternalError(fmt.Sprintf("%s exceeds %d bytes", name, maxDocumentSize), nil)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.ValidationErrors{domain.ValidationError{Field: name, Message: "malformed JSON: " + err.Error()}}
	}
	return nil
}

// New validates texts and questions and builds a Bank. Questions keep the
// document order; ids must be unique and every question must belong to a
// known text.
func New(texts []domain.Text, questions []domain.Question) (*Bank, error) {
	var errs domain.ValidationErrors
	collect := func(err error) {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			errs = append(errs, verrs...)
		} else if err != nil {
			errs = append(errs, domain.NewValidationError(err.Error()))
		}
	}

	b := &Bank{
		texts:      make([]domain.Text, len(texts)),
		questions:  make([]domain.Question, len(questions)),
		textIndex:  make(map[int]int, len(texts)),
		byText:     make(map[int][]domain.Question),
		questionIx: make(map[int]int, len(questions)),
	}
	copy(b.texts, texts)
	copy(b.questions, questions)

	for i := range b.texts {
		t := &b.texts[i]
		collect(t.Validate())
		if _, dup := b.textIndex[t.ID]; dup {
			errs = append(errs, domain.ValidationError{Field: fmt.Sprintf("texts[id=%d].id", t.ID), Message: "duplicate id"})
			continue
		}
		b.textIndex[t.ID] = i
	}
	sort.SliceStable(b.texts, func(i, j int) bool { return b.texts[i].ID < b.texts[j].ID })
	for i := range b.texts {
		b.textIndex[b.texts[i].ID] = i
	}

	for i := range b.questions {
		q := &b.questions[i]
		collect(q.Validate())
		if _, dup := b.questionIx[q.ID]; dup {
			errs = append(errs, domain.ValidationError{Field: fmt.Sprintf("questions[id=%d].id", q.ID), Message: "duplicate id"})
			continue
		}
		b.questionIx[q.ID] = i
		if _, ok := b.textIndex[q.TextID]; !ok {
			errs = append(errs, domain.ValidationError{
				Field:   fmt.Sprintf("questions[id=%d].textId", q.ID),
				Message: "references unknown text",
				Value:   q.TextID,
			})
		}
		b.byText[q.TextID] = append(b.byText[q.TextID], *q)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return b, nil
}

// Questions returns every question in document order.
func (b *Bank) Questions() []domain.Question {
	out := make([]domain.Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// QuestionsForText returns the questions of one text, or the whole bank
// when textID is 0.
func (b *Bank) QuestionsForText(textID int) []domain.Question {
	if textID == 0 {
		return b.Questions()
	}
	qs := b.byText[textID]
	out := make([]domain.Question, len(qs))
	copy(out, qs)
	return out
}

// Texts returns every text ordered by id.
func (b *Bank) Texts() []domain.Text {
	out := make([]domain.Text, len(b.texts))
	copy(out, b.texts)
	return out
}

// Text looks a text up by id.
func (b *Bank) Text(id int) (domain.Text, bool) {
	i, ok := b.textIndex[id]
	if !ok {
		return domain.Text{}, false
	}
	return b.texts[i], true
}

// QuestionCount is the number of questions attached to a text.
func (b *Bank) QuestionCount(textID int) int {
	return len(b.byText[textID])
}

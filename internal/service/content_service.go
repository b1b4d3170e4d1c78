package service

import (
	"context"

	"classics-study/internal/domain"
	"classics-study/internal/dto"
)

// ContentProvider is the read side of the loaded bank.
type ContentProvider interface {
	Texts() []domain.Text
	Text(id int) (domain.Text, bool)
	QuestionsForText(textID int) []domain.Question
	QuestionCount(textID int) int
}

// ContentService defines the text browser operations
type ContentService interface {
	ListTexts(ctx context.Context) (*dto.TextListResponse, error)
	GetText(ctx context.Context, id int) (*dto.TextDetailResponse, error)
	ListQuestions(ctx context.Context, textID int) (*dto.QuestionListResponse, error)
}

type contentService struct {
	content ContentProvider
}

func NewContentService(content ContentProvider) ContentService {
	return &contentService{content: content}
}

func (s *contentService) ListTexts(ctx context.Context) (*dto.TextListResponse, error) {
	texts := s.content.Texts()
	resp := &dto.TextListResponse{Texts: make([]dto.TextSummaryResponse, 0, len(texts))}
	for _, t := range texts {
		resp.Texts = append(resp.Texts, s.summary(t))
	}
	return resp, nil
}

func (s *contentService) GetText(ctx context.Context, id int) (*dto.TextDetailResponse, error) {
	t, ok := s.content.Text(id)
	if !ok {
		return nil, domain.NewTextNotFoundError(id)
	}
	return &dto.TextDetailResponse{
		TextSummaryResponse:  s.summary(t),
		KeyPoints:            t.KeyPoints,
		RhetoricalDevices:    t.RhetoricalDevices,
		ArgumentationMethods: t.ArgumentationMethods,
		ImportantPhrases:     t.ImportantPhrases,
		ExaminationFocus:     t.ExaminationFocus,
		FullText:             t.FullText,
		Translation:          t.Translation,
		Analysis:             t.Analysis,
	}, nil
}

// ListQuestions returns the questions of a text without their answers.
// textID 0 lists the whole bank.
func (s *contentService) ListQuestions(ctx context.Context, textID int) (*dto.QuestionListResponse, error) {
	if textID != 0 {
		if _, ok := s.content.Text(textID); !ok {
			return nil, domain.NewTextNotFoundError(textID)
		}
	}
	qs := s.content.QuestionsForText(textID)
	resp := &dto.QuestionListResponse{TextID: textID, Questions: make([]dto.QuestionView, 0, len(qs))}
	for _, q := range qs {
		resp.Questions = append(resp.Questions, dto.NewQuestionView(q))
	}
	return resp, nil
}

func (s *contentService) summary(t domain.Text) dto.TextSummaryResponse {
	return dto.TextSummaryResponse{
		ID:            t.ID,
		Title:         t.Title,
		Author:        t.Author,
		Period:        t.Period,
		Category:      t.Category,
		MainTheme:     t.MainTheme,
		QuestionCount: s.content.QuestionCount(t.ID),
	}
}

package handler_test

import (
	"context"

	"classics-study/internal/domain"
	"classics-study/internal/dto"
	"classics-study/internal/handler"
	"classics-study/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// --- Manual Mocks ---

// MockSessionService
type MockSessionService struct {
	StartFunc        func(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	GetFunc          func(ctx context.Context, id string) (*dto.SessionResponse, error)
	SelectAnswerFunc func(ctx context.Context, id string, answer domain.Answer) (*dto.SessionResponse, error)
	RevealFunc       func(ctx context.Context, id string) (*dto.SessionResponse, error)
	AdvanceFunc      func(ctx context.Context, id string) (*dto.NavigationResponse, error)
	RetreatFunc      func(ctx context.Context, id string) (*dto.NavigationResponse, error)
	SubmitFunc       func(ctx context.Context, id string) (*dto.SubmitResponse, error)
	ResetFunc        func(ctx context.Context, id string) (*dto.SessionResponse, error)
	ScoreFunc        func(ctx context.Context, id string) (*dto.ScoreResponse, error)
	ResultsFunc      func(ctx context.Context, id string) (*dto.ResultsResponse, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *MockSessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, req)
	}
	panic("MockSessionService.StartFunc not implemented")
}
func (m *MockSessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	panic("MockSessionService.GetFunc not implemented")
}
func (m *MockSessionService) SelectAnswer(ctx context.Context, id string, answer domain.Answer) (*dto.SessionResponse, error) {
	if m.SelectAnswerFunc != nil {
		return m.SelectAnswerFunc(ctx, id, answer)
	}
	panic("MockSessionService.SelectAnswerFunc not implemented")
}
func (m *MockSessionService) Reveal(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.RevealFunc != nil {
		return m.RevealFunc(ctx, id)
	}
	panic("MockSessionService.RevealFunc not implemented")
}
func (m *MockSessionService) Advance(ctx context.Context, id string) (*dto.NavigationResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, id)
	}
	panic("MockSessionService.AdvanceFunc not implemented")
}
func (m *MockSessionService) Retreat(ctx context.Context, id string) (*dto.NavigationResponse, error) {
	if m.RetreatFunc != nil {
		return m.RetreatFunc(ctx, id)
	}
	panic("MockSessionService.RetreatFunc not implemented")
}
func (m *MockSessionService) Submit(ctx context.Context, id string) (*dto.SubmitResponse, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, id)
	}
	panic("MockSessionService.SubmitFunc not implemented")
}
func (m *MockSessionService) Reset(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, id)
	}
	panic("MockSessionService.ResetFunc not implemented")
}
func (m *MockSessionService) Score(ctx context.Context, id string) (*dto.ScoreResponse, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, id)
	}
	panic("MockSessionService.ScoreFunc not implemented")
}
func (m *MockSessionService) Results(ctx context.Context, id string) (*dto.ResultsResponse, error) {
	if m.ResultsFunc != nil {
		return m.ResultsFunc(ctx, id)
	}
	panic("MockSessionService.ResultsFunc not implemented")
}
func (m *MockSessionService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	panic("MockSessionService.DeleteFunc not implemented")
}

// MockContentService
type MockContentService struct {
	ListTextsFunc     func(ctx context.Context) (*dto.TextListResponse, error)
	GetTextFunc       func(ctx context.Context, id int) (*dto.TextDetailResponse, error)
	ListQuestionsFunc func(ctx context.Context, textID int) (*dto.QuestionListResponse, error)
}

func (m *MockContentService) ListTexts(ctx context.Context) (*dto.TextListResponse, error) {
	if m.ListTextsFunc != nil {
		return m.ListTextsFunc(ctx)
	}
	panic("MockContentService.ListTextsFunc not implemented")
}
func (m *MockContentService) GetText(ctx context.Context, id int) (*dto.TextDetailResponse, error) {
	if m.GetTextFunc != nil {
		return m.GetTextFunc(ctx, id)
	}
	panic("MockContentService.GetTextFunc not implemented")
}
func (m *MockContentService) ListQuestions(ctx context.Context, textID int) (*dto.QuestionListResponse, error) {
	if m.ListQuestionsFunc != nil {
		return m.ListQuestionsFunc(ctx, textID)
	}
	panic("MockContentService.ListQuestionsFunc not implemented")
}

// MockHistoryService
type MockHistoryService struct {
	RecordFunc  func(ctx context.Context, sessionID string, textID int, score domain.Score) error
	RecentFunc  func(ctx context.Context, limit int) (*dto.AttemptListResponse, error)
	ForTextFunc func(ctx context.Context, textID int, limit int) (*dto.AttemptListResponse, error)
	StatsFunc   func(ctx context.Context, textID int) (*dto.AttemptStatsResponse, error)
}

func (m *MockHistoryService) Record(ctx context.Context, sessionID string, textID int, score domain.Score) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, sessionID, textID, score)
	}
	panic("MockHistoryService.RecordFunc not implemented")
}
func (m *MockHistoryService) Recent(ctx context.Context, limit int) (*dto.AttemptListResponse, error) {
	if m.RecentFunc != nil {
		return m.RecentFunc(ctx, limit)
	}
	panic("MockHistoryService.RecentFunc not implemented")
}
func (m *MockHistoryService) ForText(ctx context.Context, textID int, limit int) (*dto.AttemptListResponse, error) {
	if m.ForTextFunc != nil {
		return m.ForTextFunc(ctx, textID, limit)
	}
	panic("MockHistoryService.ForTextFunc not implemented")
}
func (m *MockHistoryService) Stats(ctx context.Context, textID int) (*dto.AttemptStatsResponse, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, textID)
	}
	panic("MockHistoryService.StatsFunc not implemented")
}

// setupApp wires the handlers the way cmd/api does. history may be nil.
func setupApp(sessions *MockSessionService, content *MockContentService, history *MockHistoryService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	var attempts *handler.AttemptHandler
	if history != nil {
		attempts = handler.NewAttemptHandler(history)
	}
	handler.RegisterRoutes(app.Group("/api"),
		handler.NewSessionHandler(sessions),
		handler.NewContentHandler(content),
		attempts,
	)
	return app
}

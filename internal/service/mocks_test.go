package service

import (
	"context"
	"time"

	"classics-study/internal/bank"
	"classics-study/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ domain.Cache = (*MockCache)(nil)

// --- MockAttemptRepository ---
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *domain.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Attempt, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) ListByText(ctx context.Context, textID int, limit int) ([]*domain.Attempt, error) {
	args := m.Called(ctx, textID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) Stats(ctx context.Context, textID int) (*domain.AttemptStats, error) {
	args := m.Called(ctx, textID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AttemptStats), args.Error(1)
}

var _ domain.AttemptRepository = (*MockAttemptRepository)(nil)

// --- MockAttemptRecorder ---
type MockAttemptRecorder struct {
	mock.Mock
}

func (m *MockAttemptRecorder) Record(ctx context.Context, sessionID string, textID int, score domain.Score) error {
	args := m.Called(ctx, sessionID, textID, score)
	return args.Error(0)
}

var _ AttemptRecorder = (*MockAttemptRecorder)(nil)

// testBank has two texts; text 1 carries a multiple-choice and a fill-blank
// question, text 2 a short-answer question, text 3 nothing.
func testBank() *bank.Bank {
	texts := []domain.Text{
		{ID: 1, Title: "勸學", Author: "荀子", Period: "戰國", Category: "論說", MainTheme: "學不可以已"},
		{ID: 2, Title: "師說", Author: "韓愈", Period: "唐", Category: "論說", MainTheme: "從師"},
		{ID: 3, Title: "出師表", Author: "諸葛亮", Period: "三國", Category: "奏議", MainTheme: "忠"},
	}
	questions := []domain.Question{
		{ID: 1, TextID: 1, Kind: domain.KindMultipleChoice, Prompt: "論點？", Options: []string{"學不可以已", "青出於藍", "鍥而不舍"}, CorrectAnswer: domain.ChoiceAnswer(0), Explanation: "首句"},
		{ID: 2, TextID: 1, Kind: domain.KindFillBlank, Prompt: "鍥而不舍，＿＿＿＿", CorrectAnswer: domain.TextAnswer("金石可鏤"), Explanation: "比喻"},
		{ID: 3, TextID: 2, Kind: domain.KindShortAnswer, Prompt: "師者所以？", CorrectAnswer: domain.TextAnswer("傳道受業解惑"), Explanation: "首段"},
	}
	b, err := bank.New(texts, questions)
	if err != nil {
		panic(err)
	}
	return b
}

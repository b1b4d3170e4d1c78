package service

import (
	"context"

	"classics-study/internal/domain"
	"classics-study/internal/dto"
	"classics-study/internal/logger"
	"classics-study/internal/util"

	"go.uber.org/zap"
)

const (
	DefaultAttemptLimit = 20
	MaxAttemptLimit     = 100
)

// AttemptRecorder receives the score of every submitted session.
type AttemptRecorder interface {
	Record(ctx context.Context, sessionID string, textID int, score domain.Score) error
}

// HistoryService defines attempt history operations
type HistoryService interface {
	AttemptRecorder
	Recent(ctx context.Context, limit int) (*dto.AttemptListResponse, error)
	ForText(ctx context.Context, textID int, limit int) (*dto.AttemptListResponse, error)
	Stats(ctx context.Context, textID int) (*dto.AttemptStatsResponse, error)
}

type historyService struct {
	repo domain.AttemptRepository
}

func NewHistoryService(repo domain.AttemptRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Record(ctx context.Context, sessionID string, textID int, score domain.Score) error {
	attempt := domain.NewAttempt(sessionID, textID, score)
	attempt.ID = util.NewULID()
	if err := s.repo.Create(ctx, attempt); err != nil {
		return domain.NewInternalError("failed to record attempt", err)
	}
	logger.Get().Info("Attempt recorded",
		zap.String("attemptID", attempt.ID),
		zap.String("sessionID", sessionID),
		zap.Int("textID", textID),
		zap.Int("percentage", score.Percentage))
	return nil
}

func (s *historyService) Recent(ctx context.Context, limit int) (*dto.AttemptListResponse, error) {
	attempts, err := s.repo.ListRecent(ctx, clampLimit(limit))
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}
	return toAttemptList(attempts), nil
}

func (s *historyService) ForText(ctx context.Context, textID int, limit int) (*dto.AttemptListResponse, error) {
	attempts, err := s.repo.ListByText(ctx, textID, clampLimit(limit))
	if err != nil {
		return nil, domain.NewInternalError("failed to list attempts", err)
	}
	return toAttemptList(attempts), nil
}

func (s *historyService) Stats(ctx context.Context, textID int) (*dto.AttemptStatsResponse, error) {
	stats, err := s.repo.Stats(ctx, textID)
	if err != nil {
		return nil, domain.NewInternalError("failed to aggregate attempts", err)
	}
	return &dto.AttemptStatsResponse{
		TextID:            stats.TextID,
		Attempts:          stats.Attempts,
		BestPercentage:    stats.BestPercentage,
		AveragePercentage: stats.AveragePercentage,
		LastSubmittedAt:   stats.LastSubmittedAt,
	}, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultAttemptLimit
	case limit > MaxAttemptLimit:
		return MaxAttemptLimit
	}
	return limit
}

func toAttemptList(attempts []*domain.Attempt) *dto.AttemptListResponse {
	resp := &dto.AttemptListResponse{Attempts: make([]dto.AttemptResponse, 0, len(attempts))}
	for _, a := range attempts {
		resp.Attempts = append(resp.Attempts, dto.AttemptResponse{
			ID:          a.ID,
			SessionID:   a.SessionID,
			TextID:      a.TextID,
			Correct:     a.Correct,
			Total:       a.Total,
			Percentage:  a.Percentage,
			SubmittedAt: a.SubmittedAt,
		})
	}
	return resp
}

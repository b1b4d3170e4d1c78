package service

import (
	"context"
	"time"

	"classics-study/internal/domain"
	"classics-study/internal/dto"
	"classics-study/internal/logger"
	"classics-study/internal/util"

	"go.uber.org/zap"
)

// SessionService defines the quiz session operations
type SessionService interface {
	Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	SelectAnswer(ctx context.Context, id string, answer domain.Answer) (*dto.SessionResponse, error)
	Reveal(ctx context.Context, id string) (*dto.SessionResponse, error)
	Advance(ctx context.Context, id string) (*dto.NavigationResponse, error)
	Retreat(ctx context.Context, id string) (*dto.NavigationResponse, error)
	Submit(ctx context.Context, id string) (*dto.SubmitResponse, error)
	Reset(ctx context.Context, id string) (*dto.SessionResponse, error)
	Score(ctx context.Context, id string) (*dto.ScoreResponse, error)
	Results(ctx context.Context, id string) (*dto.ResultsResponse, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	content  ContentProvider
	store    SessionStore
	recorder AttemptRecorder
	locks    *keyedMutex
	now      func() time.Time
	newID    func() string
}

// NewSessionService wires the session operations. recorder may be nil when
// attempt history is disabled.
func NewSessionService(content ContentProvider, store SessionStore, recorder AttemptRecorder) SessionService {
	return &sessionService{
		content:  content,
		store:    store,
		recorder: recorder,
		locks:    newKeyedMutex(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    util.NewULID,
	}
}

func (s *sessionService) Start(ctx context.Context, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	if req.TextID < 0 {
		return nil, domain.NewInvalidInputError("text_id must not be negative")
	}
	if req.TextID != 0 {
		if _, ok := s.content.Text(req.TextID); !ok {
			return nil, domain.NewTextNotFoundError(req.TextID)
		}
	}

	sess := domain.NewSession()
	if err := sess.Load(s.content.QuestionsForText(req.TextID)); err != nil {
		logger.Get().Warn("Failed to load session", zap.Int("textID", req.TextID), zap.Error(err))
		return nil, err
	}

	now := s.now()
	snap := sess.Snapshot()
	snap.ID = s.newID()
	snap.TextID = req.TextID
	snap.CreatedAt = now
	snap.UpdatedAt = now
	if err := s.store.Save(ctx, &snap); err != nil {
		return nil, err
	}

	logger.Get().Info("Session started",
		zap.String("sessionID", snap.ID),
		zap.Int("textID", snap.TextID),
		zap.Int("questions", sess.Len()))
	return newSessionResponse(&snap, sess), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	snap, sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newSessionResponse(snap, sess), nil
}

func (s *sessionService) SelectAnswer(ctx context.Context, id string, answer domain.Answer) (*dto.SessionResponse, error) {
	snap, sess, err := s.mutate(ctx, id, func(sess *domain.Session) error {
		return sess.SelectAnswer(answer)
	})
	if err != nil {
		return nil, err
	}
	return newSessionResponse(snap, sess), nil
}

func (s *sessionService) Reveal(ctx context.Context, id string) (*dto.SessionResponse, error) {
	snap, sess, err := s.mutate(ctx, id, (*domain.Session).Reveal)
	if err != nil {
		return nil, err
	}
	return newSessionResponse(snap, sess), nil
}

func (s *sessionService) Advance(ctx context.Context, id string) (*dto.NavigationResponse, error) {
	return s.navigate(ctx, id, (*domain.Session).Advance)
}

func (s *sessionService) Retreat(ctx context.Context, id string) (*dto.NavigationResponse, error) {
	return s.navigate(ctx, id, (*domain.Session).Retreat)
}

func (s *sessionService) navigate(ctx context.Context, id string, move func(*domain.Session) (bool, error)) (*dto.NavigationResponse, error) {
	var moved bool
	snap, sess, err := s.mutate(ctx, id, func(sess *domain.Session) error {
		var err error
		moved, err = move(sess)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.NavigationResponse{Moved: moved, Session: newSessionResponse(snap, sess)}, nil
}

// Submit finalizes the session and records the attempt. A failure to record
// is logged and does not undo the submit.
func (s *sessionService) Submit(ctx context.Context, id string) (*dto.SubmitResponse, error) {
	snap, sess, err := s.mutate(ctx, id, (*domain.Session).Submit)
	if err != nil {
		return nil, err
	}
	score, err := sess.Score()
	if err != nil {
		return nil, domain.NewInternalError("failed to grade submitted session", err)
	}

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, snap.ID, snap.TextID, score); err != nil {
			logger.Get().Error("Failed to record attempt",
				zap.String("sessionID", snap.ID),
				zap.Error(err))
		}
	}

	return &dto.SubmitResponse{
		Session: newSessionResponse(snap, sess),
		Score:   dto.NewScoreResponse(score),
	}, nil
}

func (s *sessionService) Reset(ctx context.Context, id string) (*dto.SessionResponse, error) {
	snap, sess, err := s.mutate(ctx, id, (*domain.Session).Reset)
	if err != nil {
		return nil, err
	}
	return newSessionResponse(snap, sess), nil
}

func (s *sessionService) Score(ctx context.Context, id string) (*dto.ScoreResponse, error) {
	_, sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	score, err := sess.Score()
	if err != nil {
		return nil, err
	}
	resp := dto.NewScoreResponse(score)
	return &resp, nil
}

func (s *sessionService) Results(ctx context.Context, id string) (*dto.ResultsResponse, error) {
	snap, sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	results, err := sess.Results()
	if err != nil {
		return nil, err
	}
	score, err := sess.Score()
	if err != nil {
		return nil, err
	}

	resp := &dto.ResultsResponse{
		SessionID: snap.ID,
		Score:     dto.NewScoreResponse(score),
		Items:     make([]dto.ResultItem, 0, len(results)),
	}
	for _, r := range results {
		resp.Items = append(resp.Items, dto.ResultItem{
			Position:      r.Position,
			Question:      dto.NewQuestionView(r.Question),
			Given:         r.Given,
			CorrectAnswer: r.CorrectAnswer,
			Correct:       r.Correct,
			Explanation:   r.Explanation,
		})
	}
	return resp, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if _, err := s.store.Load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Get().Info("Session deleted", zap.String("sessionID", id))
	return nil
}

func (s *sessionService) load(ctx context.Context, id string) (*domain.SessionSnapshot, *domain.Session, error) {
	snap, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	sess, err := domain.RestoreSession(*snap)
	if err != nil {
		logger.Get().Error("Failed to restore session", zap.String("sessionID", id), zap.Error(err))
		return nil, nil, err
	}
	return snap, sess, nil
}

// mutate applies op under the session's lock and saves the result. Nothing
// is saved when op fails.
func (s *sessionService) mutate(ctx context.Context, id string, op func(*domain.Session) error) (*domain.SessionSnapshot, *domain.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	prev, sess, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := op(sess); err != nil {
		return nil, nil, err
	}

	next := sess.Snapshot()
	next.ID = prev.ID
	next.TextID = prev.TextID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = s.now()
	if err := s.store.Save(ctx, &next); err != nil {
		return nil, nil, err
	}
	return &next, sess, nil
}

// newSessionResponse renders the client view. The current question's answer
// and explanation only appear once revealed.
func newSessionResponse(snap *domain.SessionSnapshot, sess *domain.Session) *dto.SessionResponse {
	total := sess.Len()
	idx := sess.CurrentIndex()
	state := sess.State()
	open := state == domain.StateActive || state == domain.StateReviewing
	answers := sess.Answers()

	resp := &dto.SessionResponse{
		ID:            snap.ID,
		TextID:        snap.TextID,
		State:         state.String(),
		CurrentIndex:  idx,
		Total:         total,
		AnsweredCount: sess.AnsweredCount(),
		Revealed:      sess.Revealed(),
		Submitted:     sess.Submitted(),
		Answers:       answers,
	}
	if total > 0 {
		resp.Progress = (idx + 1) * 100 / total
	}

	q, ok := sess.CurrentQuestion()
	if ok {
		view := dto.NewQuestionView(q)
		resp.Question = &view
		if correct, err := sess.CurrentIsCorrect(); err == nil {
			resp.Feedback = &dto.FeedbackResponse{
				Correct:       correct,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
			}
		}
	}

	resp.Actions = dto.ActionsResponse{
		CanReveal:  open && ok && answers[idx].IsAnswered(),
		CanAdvance: open && sess.Revealed() && !sess.IsLast(),
		CanRetreat: open && idx > 0,
		CanSubmit:  open && sess.Revealed() && sess.IsLast(),
	}
	return resp
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"classics-study/internal/cache"
	"classics-study/internal/domain"
	"classics-study/internal/logger"

	"go.uber.org/zap"
)

// SessionStore persists session snapshots between requests.
type SessionStore interface {
	// Load returns a SessionNotFound DomainError for unknown or expired ids.
	Load(ctx context.Context, id string) (*domain.SessionSnapshot, error)
	Save(ctx context.Context, snap *domain.SessionSnapshot) error
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// memorySessionStore keeps snapshots in process memory.
type memorySessionStore struct {
	mu    sync.RWMutex
	items map[string]domain.SessionSnapshot
	ttl   time.Duration
	now   func() time.Time
}

// NewMemorySessionStore returns an in-process store. Snapshots idle for
// longer than ttl are treated as gone; ttl <= 0 keeps them forever.
func NewMemorySessionStore(ttl time.Duration) *memorySessionStore {
	return &memorySessionStore{
		items: make(map[string]domain.SessionSnapshot),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *memorySessionStore) expired(snap domain.SessionSnapshot, now time.Time) bool {
	return s.ttl > 0 && now.Sub(snap.UpdatedAt) > s.ttl
}

func (s *memorySessionStore) Load(ctx context.Context, id string) (*domain.SessionSnapshot, error) {
	s.mu.RLock()
	snap, ok := s.items[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	if now := s.now(); s.expired(snap, now) {
		// A concurrent Save may have refreshed the id since the read above.
		if snap, ok = s.dropIfExpired(id, now); !ok {
			return nil, domain.NewSessionNotFoundError(id)
		}
	}
	return &snap, nil
}

// dropIfExpired re-reads id under the write lock and deletes it only if it is
// still expired. It returns the live snapshot when one remains.
func (s *memorySessionStore) dropIfExpired(id string, now time.Time) (domain.SessionSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.items[id]
	if !ok {
		return snap, false
	}
	if s.expired(snap, now) {
		delete(s.items, id)
		return snap, false
	}
	return snap, true
}

func (s *memorySessionStore) Save(ctx context.Context, snap *domain.SessionSnapshot) error {
	if snap == nil || snap.ID == "" {
		return domain.NewInvalidInputError("cannot store a session without an id")
	}
	s.mu.Lock()
	s.items[snap.ID] = *snap
	s.mu.Unlock()
	return nil
}

func (s *memorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Sweep drops expired snapshots and returns how many were removed.
func (s *memorySessionStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, snap := range s.items {
		if s.expired(snap, now) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (s *memorySessionStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.Get().Debug("Swept expired sessions", zap.Int("removed", n))
			}
		}
	}
}

// Len is the number of stored snapshots, expired or not.
func (s *memorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *memorySessionStore) Ping(ctx context.Context) error { return ctx.Err() }

// cacheSessionStore stores JSON snapshots through a domain.Cache, e.g. Redis.
type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewCacheSessionStore stores snapshots in c, refreshing ttl on every save.
func NewCacheSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func (s *cacheSessionStore) Load(ctx context.Context, id string) (*domain.SessionSnapshot, error) {
	key := cache.SessionKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		logger.Get().Error("Failed to load session snapshot", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load session %s", id), err)
	}
	if data == "" {
		return nil, domain.NewSessionNotFoundError(id)
	}

	var snap domain.SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		logger.Get().Error("Failed to unmarshal session snapshot", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal session %s", id), err)
	}
	return &snap, nil
}

func (s *cacheSessionStore) Save(ctx context.Context, snap *domain.SessionSnapshot) error {
	if snap == nil || snap.ID == "" {
		return domain.NewInvalidInputError("cannot store a session without an id")
	}
	key := cache.SessionKey(snap.ID)
	data, err := json.Marshal(snap)
	if err != nil {
		return domain.NewInternalError("failed to marshal session snapshot", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to save session snapshot", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to save session %s", snap.ID), err)
	}
	return nil
}

func (s *cacheSessionStore) Ping(ctx context.Context) error {
	if err := s.cache.Ping(ctx); err != nil {
		return domain.NewInternalError("session cache unreachable", err)
	}
	return nil
}

func (s *cacheSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, cache.SessionKey(id)); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to delete session %s", id), err)
	}
	return nil
}

package aiquiz

import (
	"context"
	"sync"
	"time"

	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/metrics"
)

// SessionStore keeps quiz sessions until their deadline. Get reports ErrSessionNotFound
// for missing and expired sessions alike.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	SweepExpired(ctx context.Context) (int, error)
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemoryStore() SessionStore {
	return newMemoryStore(time.Now)
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok || s.Expired(m.now()) {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memoryStore) Put(_ context.Context, s *Session) error {
	cp := *s

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &cp
	metrics.ActiveQuizSessions.Set(float64(len(m.sessions)))
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	metrics.ActiveQuizSessions.Set(float64(len(m.sessions)))
	return nil
}

func (m *memoryStore) SweepExpired(_ context.Context) (int, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			evicted++
		}
	}
	metrics.ActiveQuizSessions.Set(float64(len(m.sessions)))
	return evicted, nil
}

// RunSweeper evicts expired sessions every interval until ctx is cancelled.
func RunSweeper(ctx context.Context, store SessionStore, interval time.Duration) {
	log := config.WithContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.SweepExpired(ctx)
			if err != nil {
				log.WithError(err).Warn("Quiz session sweep failed")
				continue
			}
			if n > 0 {
				metrics.QuizSessionsEvicted.Add(float64(n))
				log.Debugf("Evicted %d expired quiz sessions", n)
			}
		}
	}
}

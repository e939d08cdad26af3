package aiquiz

import (
	"context"
	"sync"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type providerCall struct {
	system string
	user   string
}

// fakeProvider replays replies and errs in order; the last entry repeats.
type fakeProvider struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   []providerCall
}

func (p *fakeProvider) GenerateText(_ context.Context, system, user string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := len(p.calls)
	p.calls = append(p.calls, providerCall{system: system, user: user})

	var err error
	if len(p.errs) > 0 {
		err = p.errs[min(i, len(p.errs)-1)]
	}
	if err != nil {
		return "", err
	}
	if len(p.replies) == 0 {
		return "", nil
	}
	return p.replies[min(i, len(p.replies)-1)], nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func testSession(id string, expiresAt time.Time) *Session {
	return &Session{
		ID:         id,
		Topic:      "Go",
		Difficulty: DifficultyEasy,
		Questions: []Question{
			{
				Question:      "Which keyword starts a goroutine?",
				Options:       map[string]string{"A": "go", "B": "async", "C": "spawn", "D": "thread"},
				CorrectAnswer: "A",
				Explanation:   "The go statement starts a goroutine.",
			},
		},
		Status:    SessionActive,
		CreatedAt: expiresAt.Add(-30 * time.Minute),
		ExpiresAt: expiresAt,
	}
}

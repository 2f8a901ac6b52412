package memory

import (
	"context"
	"sync"
	"time"
)

const sweepEvery = 100

type counter struct {
	count     int64
	expiresAt time.Time
}

// ThrottleStore is a fixed-window counter map guarded by a mutex. Expired
// windows are swept every sweepEvery new windows.
type ThrottleStore struct {
	mu           sync.Mutex
	windows      map[string]*counter
	sweepCounter int
	now          func() time.Time
}

func NewThrottleStore() *ThrottleStore {
	return &ThrottleStore{
		windows: make(map[string]*counter),
		now:     time.Now,
	}
}

// WithClock replaces time.Now.
func (s *ThrottleStore) WithClock(now func() time.Time) *ThrottleStore {
	s.now = now
	return s
}

func (s *ThrottleStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.windows[key]
	if !ok || !now.Before(c.expiresAt) {
		s.windows[key] = &counter{count: 1, expiresAt: now.Add(window)}

		s.sweepCounter++
		if s.sweepCounter >= sweepEvery {
			s.sweep(now)
			s.sweepCounter = 0
		}
		return 1, nil
	}

	c.count++
	return c.count, nil
}

func (s *ThrottleStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.windows[key]
	if !ok || !s.now().Before(c.expiresAt) {
		return 0, nil
	}
	return c.count, nil
}

func (s *ThrottleStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.windows[key]
	if ok && s.now().Before(c.expiresAt) && c.count > 0 {
		c.count--
	}
	return nil
}

func (s *ThrottleStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// sweep must be called with s.mu held.
func (s *ThrottleStore) sweep(now time.Time) {
	for k, c := range s.windows {
		if !now.Before(c.expiresAt) {
			delete(s.windows, k)
		}
	}
}

package highscore

import (
	"context"
	"sync"
)

// MemoryStore keeps the best score for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	best  int
	saved bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return 0, ErrNotFound
	}
	return s.best, nil
}

func (s *MemoryStore) Save(ctx context.Context, best int) error {
	if err := validScore(best); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.best = best
	s.saved = true
	return nil
}

func (s *MemoryStore) Close() error { return nil }

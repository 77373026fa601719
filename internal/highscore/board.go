package highscore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const saveTimeout = 2 * time.Second

// Board is the process-wide best score shared by every run. It loads the
// stored value once and writes through to the store on each new record.
type Board struct {
	mu    sync.Mutex
	store Store
	log   *log.Logger
	best  int
}

// NewBoard loads the best score from store. A missing or unusable value
// starts the board at zero.
func NewBoard(ctx context.Context, store Store, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	b := &Board{store: store, log: logger}

	best, err := store.Load(ctx)
	switch {
	case err == nil:
		b.best = best
	case errors.Is(err, ErrNotFound):
		logger.Debug("no best score stored yet")
	default:
		logger.Warn("ignoring stored best score", "err", err)
	}
	return b
}

// Best returns the current best score.
func (b *Board) Best() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.best
}

// Submit records score if it beats the best. The in-memory best is updated
// even when the store fails; the store error is returned for logging.
func (b *Board) Submit(score int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if score <= b.best {
		return false, nil
	}
	b.best = score

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := b.store.Save(ctx, score); err != nil {
		return true, err
	}
	b.log.Info("new best score", "score", score)
	return true, nil
}

// Close closes the underlying store.
func (b *Board) Close() error {
	return b.store.Close()
}

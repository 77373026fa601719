// Package highscore persists the process-wide best score.
package highscore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Key is the name the best score is stored under.
const Key = "cookieRunHighScore"

var (
	// ErrNotFound is returned by Load when nothing was stored yet.
	ErrNotFound = errors.New("best score not found")
	// ErrCorrupt is returned by Load when the stored value cannot be used.
	ErrCorrupt = errors.New("best score corrupt")
)

// Store is a place the best score can be loaded from and saved to.
type Store interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, best int) error
	Close() error
}

// Open returns the store described by dsn:
//
//	""  or "memory"     in-memory, lost on exit
//	"sqlite://PATH"     SQLite database
//	"file://PATH"       msgpack file
//	"PATH"              msgpack file
func Open(dsn string) (Store, error) {
	switch {
	case dsn == "" || dsn == "memory":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLite(strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasPrefix(dsn, "file://"):
		return NewFileStore(strings.TrimPrefix(dsn, "file://")), nil
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("unsupported score store %q", dsn)
	default:
		return NewFileStore(dsn), nil
	}
}

func validScore(best int) error {
	if best < 0 {
		return fmt.Errorf("%w: negative score %d", ErrCorrupt, best)
	}
	return nil
}

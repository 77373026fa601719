package highscore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the best score in a SQLite table keyed by Key.
type SQLiteStore struct {
	conn *sql.DB
}

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL lets the web host read while a game host writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	s := &SQLiteStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS best_scores (
		key TEXT PRIMARY KEY,
		score INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := s.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate scores: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (int, error) {
	var best int
	err := s.conn.QueryRowContext(ctx,
		"SELECT score FROM best_scores WHERE key = ?", Key,
	).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	if err := validScore(best); err != nil {
		return 0, err
	}
	return best, nil
}

// Save stores best unless a higher score is already recorded, so
// concurrent processes sharing the database never lower it.
func (s *SQLiteStore) Save(ctx context.Context, best int) error {
	if err := validScore(best); err != nil {
		return err
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO best_scores (key, score) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			score = MAX(score, excluded.score),
			updated_at = CURRENT_TIMESTAMP`,
		Key, best,
	)
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

package highscore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// FileStore keeps scores in a small msgpack-encoded map, keyed by Key.
// Writes go to a temp file that is renamed over the old one.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file the scores live in.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (int, error) {
	scores, err := s.read()
	if err != nil {
		return 0, err
	}
	best, ok := scores[Key]
	if !ok {
		return 0, ErrNotFound
	}
	if err := validScore(best); err != nil {
		return 0, err
	}
	return best, nil
}

func (s *FileStore) Save(ctx context.Context, best int) error {
	if err := validScore(best); err != nil {
		return err
	}

	// Keep unrelated keys written by other tools
	scores, err := s.read()
	if err != nil {
		scores = make(map[string]int, 1)
	}
	scores[Key] = best

	data, err := msgpack.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("create temp score file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace score file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() (map[string]int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}

	var scores map[string]int
	if err := msgpack.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if scores == nil {
		scores = make(map[string]int, 1)
	}
	return scores, nil
}

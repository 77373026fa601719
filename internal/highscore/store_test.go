package highscore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func storeRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load on empty store = %v, want ErrNotFound", err)
	}
	if err := s.Save(ctx, 12); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got, err := s.Load(ctx); err != nil || got != 12 {
		t.Fatalf("Load = %d, %v; want 12", got, err)
	}
	if err := s.Save(ctx, -1); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Save(-1) = %v, want ErrCorrupt", err)
	}
}

func TestMemoryStore(t *testing.T) {
	storeRoundTrip(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.msgpack")
	storeRoundTrip(t, NewFileStore(path))

	// A second store on the same file sees the saved value
	got, err := NewFileStore(path).Load(context.Background())
	if err != nil || got != 12 {
		t.Fatalf("reload = %d, %v; want 12", got, err)
	}
}

func TestFileStoreKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.msgpack")
	data, err := msgpack.Marshal(map[string]int{"otherGame": 99})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := NewFileStore(path).Save(context.Background(), 5); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var scores map[string]int
	if err := msgpack.Unmarshal(raw, &scores); err != nil {
		t.Fatal(err)
	}
	if scores["otherGame"] != 99 || scores[Key] != 5 {
		t.Fatalf("scores = %v", scores)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.msgpack")
	if err := os.WriteFile(path, []byte("not msgpack at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load = %v, want ErrCorrupt", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	storeRoundTrip(t, s)
}

func TestSQLiteStoreNeverLowersBest(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for _, score := range []int{10, 30, 20} {
		if err := s.Save(ctx, score); err != nil {
			t.Fatalf("Save(%d): %v", score, err)
		}
	}
	if got, _ := s.Load(ctx); got != 30 {
		t.Fatalf("Load = %d, want 30", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "", want: "*highscore.MemoryStore"},
		{dsn: "memory", want: "*highscore.MemoryStore"},
		{dsn: "file://" + filepath.Join(dir, "a.msgpack"), want: "*highscore.FileStore"},
		{dsn: filepath.Join(dir, "b.msgpack"), want: "*highscore.FileStore"},
		{dsn: "sqlite://" + filepath.Join(dir, "c.db"), want: "*highscore.SQLiteStore"},
		{dsn: "redis://localhost", wantErr: true},
	}
	for _, tt := range tests {
		s, err := Open(tt.dsn)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Open(%q) succeeded, want error", tt.dsn)
			}
			continue
		}
		if err != nil {
			t.Errorf("Open(%q): %v", tt.dsn, err)
			continue
		}
		if got := typeName(s); got != tt.want {
			t.Errorf("Open(%q) = %s, want %s", tt.dsn, got, tt.want)
		}
		s.Close()
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return "*highscore.MemoryStore"
	case *FileStore:
		return "*highscore.FileStore"
	case *SQLiteStore:
		return "*highscore.SQLiteStore"
	default:
		return "unknown"
	}
}

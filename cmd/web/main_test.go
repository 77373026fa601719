package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/tomz197/cookierun/internal/highscore"
)

func newTestServer(t *testing.T, best int) http.Handler {
	t.Helper()
	srv, err := newServer("play.example.com", "2222", "memory", log.New(io.Discard))
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	t.Cleanup(func() { srv.store.Close() })
	if best > 0 {
		if err := srv.store.Save(context.Background(), best); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	return srv.routes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestBestAPI(t *testing.T) {
	h := newTestServer(t, 42)
	rec := get(t, h, "/api/best")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got bestResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Key != highscore.Key || got.Best != 42 {
		t.Errorf("got %+v", got)
	}
}

func TestBestAPIEmptyStore(t *testing.T) {
	rec := get(t, newTestServer(t, 0), "/api/best")
	if !strings.Contains(rec.Body.String(), `"best":0`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestIndex(t *testing.T) {
	rec := get(t, newTestServer(t, 7), "/")
	body := rec.Body.String()
	if !strings.Contains(body, "ssh -p 2222 play.example.com") {
		t.Error("index misses the ssh command")
	}
	if !strings.Contains(body, `<span id="best">7</span>`) {
		t.Error("index misses the best score")
	}
}

func TestUnknownPath(t *testing.T) {
	if rec := get(t, newTestServer(t, 0), "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestQRCode(t *testing.T) {
	rec := get(t, newTestServer(t, 0), "/qr.png")
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestSSHCommandDefaultPort(t *testing.T) {
	s := &server{sshHost: "example.com", sshPort: "22"}
	if got := s.sshCommand(); got != "ssh example.com" {
		t.Errorf("sshCommand = %q", got)
	}
	if got := s.sshURL(); got != "ssh://example.com" {
		t.Errorf("sshURL = %q", got)
	}
}

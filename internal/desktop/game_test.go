package desktop

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/input"
)

func newTestGame(t *testing.T) (*Game, *[]engine.CollisionResult) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.CollectibleInterval = time.Hour
	cfg.HazardInterval = time.Hour
	cfg.PowerUpInterval = time.Hour
	eng, err := engine.New(cfg, engine.WithRand(rand.New(rand.NewSource(1))), engine.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	var results []engine.CollisionResult
	g := NewGame(eng, Options{
		Logger:      log.New(io.Discard),
		OnCollision: func(r engine.CollisionResult) { results = append(results, r) },
	})
	return g, &results
}

func TestStepChecksCollisionsOnTheirOwnCadence(t *testing.T) {
	g, results := newTestGame(t)
	g.eng.Start()

	// 25 ticks of 1/60s are 416ms: eight 50ms checks, none captures anything
	for i := 0; i < 25; i++ {
		g.step(tickDelta)
	}
	if len(*results) != 0 {
		t.Fatalf("got %d results with nothing falling", len(*results))
	}
	if g.collisionAcc >= g.collisionEvery {
		t.Fatalf("accumulator %v not drained", g.collisionAcc)
	}
	want := 25*tickDelta - 8*g.collisionEvery
	if g.collisionAcc != want {
		t.Errorf("accumulator = %v, want %v", g.collisionAcc, want)
	}
}

func TestStepIdleResetsCollisionClock(t *testing.T) {
	g, _ := newTestGame(t)
	g.collisionAcc = 40 * time.Millisecond
	g.step(tickDelta)
	if g.collisionAcc != 0 {
		t.Errorf("idle accumulator = %v, want 0", g.collisionAcc)
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want input.Event
		ok   bool
	}{
		{ebiten.KeySpace, input.Event{Type: input.EventKey, Key: input.KeyRune, Rune: ' '}, true},
		{ebiten.KeyEnter, input.Event{Type: input.EventKey, Key: input.KeyEnter}, true},
		{ebiten.KeyEscape, input.Event{Type: input.EventKey, Key: input.KeyEscape}, true},
		{ebiten.KeyQ, input.Event{Type: input.EventKey, Key: input.KeyRune, Rune: 'q'}, true},
		{ebiten.KeyA, input.Event{}, false},
	}
	for _, tt := range tests {
		got, ok := keyEvent(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("keyEvent(%v) = %+v, %v; want %+v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLayoutIsFixed(t *testing.T) {
	g, _ := newTestGame(t)
	if w, h := g.Layout(1920, 1080); w != ScreenWidth || h != ScreenHeight {
		t.Errorf("Layout = %dx%d", w, h)
	}
}

// Package desktop runs the game in an ebiten window, where the mouse or a
// touch moves the catcher.
package desktop

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/input"
	"github.com/tomz197/cookierun/internal/loop"
	"github.com/tomz197/cookierun/internal/object"
)

// Screen Constants
const (
	ScreenWidth  = 480
	ScreenHeight = 480
	WindowTitle  = "Cookie Run"

	tps       = 60
	tickDelta = time.Second / tps
	holdStep  = 1.2 // Field percent per tick while a move key is held
)

// Game adapts the engine to ebiten's Update/Draw/Layout cycle. Update is
// the frame source; collision checks run from the same clock but on their
// own 50ms cadence.
type Game struct {
	eng         *engine.Engine
	log         *log.Logger
	view        loop.ViewState
	effects     *object.Effects
	onCollision func(engine.CollisionResult)

	collisionEvery time.Duration
	collisionAcc   time.Duration
	lastCursor     [2]int
	touchIDs       []ebiten.TouchID
}

// Options configures a Game.
type Options struct {
	OnCollision func(engine.CollisionResult)
	Logger      *log.Logger
}

// NewGame creates a game around eng.
func NewGame(eng *engine.Engine, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		eng:            eng,
		log:            logger,
		effects:        object.NewEffects(nil, 400),
		onCollision:    opts.OnCollision,
		collisionEvery: eng.Config().CollisionInterval,
		lastCursor:     [2]int{-1, -1},
	}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(ScreenWidth*2, ScreenHeight*2)
	ebiten.SetWindowTitle(WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

// Update: Logic (60 TPS)
func (g *Game) Update() error {
	if g.handleKeys() {
		return ebiten.Termination
	}
	g.handlePointer()
	g.step(tickDelta)
	return nil
}

// step advances the engine by one tick and runs every collision check
// that fell due.
func (g *Game) step(dt time.Duration) {
	g.eng.Frame(dt)
	if g.eng.Phase() != engine.PhaseRunning {
		g.collisionAcc = 0
		g.effects.Update(dt, g.eng.Phase() == engine.PhasePaused)
		return
	}

	g.collisionAcc += dt
	for g.collisionAcc >= g.collisionEvery {
		g.collisionAcc -= g.collisionEvery
		res := g.eng.CheckCollisions()
		if res.Empty() {
			continue
		}
		g.effects.Capture(res.Captured)
		if g.onCollision != nil {
			g.onCollision(res)
		}
		if res.GameOver {
			g.log.Info("game over", "record", res.NewRecord)
		}
	}
	g.effects.Update(dt, false)
}

// handleKeys maps pressed keys onto the terminal key bindings.
func (g *Game) handleKeys() (quit bool) {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		ev, ok := keyEvent(k)
		if !ok {
			continue
		}
		if loop.Apply(g.eng, &g.view, loop.ActionFor(ev, g.eng.Phase(), g.view)) {
			return true
		}
	}

	// Held keys glide instead of stepping
	if g.eng.Phase() == engine.PhaseRunning {
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
			g.eng.NudgePlayer(-holdStep)
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
			g.eng.NudgePlayer(holdStep)
		}
	}
	return false
}

// keyEvent converts the non-movement keys; movement is polled as held keys.
func keyEvent(k ebiten.Key) (input.Event, bool) {
	ev := input.Event{Type: input.EventKey}
	switch k {
	case ebiten.KeySpace:
		ev.Key, ev.Rune = input.KeyRune, ' '
	case ebiten.KeyEnter:
		ev.Key = input.KeyEnter
	case ebiten.KeyEscape:
		ev.Key = input.KeyEscape
	case ebiten.KeyP:
		ev.Key, ev.Rune = input.KeyRune, 'p'
	case ebiten.KeyM:
		ev.Key, ev.Rune = input.KeyRune, 'm'
	case ebiten.KeyR:
		ev.Key, ev.Rune = input.KeyRune, 'r'
	case ebiten.KeyQ:
		ev.Key, ev.Rune = input.KeyRune, 'q'
	default:
		return input.Event{}, false
	}
	return ev, true
}

// handlePointer follows the mouse when it moves and any active touch.
func (g *Game) handlePointer() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, _ := ebiten.TouchPosition(g.touchIDs[0])
		g.eng.MovePointer(float64(x), ScreenWidth)
		// A tap on the menu or the game over screen starts a run
		switch g.eng.Phase() {
		case engine.PhaseIdle, engine.PhaseGameOver:
			if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 && !g.view.ShowRecords {
				g.eng.Start()
			}
		}
		return
	}

	x, y := ebiten.CursorPosition()
	if x == g.lastCursor[0] && y == g.lastCursor[1] {
		return
	}
	g.lastCursor = [2]int{x, y}
	if x >= 0 && x < ScreenWidth {
		g.eng.MovePointer(float64(x)+0.5, ScreenWidth)
	}
}

// Layout: fixed logical resolution, ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

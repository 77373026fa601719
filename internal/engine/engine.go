// Package engine implements the catcher game model: spawning, per-frame
// motion, ground-band collision checks, scoring, lives and the run
// lifecycle. Views read Snapshots and drive the engine through its
// command methods; the engine never renders anything itself.
package engine

import (
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/cookierun/internal/physics"
)

// Recorder keeps the process-wide best score.
type Recorder interface {
	// Best returns the current best score.
	Best() int
	// Submit offers a final score and reports whether it became the new best.
	// The in-memory best must be updated even when persisting fails.
	Submit(score int) (bool, error)
}

// Engine owns the state of one run. All methods are safe for concurrent use;
// a single mutex serializes frame ticks, collision ticks and input.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand
	log *log.Logger
	rec Recorder

	phase     Phase
	score     int
	lives     int
	playerX   float64
	magnet    Deadline
	objects   []FallingObject
	elapsed   time.Duration
	anchors   spawnAnchors
	nextID    uint64
	best      int
	newRecord bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for spawn positions and speeds.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the logger used for lifecycle and persistence messages.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithRecorder sets where best scores are read from and submitted to.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.rec = r }
}

// New creates an engine in the Idle phase.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel, Prefix: "engine"})
	}
	if e.rec != nil {
		e.best = e.rec.Best()
	}
	e.reset()
	e.phase = PhaseIdle
	return e, nil
}

// Config returns the engine tuning.
func (e *Engine) Config() Config {
	return e.cfg
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Start begins a fresh run from any phase.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec != nil {
		e.best = e.rec.Best()
	}
	e.reset()
	e.phase = PhaseRunning
	e.log.Debug("run started", "lives", e.lives)
}

// TogglePause switches between Running and Paused. Other phases are unaffected.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case PhaseRunning:
		e.phase = PhasePaused
	case PhasePaused:
		e.phase = PhaseRunning
	}
}

// ReturnToMenu abandons the current run and goes back to Idle.
func (e *Engine) ReturnToMenu() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.reset()
	e.phase = PhaseIdle
}

// MovePlayer sets the player position in field percent, clamped to the field.
// Ignored unless a run is active.
func (e *Engine) MovePlayer(x float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.movePlayer(x)
}

// NudgePlayer moves the player by dx field percent.
func (e *Engine) NudgePlayer(dx float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.movePlayer(e.playerX + dx)
}

// MovePointer translates a pointer position px on a surface of the given
// width (pixels, cells, any unit) into a player position.
func (e *Engine) MovePointer(px, width float64) {
	if width <= 0 || math.IsNaN(px) || math.IsInf(px, 0) {
		return
	}
	e.MovePlayer(px / width * 100)
}

func (e *Engine) movePlayer(x float64) {
	if e.phase != PhaseRunning || math.IsNaN(x) {
		return
	}
	e.playerX = physics.Clamp(x, e.cfg.MinX, e.cfg.MaxX)
}

// Frame advances the run by one display frame: dt of run time passes,
// due objects spawn and every object falls by its speed.
func (e *Engine) Frame(dt time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseRunning {
		return
	}
	if dt > 0 {
		e.elapsed += dt
	}
	if e.magnet.Fire(e.elapsed) {
		e.log.Debug("magnet expired", "at", e.elapsed)
	}
	e.spawn()
	e.move()
}

// Snapshot returns a copy of the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	objects := make([]FallingObject, len(e.objects))
	copy(objects, e.objects)

	return Snapshot{
		Phase:     e.phase,
		Score:     e.score,
		Lives:     e.lives,
		MaxLives:  e.cfg.MaxLives,
		Best:      e.best,
		NewRecord: e.newRecord,
		Player: Player{
			X:            e.playerX,
			HasMagnet:    e.magnet.Armed(),
			MagnetExpiry: e.magnet.At(),
		},
		Magnet:  e.magnet.Remaining(e.elapsed),
		Objects: objects,
		Elapsed: e.elapsed,
	}
}

// reset puts the run back to its initial values. Caller holds the lock.
func (e *Engine) reset() {
	e.objects = e.objects[:0]
	e.score = 0
	e.lives = e.cfg.InitialLives
	e.playerX = e.cfg.StartX
	e.magnet.Cancel()
	e.elapsed = 0
	e.anchors = spawnAnchors{}
	e.newRecord = false
}

// endRun moves to GameOver and submits the final score. Caller holds the lock.
func (e *Engine) endRun() {
	e.phase = PhaseGameOver
	e.magnet.Cancel()

	if e.rec == nil {
		if e.score > e.best {
			e.best = e.score
			e.newRecord = true
		}
	} else {
		record, err := e.rec.Submit(e.score)
		if err != nil {
			e.log.Warn("saving best score failed", "score", e.score, "err", err)
		}
		e.newRecord = record
		e.best = e.rec.Best()
	}
	e.log.Info("run over", "score", e.score, "best", e.best, "record", e.newRecord)
}

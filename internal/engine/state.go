package engine

import "time"

// Phase is the lifecycle state of the current run.
type Phase int

const (
	PhaseIdle     Phase = iota // Menu, nothing falling
	PhaseRunning               // Active run
	PhasePaused                // Run frozen, state kept
	PhaseGameOver              // Lives reached zero
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the engine state handed to views.
// Objects is a fresh slice; mutating it does not affect the engine.
type Snapshot struct {
	Phase     Phase
	Score     int
	Lives     int
	MaxLives  int
	Best      int  // Best score, including the current run once it ended
	NewRecord bool // The finished run beat the previous best
	Player    Player
	Magnet    time.Duration // Magnet time left, zero without magnet
	Objects   []FallingObject
	Elapsed   time.Duration // Run time, paused intervals excluded
}

// Started reports whether a run has been started and not sent back to the menu.
func (s Snapshot) Started() bool { return s.Phase != PhaseIdle }

// Over reports whether the run ended.
func (s Snapshot) Over() bool { return s.Phase == PhaseGameOver }

// Paused reports whether the run is paused.
func (s Snapshot) Paused() bool { return s.Phase == PhasePaused }

// CollisionResult summarizes one collision check.
type CollisionResult struct {
	Caught     int // Collectibles captured
	Hits       int // Hazards captured
	Magnets    int
	ExtraLives int // Extra-life power-ups captured, including those wasted at the cap
	Captured   []FallingObject
	GameOver   bool // This check ended the run
	NewRecord  bool // The run that just ended set a new best score
}

// Empty reports whether nothing was captured.
func (r CollisionResult) Empty() bool {
	return len(r.Captured) == 0
}

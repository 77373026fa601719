package engine

import "time"

// Kind identifies what a falling object does when caught.
type Kind int

const (
	KindCollectible Kind = iota // Cookie: +1 score
	KindHazard                  // Costs one life
	KindMagnet                  // Pulls cookies toward the player for a while
	KindExtraLife               // +1 life up to MaxLives
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindCollectible:
		return "collectible"
	case KindHazard:
		return "hazard"
	case KindMagnet:
		return "magnet"
	case KindExtraLife:
		return "extra_life"
	default:
		return "unknown"
	}
}

// IsPowerUp reports whether the kind is one of the power-up kinds.
func (k Kind) IsPowerUp() bool {
	return k == KindMagnet || k == KindExtraLife
}

// FallingObject is a single object falling through the field.
type FallingObject struct {
	ID    uint64
	X, Y  float64 // Field-percent position (y grows downward)
	Speed float64 // Vertical units per frame
	Kind  Kind
}

// Player is the catcher at the bottom of the field.
type Player struct {
	X            float64
	HasMagnet    bool
	MagnetExpiry time.Duration // Run time at which the magnet wears off; zero without magnet
}

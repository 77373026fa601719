package object

import (
	"time"

	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas  *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer  *draw.ChunkWriter // Text overlay output
	Elapsed time.Duration     // Run time, drives idle animations
}

// Object is a drawable and updatable view entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ForFalling returns the sprite for a falling object from an engine snapshot.
func ForFalling(obj engine.FallingObject) Object {
	switch obj.Kind {
	case engine.KindHazard:
		return Rock{FallingObject: obj}
	case engine.KindMagnet:
		return Magnet{FallingObject: obj}
	case engine.KindExtraLife:
		return Heart{FallingObject: obj}
	default:
		return Cookie{FallingObject: obj}
	}
}

// InkFor returns the main color of a falling object kind.
func InkFor(kind engine.Kind) draw.Ink {
	switch kind {
	case engine.KindHazard:
		return draw.InkHazard
	case engine.KindMagnet:
		return draw.InkMagnet
	case engine.KindExtraLife:
		return draw.InkLife
	default:
		return draw.InkCookie
	}
}

// ShouldRenderBlink returns true if an object with remaining time should be
// rendered this frame (for blinking effect). Always true when remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}

// noise returns a stable pseudo-random value in [0,1) for an object id and
// a salt, so sprites keep their shape from frame to frame.
func noise(id, salt uint64) float64 {
	x := id*0x9e3779b97f4a7c15 + salt*0xbf58476d1ce4e5b9
	x ^= x >> 31
	x *= 0x94d049bb133111eb
	x ^= x >> 29
	return float64(x>>11) / (1 << 53)
}

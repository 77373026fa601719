package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/cookierun/internal/engine"
)

// Effects owns the short-lived view objects (capture particles) of one view.
// It is not safe for concurrent use.
type Effects struct {
	rng     *rand.Rand
	limit   int
	objects []Object
	toSpawn []Object
}

// NewEffects creates an effect list holding at most limit objects.
func NewEffects(rng *rand.Rand, limit int) *Effects {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Effects{rng: rng, limit: limit}
}

// Spawn queues an object; it joins the list at the end of the next Update.
func (e *Effects) Spawn(obj Object) {
	e.toSpawn = append(e.toSpawn, obj)
}

// Capture spawns the effect of every captured object.
func (e *Effects) Capture(captured []engine.FallingObject) {
	for _, fo := range captured {
		SpawnCapture(e.rng, fo, e)
	}
}

// Update advances all effects by delta. A frozen update only admits new
// spawns, so effects hold still while a run is paused.
func (e *Effects) Update(delta time.Duration, frozen bool) {
	if !frozen {
		ctx := UpdateContext{Delta: delta, Spawner: e}
		kept := e.objects[:0]
		for _, obj := range e.objects {
			if remove, _ := obj.Update(ctx); remove {
				ReleaseObject(obj)
				continue
			}
			kept = append(kept, obj)
		}
		clear(e.objects[len(kept):])
		e.objects = kept
	}

	for _, obj := range e.toSpawn {
		if e.limit > 0 && len(e.objects) >= e.limit {
			ReleaseObject(obj)
			continue
		}
		e.objects = append(e.objects, obj)
	}
	clear(e.toSpawn)
	e.toSpawn = e.toSpawn[:0]
}

// Draw draws every effect.
func (e *Effects) Draw(ctx DrawContext) error {
	for _, obj := range e.objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of live effects.
func (e *Effects) Len() int {
	return len(e.objects)
}

// Each calls fn for every live effect.
func (e *Effects) Each(fn func(Object)) {
	for _, obj := range e.objects {
		fn(obj)
	}
}

// Reset releases every effect.
func (e *Effects) Reset() {
	for _, obj := range e.objects {
		ReleaseObject(obj)
	}
	for _, obj := range e.toSpawn {
		ReleaseObject(obj)
	}
	e.objects = e.objects[:0]
	e.toSpawn = e.toSpawn[:0]
}

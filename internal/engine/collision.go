package engine

import "github.com/tomz197/cookierun/internal/physics"

// CheckCollisions samples the ground band once. Objects inside the band and
// within reach of the player are captured and removed; collectibles are
// scored first, then power-ups, then hazards. A no-op unless Running.
func (e *Engine) CheckCollisions() CollisionResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res CollisionResult
	if e.phase != PhaseRunning {
		return res
	}

	captured := make(map[uint64]struct{})

	// Collectibles
	for _, obj := range e.objects {
		if obj.Kind == KindCollectible && e.capturable(obj) {
			captured[obj.ID] = struct{}{}
			res.Captured = append(res.Captured, obj)
			res.Caught++
		}
	}
	e.score += res.Caught

	// Power-ups
	for _, obj := range e.objects {
		if !obj.Kind.IsPowerUp() || !e.capturable(obj) {
			continue
		}
		captured[obj.ID] = struct{}{}
		res.Captured = append(res.Captured, obj)
		switch obj.Kind {
		case KindMagnet:
			res.Magnets++
			e.magnet.Arm(e.elapsed, e.cfg.MagnetDuration)
		case KindExtraLife:
			res.ExtraLives++
			if e.lives < e.cfg.MaxLives {
				e.lives++
			}
		}
	}

	// Hazards
	for _, obj := range e.objects {
		if obj.Kind != KindHazard || !e.capturable(obj) {
			continue
		}
		captured[obj.ID] = struct{}{}
		res.Captured = append(res.Captured, obj)
		res.Hits++
		e.lives--
		if e.lives <= 0 {
			e.lives = 0
			e.endRun()
			res.GameOver = true
			res.NewRecord = e.newRecord
			break
		}
	}

	if len(captured) > 0 {
		e.removeCaptured(captured)
	}
	return res
}

// capturable reports whether obj is in the ground band and within reach.
func (e *Engine) capturable(obj FallingObject) bool {
	return physics.InOpenRange(obj.Y, e.cfg.BandTop, e.cfg.BandBase) &&
		physics.WithinReach(obj.X, e.playerX, e.cfg.Reach)
}

func (e *Engine) removeCaptured(captured map[uint64]struct{}) {
	kept := e.objects[:0]
	for _, obj := range e.objects {
		if _, ok := captured[obj.ID]; !ok {
			kept = append(kept, obj)
		}
	}
	e.objects = kept
}

package engine

import "time"

// spawnAnchors hold the run time of the last spawn of each group.
type spawnAnchors struct {
	collectible time.Duration
	hazard      time.Duration
	powerUp     time.Duration
}

// spawn appends the objects whose cadence is due. At most one object per
// group is created per frame; a long frame does not produce a burst.
// Caller holds the lock.
func (e *Engine) spawn() {
	if due(e.elapsed, &e.anchors.collectible, e.cfg.CollectibleInterval) {
		e.add(KindCollectible, e.randomSpeed(e.cfg.CollectibleSpeed))
	}
	if due(e.elapsed, &e.anchors.hazard, e.cfg.HazardInterval) {
		e.add(KindHazard, e.randomSpeed(e.cfg.HazardSpeed))
	}
	if e.cfg.PowerUps && due(e.elapsed, &e.anchors.powerUp, e.cfg.PowerUpInterval) {
		kind := KindExtraLife
		if e.rng.Float64() > 0.5 {
			kind = KindMagnet
		}
		e.add(kind, e.cfg.PowerUpSpeed)
	}
}

// due reports whether interval has passed since *anchor and moves the anchor to now.
func due(now time.Duration, anchor *time.Duration, interval time.Duration) bool {
	if now-*anchor < interval {
		return false
	}
	*anchor = now
	return true
}

func (e *Engine) add(kind Kind, speed float64) {
	e.nextID++
	e.objects = append(e.objects, FallingObject{
		ID:    e.nextID,
		X:     e.cfg.MinX + e.rng.Float64()*(e.cfg.MaxX-e.cfg.MinX),
		Y:     e.cfg.SpawnY,
		Speed: speed,
		Kind:  kind,
	})
}

func (e *Engine) randomSpeed(r SpeedRange) float64 {
	return r.Min + e.rng.Float64()*(r.Max-r.Min)
}

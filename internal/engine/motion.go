package engine

import "github.com/tomz197/cookierun/internal/physics"

// move advances every object by its speed and drops the ones that left the
// field. With the magnet active, cookies in the lower part of the field
// drift toward the player's column. Caller holds the lock.
func (e *Engine) move() {
	magnet := e.magnet.Armed()

	kept := e.objects[:0] // reuse backing array
	for _, obj := range e.objects {
		if magnet && obj.Kind == KindCollectible && obj.Y > e.cfg.MagnetThreshold {
			obj.X = physics.Lerp(obj.X, e.playerX, e.cfg.MagnetPull)
		}
		obj.Y += obj.Speed
		if obj.Y >= e.cfg.ExitY {
			continue
		}
		kept = append(kept, obj)
	}
	e.objects = kept
}

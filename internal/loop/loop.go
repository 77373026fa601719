// Package loop drives a game engine from a user interface: it owns the
// frame and collision tickers, maps input events to engine commands and
// hands snapshots to the view.
package loop

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/input"
	"github.com/tomz197/cookierun/internal/loop/config"
)

// ViewState is the view-only state layered over the engine snapshot.
type ViewState struct {
	ShowRecords  bool
	Inactive     bool
	InactiveLeft time.Duration // Time until disconnect while Inactive
	Shutdown     bool
	ShutdownLeft time.Duration
}

// Frame is everything a UI needs to draw one frame.
type Frame struct {
	Snapshot engine.Snapshot
	View     ViewState
	Delta    time.Duration
	Captured []engine.FallingObject // Captured since the previous frame
	Reach    float64                // Capture reach, the catcher's half width
}

// UI is a surface the game is shown on.
type UI interface {
	// Events returns the input events of the UI. Closing it ends the run.
	Events() <-chan input.Event
	// Pointer converts a pointer column into a position px along a field of
	// the given width, in the same units.
	Pointer(col int) (px, width float64)
	Draw(f Frame) error
}

// Resizer is implemented by UIs that accept size changes reported as events.
type Resizer interface {
	Resize(width, height int)
}

// Options configures Run.
type Options struct {
	// Shutdown, when closed, shows the shutdown notice and ends the run
	// after config.ShutdownDisplay.
	Shutdown <-chan struct{}
	// OnCollision is called after every collision check that captured something.
	OnCollision func(engine.CollisionResult)
	// Inactivity enables the idle warning and disconnect.
	Inactivity bool
	Logger     *log.Logger
}

// driver is the state of one Run.
type driver struct {
	eng  *engine.Engine
	ui   UI
	opts Options
	log  *log.Logger

	reach     float64
	view      ViewState
	captured  []engine.FallingObject
	lastInput time.Time
	shutdown  <-chan struct{}
	stopAt    time.Time
	quit      bool
}

// Run plays until the user quits, the UI's event channel closes, ctx is
// cancelled or the shutdown notice runs out. The frame ticker spawns and
// moves objects; the independent collision ticker samples the ground band.
func Run(ctx context.Context, eng *engine.Engine, ui UI, opts Options) error {
	d := &driver{
		eng:       eng,
		ui:        ui,
		opts:      opts,
		log:       opts.Logger,
		reach:     eng.Config().Reach,
		lastInput: time.Now(),
		shutdown:  opts.Shutdown,
	}
	if d.log == nil {
		d.log = log.Default()
	}

	frameTicker := time.NewTicker(config.TargetFrameTime)
	defer frameTicker.Stop()
	collisionTicker := time.NewTicker(eng.Config().CollisionInterval)
	defer collisionTicker.Stop()

	events := ui.Events()
	lastFrame := time.Now()

	for !d.quit {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.handleEvent(ev)

		case <-d.shutdown:
			d.shutdown = nil // Fire once
			d.view.Shutdown = true
			d.stopAt = time.Now().Add(config.ShutdownDisplay)

		case <-collisionTicker.C:
			res := eng.CheckCollisions()
			if res.Empty() {
				continue
			}
			d.captured = append(d.captured, res.Captured...)
			if opts.OnCollision != nil {
				opts.OnCollision(res)
			}
			if res.GameOver {
				d.log.Debug("game over", "record", res.NewRecord)
			}

		case now := <-frameTicker.C:
			delta := now.Sub(lastFrame)
			lastFrame = now
			eng.Frame(delta)
			d.tick(now)
			if d.quit {
				break
			}
			if err := d.draw(delta); err != nil {
				return err
			}
		}
	}
	return nil
}

// tick updates the timers of the view state.
func (d *driver) tick(now time.Time) {
	if d.view.Shutdown {
		d.view.ShutdownLeft = d.stopAt.Sub(now)
		if d.view.ShutdownLeft <= 0 {
			d.quit = true
			return
		}
	}

	if !d.opts.Inactivity {
		return
	}
	idle := now.Sub(d.lastInput)
	switch {
	case idle > config.InactivityDisconnectUser:
		d.log.Info("disconnecting inactive player", "idle", idle.Round(time.Second))
		d.quit = true
	case idle > config.InactivityWarnUser:
		d.view.Inactive = true
		d.view.InactiveLeft = config.InactivityDisconnectUser - idle
	default:
		d.view.Inactive = false
	}
}

func (d *driver) draw(delta time.Duration) error {
	f := Frame{
		Snapshot: d.eng.Snapshot(),
		View:     d.view,
		Delta:    delta,
		Captured: d.captured,
		Reach:    d.reach,
	}
	err := d.ui.Draw(f)
	d.captured = d.captured[:0]
	return err
}

// handleEvent applies one input event immediately.
func (d *driver) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventResize:
		if r, ok := d.ui.(Resizer); ok {
			r.Resize(ev.Width, ev.Height)
		}
		return
	case input.EventPointer:
		d.lastInput = time.Now()
		d.view.Inactive = false
		px, width := d.ui.Pointer(ev.Col)
		d.eng.MovePointer(px, width)
		return
	}

	d.lastInput = time.Now()
	if d.view.Inactive {
		// The first key only dismisses the warning
		d.view.Inactive = false
		return
	}
	a := ActionFor(ev, d.eng.Phase(), d.view)
	if a == ActionStart {
		d.log.Debug("run started")
	}
	if Apply(d.eng, &d.view, a) {
		d.quit = true
	}
}

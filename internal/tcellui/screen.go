// Package tcellui shows the game on a tcell screen. It is an alternative
// to the raw ANSI terminal for local play.
package tcellui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/input"
	"github.com/tomz197/cookierun/internal/loop"
	"github.com/tomz197/cookierun/internal/loop/config"
	"github.com/tomz197/cookierun/internal/object"
)

// Screen is a loop.UI backed by tcell. The field is rasterized on a
// draw.Canvas and copied to tcell cells as colored half blocks.
type Screen struct {
	screen  tcell.Screen
	events  chan input.Event
	canvas  *draw.Canvas
	effects *object.Effects
	lastKey string
	width   int
	height  int
}

// New initializes the tcell screen with mouse motion reporting.
func New() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(screen)
}

func newScreen(screen tcell.Screen) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	w, h := screen.Size()
	rw, rh, _, _ := loop.ClampTermSize(w, h)
	s := &Screen{
		screen:  screen,
		events:  make(chan input.Event, 64),
		canvas:  draw.NewScaledCanvas(rw, rh, config.FieldWidth, config.FieldHeight),
		effects: object.NewEffects(nil, config.MaxParticles),
	}
	go s.pollEvents()
	return s, nil
}

// Close restores the terminal. The event channel closes once polling stops.
func (s *Screen) Close() {
	s.effects.Reset()
	s.screen.Fini()
}

// Events returns the translated tcell events.
func (s *Screen) Events() <-chan input.Event {
	return s.events
}

// Pointer maps a screen column onto the field.
func (s *Screen) Pointer(col int) (px, width float64) {
	return float64(col-s.canvas.OffsetCol()) + 0.5, float64(s.canvas.TerminalWidth())
}

func (s *Screen) pollEvents() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return // Screen finalized
		}
		if converted, ok := translate(ev); ok {
			s.events <- converted
		}
	}
}

// translate converts a tcell event to an input event.
func translate(ev tcell.Event) (input.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := keyFor(ev)
		if k == input.KeyNone {
			return input.Event{}, false
		}
		out := input.Event{Type: input.EventKey, Key: k}
		if k == input.KeyRune {
			out.Rune = ev.Rune()
		}
		return out, true
	case *tcell.EventMouse:
		// Wheel events carry no position change worth acting on
		if ev.Buttons()&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
			return input.Event{}, false
		}
		x, y := ev.Position()
		return input.Event{Type: input.EventPointer, Col: x, Row: y}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return input.Resize(w, h), true
	}
	return input.Event{}, false
}

func keyFor(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.KeyRune
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace
	case tcell.KeyTab:
		return input.KeyTab
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyCtrlC:
		return input.KeyCtrlC
	case tcell.KeyCtrlD:
		return input.KeyCtrlD
	}
	return input.KeyNone
}

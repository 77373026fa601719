package loop

import (
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/input"
	"github.com/tomz197/cookierun/internal/loop/config"
)

// Action is a host-level command derived from an input event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionStart
	ActionPause
	ActionMenu
	ActionRecords
	ActionCloseRecords
	ActionLeft
	ActionRight
)

// ActionFor maps a key event to an action for the current phase.
func ActionFor(ev input.Event, phase engine.Phase, view ViewState) Action {
	if ev.Type != input.EventKey {
		return ActionNone
	}
	if ev.Key == input.KeyCtrlC || ev.Key == input.KeyCtrlD || ev.IsRune('q', 'Q') {
		return ActionQuit
	}

	if view.ShowRecords {
		if ev.Key == input.KeyEscape || ev.Key == input.KeyEnter || ev.IsRune('r', 'R', ' ') {
			return ActionCloseRecords
		}
		return ActionNone
	}

	switch phase {
	case engine.PhaseIdle, engine.PhaseGameOver:
		switch {
		case ev.Key == input.KeyEnter || ev.IsRune(' '):
			return ActionStart
		case ev.IsRune('r', 'R') && phase == engine.PhaseIdle:
			return ActionRecords
		case ev.IsRune('m', 'M') && phase == engine.PhaseGameOver:
			return ActionMenu
		}
	case engine.PhaseRunning, engine.PhasePaused:
		switch {
		case ev.Key == input.KeyEscape || ev.IsRune('p', 'P', ' '):
			return ActionPause
		case ev.IsRune('m', 'M'):
			return ActionMenu
		case ev.Key == input.KeyLeft || ev.IsRune('a', 'A', 'h'):
			return ActionLeft
		case ev.Key == input.KeyRight || ev.IsRune('d', 'D', 'l'):
			return ActionRight
		}
	}
	return ActionNone
}

// Apply performs an action against the engine and the view state and
// reports whether the user asked to quit.
func Apply(eng *engine.Engine, view *ViewState, a Action) (quit bool) {
	switch a {
	case ActionQuit:
		return true
	case ActionStart:
		eng.Start()
	case ActionPause:
		eng.TogglePause()
	case ActionMenu:
		eng.ReturnToMenu()
	case ActionRecords:
		view.ShowRecords = true
	case ActionCloseRecords:
		view.ShowRecords = false
	case ActionLeft:
		eng.NudgePlayer(-config.KeyboardStep)
	case ActionRight:
		eng.NudgePlayer(config.KeyboardStep)
	}
	return false
}

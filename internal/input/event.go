package input

// EventType tells which fields of an Event are set.
type EventType uint8

const (
	EventKey     EventType = iota // Key, Rune
	EventPointer                  // Col, Row
	EventResize                   // Width, Height
)

// Key identifies a key press.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // Printable character in Event.Rune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
)

// Event is a single decoded input event.
type Event struct {
	Type EventType
	Key  Key
	Rune rune

	// Pointer position in zero-based terminal cells
	Col, Row int

	// New terminal size in cells
	Width, Height int
}

// Resize returns a resize event for a terminal of w×h cells.
func Resize(w, h int) Event {
	return Event{Type: EventResize, Width: w, Height: h}
}

// IsRune reports whether the event is a key press of one of the given runes.
func (e Event) IsRune(runes ...rune) bool {
	if e.Type != EventKey || e.Key != KeyRune {
		return false
	}
	for _, r := range runes {
		if e.Rune == r {
			return true
		}
	}
	return false
}

package input

import "unicode/utf8"

const (
	esc = 0x1b

	// SGR mouse button bit for wheel events
	mouseScroll = 64

	maxSeqLen = 32
)

// Parse decodes as many events as possible from buf and returns the
// trailing bytes of an incomplete escape or UTF-8 sequence, if any.
// Unknown escape sequences are consumed silently.
func Parse(buf []byte) (events []Event, rest []byte) {
	i := 0
	for i < len(buf) {
		b := buf[i]
		switch {
		case b == esc:
			n, ev, ok := parseEscape(buf[i:])
			if n == 0 {
				return events, buf[i:]
			}
			if ok {
				events = append(events, ev)
			}
			i += n
		case b >= 0x20 && b < 0x7f:
			events = append(events, Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
		case b < 0x20 || b == 0x7f:
			if key := controlKey(b); key != KeyNone {
				events = append(events, Event{Type: EventKey, Key: key})
			}
			i++
		default:
			if !utf8.FullRune(buf[i:]) {
				return events, buf[i:]
			}
			r, size := utf8.DecodeRune(buf[i:])
			if r != utf8.RuneError {
				events = append(events, Event{Type: EventKey, Key: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return events, nil
}

func controlKey(b byte) Key {
	switch b {
	case '\r', '\n':
		return KeyEnter
	case '\t':
		return KeyTab
	case 0x03:
		return KeyCtrlC
	case 0x04:
		return KeyCtrlD
	case '\b', 0x7f:
		return KeyBackspace
	}
	return KeyNone
}

// parseEscape decodes a sequence starting with ESC. It returns the number of
// bytes consumed (zero when incomplete) and whether ev is meaningful.
func parseEscape(data []byte) (n int, ev Event, ok bool) {
	if len(data) < 2 {
		return 0, Event{}, false
	}
	switch data[1] {
	case '[':
		return parseCSI(data)
	case 'O':
		// SS3 arrows sent in application cursor mode
		if len(data) < 3 {
			return 0, Event{}, false
		}
		key := arrowKey(data[2])
		return 3, Event{Type: EventKey, Key: key}, key != KeyNone
	}
	// ESC followed by anything else is a lone Escape press; the next byte
	// is decoded on its own
	return 1, Event{Type: EventKey, Key: KeyEscape}, true
}

func parseCSI(data []byte) (int, Event, bool) {
	if len(data) < 3 {
		return 0, Event{}, false
	}
	if data[2] == '<' {
		return parseSGRMouse(data)
	}

	for end := 2; end < len(data) && end < maxSeqLen; end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			key := KeyNone
			if end == 2 {
				key = arrowKey(b)
			}
			return end + 1, Event{Type: EventKey, Key: key}, key != KeyNone
		}
		if b < 0x20 || b > 0x7e {
			// Not a CSI sequence after all
			return 1, Event{Type: EventKey, Key: KeyEscape}, true
		}
	}
	if len(data) >= maxSeqLen {
		return maxSeqLen, Event{}, false
	}
	return 0, Event{}, false
}

func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

// parseSGRMouse decodes ESC [ < btn ; x ; y (M|m). Only motion and
// presses are reported; releases and scrolls are consumed.
func parseSGRMouse(data []byte) (int, Event, bool) {
	end := 3
	for end < len(data) && end < maxSeqLen && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= len(data) {
		if len(data) >= maxSeqLen {
			return maxSeqLen, Event{}, false
		}
		return 0, Event{}, false
	}
	if data[end] != 'M' && data[end] != 'm' {
		return end, Event{}, false
	}

	// Presses, drags and plain motion all move the pointer
	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok || data[end] == 'm' || btn&mouseScroll != 0 {
		return end + 1, Event{}, false
	}
	return end + 1, Event{Type: EventPointer, Col: x - 1, Row: y - 1}, true
}

// parseSGRParams extracts btn, x, y from "btn;x;y".
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	field, val, digits := 0, 0, 0
	for _, b := range data {
		switch {
		case b == ';':
			if digits == 0 || field == 2 {
				return 0, 0, 0, false
			}
			if field == 0 {
				btn = val
			} else {
				x = val
			}
			field++
			val, digits = 0, 0
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			digits++
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if field != 2 || digits == 0 || x < 1 || val < 1 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

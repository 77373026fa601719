package object

// Text is a line of overlay text.
// Coordinates are 1-based canvas positions.
type Text struct {
	X     int
	Y     int
	Value string
	Style string // ANSI attributes, reset after the text
}

// Centered returns text horizontally centered on column centerX.
func Centered(centerX, y int, value, style string) Text {
	return Text{X: centerX - displayWidth(value)/2, Y: y, Value: value, Style: style}
}

// Draw writes the text at its position and marks the covered cells so the
// canvas repaints them on the next frame.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	x := max(t.X, 1)
	y := max(t.Y, 1)

	if t.Style != "" {
		ctx.Writer.MoveCursor(x, y)
		ctx.Writer.WriteString(t.Style)
		ctx.Writer.WriteString(t.Value)
		ctx.Writer.WriteString("\033[0m")
	} else {
		ctx.Writer.WriteAt(x, y, t.Value)
	}
	ctx.Canvas.MarkTextDirty(x, y, displayWidth(t.Value))
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// displayWidth counts runes, skipping OSC 8 hyperlink wrappers and SGR sequences.
func displayWidth(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] == 0x1b {
			i = skipEscape(s, i)
			continue
		}
		// Count UTF-8 lead bytes only
		if s[i]&0xc0 != 0x80 {
			n++
		}
		i++
	}
	return n
}

func skipEscape(s string, i int) int {
	if i+1 >= len(s) {
		return len(s)
	}
	switch s[i+1] {
	case '[':
		for j := i + 2; j < len(s); j++ {
			if s[j] >= 0x40 && s[j] <= 0x7e {
				return j + 1
			}
		}
	case ']':
		for j := i + 2; j < len(s); j++ {
			if s[j] == 0x07 {
				return j + 1
			}
			if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
	}
	return len(s)
}

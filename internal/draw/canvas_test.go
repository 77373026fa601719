package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectScales(t *testing.T) {
	// 10 columns × 5 rows = 10×10 pixels over a 100×100 logical field
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetInk(InkCookie)
	c.FillRect(20, 40, 40, 60)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := InkNone
			if x >= 2 && x < 4 && y >= 4 && y < 6 {
				want = InkCookie
			}
			if got := c.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillEllipseSetsCenter(t *testing.T) {
	c := NewScaledCanvas(20, 10, 100, 100)
	c.SetInk(InkHazard)
	c.FillEllipse(Point{X: 50, Y: 50}, 0, 0)
	if c.Pixel(10, 10) != InkHazard {
		t.Fatal("zero-radius ellipse should set the center pixel")
	}

	c.Clear()
	c.FillEllipse(Point{X: 50, Y: 50}, 10, 10)
	if c.Pixel(10, 10) != InkHazard || c.Pixel(9, 9) != InkHazard {
		t.Fatal("ellipse interior not filled")
	}
	if c.Pixel(0, 0) != InkNone || c.Pixel(19, 19) != InkNone {
		t.Fatal("ellipse leaked outside its radius")
	}
}

func TestDrawingOutsideIsClipped(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(-50, -50, 5, 5)
	c.FillEllipse(Point{X: 120, Y: -10}, 8, 8)
	if c.Pixel(0, 0) == InkNone {
		t.Fatal("visible part of rect not drawn")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetInk(InkCookie)
	c.FillRect(0, 0, 1, 1) // top half of cell (1,1)

	var out bytes.Buffer
	c.Render(&out)
	first := out.String()
	if !strings.Contains(first, string(BlockUpperHalf)) {
		t.Fatalf("first render missing half block: %q", first)
	}

	out.Reset()
	c.Render(&out)
	if out.Len() != 0 {
		t.Fatalf("unchanged frame rendered %q", out.String())
	}

	c.Clear()
	out.Reset()
	c.Render(&out)
	if got := out.String(); got != "\033[1;1H " {
		t.Fatalf("cleared cell rendered as %q", got)
	}

	c.MarkTextDirty(3, 2, 1)
	out.Reset()
	c.Render(&out)
	if got := out.String(); got != "\033[2;3H " {
		t.Fatalf("dirty cell rendered as %q", got)
	}
}

func TestRenderColorPairs(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetInk(InkHazard)
	c.SetFloat(0, 0)
	c.SetInk(InkMagnet)
	c.SetFloat(0, 1)

	var out bytes.Buffer
	c.Render(&out)
	want := "\033[1;1H\033[48;5;33m\033[38;5;196m▀\033[0m"
	if out.String() != want {
		t.Fatalf("render = %q, want %q", out.String(), want)
	}
}

func TestRenderUsesOffset(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(5, 3)
	c.FillRect(1, 0, 2, 2)

	var out bytes.Buffer
	c.Render(&out)
	if !strings.HasPrefix(out.String(), "\033[4;6H") {
		t.Fatalf("render = %q, want offset cursor moves", out.String())
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(100, 50, 100, 100)
	if col, row := c.LogicalToTerminal(0, 0); col != 1 || row != 1 {
		t.Fatalf("origin = (%d,%d)", col, row)
	}
	if col, row := c.LogicalToTerminal(50, 50); col != 51 || row != 26 {
		t.Fatalf("center = (%d,%d)", col, row)
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[2;3Hhi" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestInkRGB(t *testing.T) {
	tests := []struct {
		ink     Ink
		r, g, b uint8
	}{
		{InkWhite, 255, 255, 255},  // 15
		{InkHazard, 255, 0, 0},     // 196
		{InkPlayer, 0, 255, 255},   // 51
		{InkCookie, 215, 175, 95},  // 179
		{InkGround, 88, 88, 88},    // 240
		{InkNone, 0, 0, 0},
	}
	for _, tt := range tests {
		r, g, b := tt.ink.RGB()
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("ink %d: got (%d,%d,%d), want (%d,%d,%d)", tt.ink, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}

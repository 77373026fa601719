package loop

import (
	"io"

	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/input"
	"github.com/tomz197/cookierun/internal/loop/config"
	"github.com/tomz197/cookierun/internal/object"
)

// screenKey identifies which screen is shown; a change triggers a full clear.
type screenKey struct {
	phase    engine.Phase
	records  bool
	inactive bool
	shutdown bool
}

// Terminal is an ANSI terminal UI rendering the field with half-block
// characters. It reads raw input bytes from r and writes to w.
type Terminal struct {
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	reported     [2]int // Size from resize events, zero until the first one
	title        string

	effects  *object.Effects
	lastKey  screenKey
	hasDrawn bool
}

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Subtitle     string // Shown under the title art
}

// NewTerminal creates a terminal UI. Call Setup before the first frame.
func NewTerminal(r io.Reader, w io.Writer, opts TerminalOptions) *Terminal {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Terminal{
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		title:        opts.Subtitle,
		effects:      object.NewEffects(nil, config.MaxParticles),
	}
}

// Setup switches to the alternate screen, hides the cursor and enables
// mouse motion reporting.
func (t *Terminal) Setup() {
	draw.EnterAltScreen(t.writer)
	draw.HideCursor(t.writer)
	draw.EnableMouseMotion(t.writer)
	draw.ClearScreen(t.writer)
}

// Close restores the terminal and releases pooled effects.
func (t *Terminal) Close() {
	t.effects.Reset()
	draw.DisableMouseMotion(t.writer)
	draw.ShowCursor(t.writer)
	draw.ExitAltScreen(t.writer)
}

// Events returns the parsed input events.
func (t *Terminal) Events() <-chan input.Event {
	return t.inputStream.Events()
}

// Stream exposes the input stream so hosts can inject resize events.
func (t *Terminal) Stream() *input.Stream {
	return t.inputStream
}

// Resize records a size reported by the host. It takes precedence over the
// size function from then on.
func (t *Terminal) Resize(width, height int) {
	t.reported = [2]int{width, height}
}

// Pointer maps a 0-based terminal column onto the field.
func (t *Terminal) Pointer(col int) (px, width float64) {
	fieldCol := col - t.canvas.OffsetCol()
	return float64(fieldCol) + 0.5, float64(t.canvas.TerminalWidth())
}

// Draw renders one frame.
func (t *Terminal) Draw(f Frame) error {
	t.updateScreen()

	key := screenKey{
		phase:    f.Snapshot.Phase,
		records:  f.View.ShowRecords,
		inactive: f.View.Inactive,
		shutdown: f.View.Shutdown,
	}
	// On screen transitions do a full terminal clear so UI text from the
	// previous screen doesn't persist.
	if !t.hasDrawn || key != t.lastKey {
		t.chunkWriter.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
		t.lastKey = key
		t.hasDrawn = true
	}

	t.effects.Capture(f.Captured)
	t.effects.Update(f.Delta, f.Snapshot.Paused())

	t.canvas.Clear()
	ctx := object.DrawContext{
		Canvas:  t.canvas,
		Writer:  t.chunkWriter,
		Elapsed: f.Snapshot.Elapsed,
	}

	if f.Snapshot.Started() {
		if err := t.drawField(ctx, f.Snapshot, f.Reach); err != nil {
			return err
		}
	} else {
		if err := (object.Ground{}).Draw(ctx); err != nil {
			return err
		}
	}
	if err := t.effects.Draw(ctx); err != nil {
		return err
	}

	t.canvas.Render(t.chunkWriter)
	t.canvas.RenderBorder(t.chunkWriter)

	t.drawUI(ctx, f)

	return t.chunkWriter.Flush()
}

// drawField draws the ground, falling objects and the catcher.
func (t *Terminal) drawField(ctx object.DrawContext, snap engine.Snapshot, reach float64) error {
	if err := (object.Ground{}).Draw(ctx); err != nil {
		return err
	}
	for _, fo := range snap.Objects {
		if err := object.ForFalling(fo).Draw(ctx); err != nil {
			return err
		}
	}
	catcher := object.Catcher{
		X:          snap.Player.X,
		Reach:      reach,
		Magnet:     snap.Player.HasMagnet,
		MagnetLeft: snap.Magnet.Seconds(),
	}
	return catcher.Draw(ctx)
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (t *Terminal) updateScreen() {
	termWidth, termHeight := t.reported[0], t.reported[1]
	if termWidth == 0 || termHeight == 0 {
		var err error
		termWidth, termHeight, err = draw.TerminalSizeRawWith(t.termSizeFunc)
		if err != nil {
			return
		}
	}
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)

	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.chunkWriter.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
	}

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// ClampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

package tcellui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/loop"
	"github.com/tomz197/cookierun/internal/object"
)

var (
	styleText  = tcell.StyleDefault
	styleBold  = tcell.StyleDefault.Bold(true)
	styleDim   = tcell.StyleDefault.Dim(true)
	styleGold  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleHeart = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCyan  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// Draw renders one frame.
func (s *Screen) Draw(f loop.Frame) error {
	w, h := s.screen.Size()
	if w != s.width || h != s.height {
		s.screen.Clear()
		s.width, s.height = w, h
	}
	rw, rh, offCol, offRow := loop.ClampTermSize(w, h)
	s.canvas.Resize(rw, rh)
	s.canvas.SetOffset(offCol, offRow)

	key := fmt.Sprint(f.Snapshot.Phase, f.View.ShowRecords, f.View.Inactive, f.View.Shutdown)
	if key != s.lastKey {
		s.screen.Clear()
		s.lastKey = key
	}

	s.effects.Capture(f.Captured)
	s.effects.Update(f.Delta, f.Snapshot.Paused())

	s.canvas.Clear()
	ctx := object.DrawContext{Canvas: s.canvas, Elapsed: f.Snapshot.Elapsed}
	if err := (object.Ground{}).Draw(ctx); err != nil {
		return err
	}
	if f.Snapshot.Started() {
		for _, fo := range f.Snapshot.Objects {
			if err := object.ForFalling(fo).Draw(ctx); err != nil {
				return err
			}
		}
		catcher := object.Catcher{
			X:          f.Snapshot.Player.X,
			Reach:      f.Reach,
			Magnet:     f.Snapshot.Player.HasMagnet,
			MagnetLeft: f.Snapshot.Magnet.Seconds(),
		}
		if err := catcher.Draw(ctx); err != nil {
			return err
		}
	}
	if err := s.effects.Draw(ctx); err != nil {
		return err
	}

	s.blit()
	s.drawOverlay(f)
	s.screen.Show()
	return nil
}

// blit copies canvas pixels to screen cells, two pixels per cell.
func (s *Screen) blit() {
	offCol, offRow := s.canvas.OffsetCol(), s.canvas.OffsetRow()
	for row := 0; row < s.canvas.TerminalHeight(); row++ {
		for col := 0; col < s.canvas.TerminalWidth(); col++ {
			top := s.canvas.Pixel(col, row*2)
			bottom := s.canvas.Pixel(col, row*2+1)
			r, style := cell(top, bottom)
			s.screen.SetContent(offCol+col, offRow+row, r, nil, style)
		}
	}
}

// cell picks the half-block rune and colors for a pixel pair.
func cell(top, bottom draw.Ink) (rune, tcell.Style) {
	style := tcell.StyleDefault
	switch {
	case top == draw.InkNone && bottom == draw.InkNone:
		return ' ', style
	case top == bottom:
		return draw.BlockFull, style.Foreground(color(top))
	case bottom == draw.InkNone:
		return draw.BlockUpperHalf, style.Foreground(color(top))
	case top == draw.InkNone:
		return draw.BlockLowerHalf, style.Foreground(color(bottom))
	default:
		return draw.BlockUpperHalf, style.Foreground(color(top)).Background(color(bottom))
	}
}

func color(ink draw.Ink) tcell.Color {
	return tcell.PaletteColor(int(ink.Palette()))
}

// text writes s at a position relative to the field.
func (s *Screen) text(col, row int, str string, style tcell.Style) {
	x := s.canvas.OffsetCol() + max(col, 0)
	y := s.canvas.OffsetRow() + row
	for _, r := range str {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (s *Screen) centered(row int, str string, style tcell.Style) {
	s.text(s.canvas.TerminalWidth()/2-len([]rune(str))/2, row, str, style)
}

func (s *Screen) drawOverlay(f loop.Frame) {
	mid := s.canvas.TerminalHeight() / 2
	snap := f.Snapshot

	switch {
	case f.View.Shutdown:
		s.centered(mid-1, "SERVER SHUTTING DOWN", styleBold)
		s.centered(mid+1, fmt.Sprintf("Closing in %d seconds...", int(f.View.ShutdownLeft.Seconds())+1), styleText)
		return
	case f.View.Inactive:
		s.centered(mid-1, "INACTIVITY WARNING", styleBold)
		s.centered(mid+1, fmt.Sprintf("Disconnecting in %d seconds. Press any key.", int(f.View.InactiveLeft.Seconds())), styleText)
		return
	}

	switch snap.Phase {
	case engine.PhaseIdle:
		if f.View.ShowRecords {
			s.centered(mid-2, "R E C O R D S", styleBold)
			s.centered(mid, fmt.Sprintf("Best score: %d", snap.Best), styleGold)
			s.centered(mid+2, "Press R or Esc to go back", styleDim)
			return
		}
		s.centered(mid-4, "C O O K I E   R U N", styleGold)
		s.centered(mid-2, "Catch cookies, dodge rocks. Mouse or A/D to move.", styleText)
		s.centered(mid-1, "P pause   M menu   R records   Q quit", styleDim)
		if snap.Best > 0 {
			s.centered(mid+1, fmt.Sprintf("Best: %d", snap.Best), styleGold)
		}
		if time.Now().UnixMilli()/600%2 == 0 {
			s.centered(mid+3, ">>  Press SPACE to Start  <<", styleBold)
		}
	default:
		s.drawHUD(snap)
		switch snap.Phase {
		case engine.PhasePaused:
			s.centered(mid, "P A U S E D", styleBold)
		case engine.PhaseGameOver:
			s.centered(mid-2, "G A M E   O V E R", styleHeart.Bold(true))
			s.centered(mid, fmt.Sprintf("Final score: %d", snap.Score), styleBold)
			if snap.NewRecord {
				s.centered(mid+1, "*** NEW RECORD! ***", styleGold)
			}
			s.centered(mid+3, "SPACE to play again, M for menu", styleDim)
		}
	}
}

func (s *Screen) drawHUD(snap engine.Snapshot) {
	s.text(1, 0, fmt.Sprintf("Score: %-6d Best: %-6d", snap.Score, snap.Best), styleBold)
	hearts := loop.Hearts(snap.Lives, snap.MaxLives)
	s.text(s.canvas.TerminalWidth()-snap.MaxLives-1, 0, hearts, styleHeart)
	if snap.Player.HasMagnet {
		s.text(s.canvas.TerminalWidth()-12, 1, fmt.Sprintf("MAGNET %3.0fs", snap.Magnet.Seconds()), styleCyan)
	}
}

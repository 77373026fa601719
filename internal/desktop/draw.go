package desktop

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
	"github.com/tomz197/cookierun/internal/loop"
	"github.com/tomz197/cookierun/internal/object"
)

const (
	scale      = ScreenWidth / 100.0 // Pixels per field percent
	charWidth  = 6                   // Debug font cell size
	lineHeight = 16
)

var colBackground = color.RGBA{0x1d, 0x1b, 0x2a, 0xff}

// inkColor converts a canvas ink to an image color.
func inkColor(ink draw.Ink) color.RGBA {
	r, g, b := ink.RGB()
	return color.RGBA{r, g, b, 0xff}
}

func px(v float64) float32 {
	return float32(v * scale)
}

// Draw: Rendering (VSync)
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	snap := g.eng.Snapshot()

	drawGround(screen)
	if snap.Started() {
		for _, fo := range snap.Objects {
			drawObject(screen, fo)
		}
		drawCatcher(screen, snap.Player, g.eng.Config().Reach, snap.Magnet)
	}
	g.effects.Each(func(obj object.Object) {
		if p, ok := obj.(*object.Particle); ok {
			vector.DrawFilledRect(screen, px(p.X)-1, px(p.Y)-1, 3, 3, inkColor(p.Ink), false)
		}
	})

	g.drawOverlay(screen, snap)
}

func drawGround(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, px(95), ScreenWidth, px(5), inkColor(draw.InkGround), false)
}

func drawObject(screen *ebiten.Image, fo engine.FallingObject) {
	x, y := px(fo.X), px(fo.Y)
	switch fo.Kind {
	case engine.KindCollectible:
		vector.DrawFilledCircle(screen, x, y, px(2.5), inkColor(draw.InkCookie), true)
		// Chips at stable offsets per object
		for i := 0; i < 3; i++ {
			a := float64(fo.ID%7) + float64(i)*2.1
			cx := x + float32(math.Cos(a))*px(1.2)
			cy := y + float32(math.Sin(a))*px(1.2)
			vector.DrawFilledCircle(screen, cx, cy, px(0.45), inkColor(draw.InkChip), true)
		}
	case engine.KindHazard:
		r := px(3)
		c := inkColor(draw.InkHazard)
		vector.StrokeLine(screen, x, y-r, x+r, y, 3, c, true)
		vector.StrokeLine(screen, x+r, y, x, y+r, 3, c, true)
		vector.StrokeLine(screen, x, y+r, x-r, y, 3, c, true)
		vector.StrokeLine(screen, x-r, y, x, y-r, 3, c, true)
		vector.DrawFilledCircle(screen, x, y, r/2, inkColor(draw.InkHazardCore), true)
	case engine.KindMagnet:
		c := inkColor(draw.InkMagnet)
		vector.StrokeCircle(screen, x, y, px(2.2), 4, c, true)
		vector.DrawFilledRect(screen, x-px(2.2)-2, y, px(4.4)+4, px(2.4), colBackground, false)
		vector.DrawFilledRect(screen, x-px(2.2)-2, y, 4, px(1.6), c, false)
		vector.DrawFilledRect(screen, x+px(2.2)-2, y, 4, px(1.6), c, false)
	case engine.KindExtraLife:
		c := inkColor(draw.InkLife)
		r := px(1.3)
		vector.DrawFilledCircle(screen, x-r, y-r/2, r, c, true)
		vector.DrawFilledCircle(screen, x+r, y-r/2, r, c, true)
		for i := float32(0); i < 2*r; i++ {
			w := 2*r - i
			vector.DrawFilledRect(screen, x-w, y-r/2+i, 2*w, 1, c, false)
		}
	}
}

func drawCatcher(screen *ebiten.Image, p engine.Player, reach float64, magnet time.Duration) {
	left := px(p.X - reach)
	width := px(2 * reach)
	if p.HasMagnet && (magnet > 2*time.Second || object.ShouldRenderBlink(magnet.Seconds(), 4)) {
		vector.DrawFilledRect(screen, left-4, px(86), width+8, px(1), inkColor(draw.InkPlayerGlow), false)
	}
	vector.DrawFilledRect(screen, left, px(88), width, px(5), inkColor(draw.InkPlayer), false)
	vector.StrokeRect(screen, left, px(87), width, px(6), 2, inkColor(draw.InkWhite), false)
}

// text prints str centered on the screen at row y.
func text(screen *ebiten.Image, str string, y int) {
	width := 0
	for _, line := range strings.Split(str, "\n") {
		width = max(width, len([]rune(line)))
	}
	ebitenutil.DebugPrintAt(screen, str, ScreenWidth/2-width*charWidth/2, y)
}

func (g *Game) drawOverlay(screen *ebiten.Image, snap engine.Snapshot) {
	mid := ScreenHeight / 2

	if snap.Phase == engine.PhaseIdle {
		if g.view.ShowRecords {
			text(screen, "R E C O R D S", mid-2*lineHeight)
			text(screen, fmt.Sprintf("Best score: %d", snap.Best), mid)
			text(screen, "R or Esc to go back", mid+2*lineHeight)
			return
		}
		text(screen, "C O O K I E   R U N", mid-4*lineHeight)
		text(screen, "Catch cookies, dodge rocks.\nMove with the mouse, a touch or A/D.", mid-2*lineHeight)
		if snap.Best > 0 {
			text(screen, fmt.Sprintf("Best: %d", snap.Best), mid+lineHeight)
		}
		if time.Now().UnixMilli()/600%2 == 0 {
			text(screen, ">>  Press SPACE or tap to start  <<", mid+3*lineHeight)
		}
		text(screen, "P pause   M menu   R records   Q quit", mid+5*lineHeight)
		return
	}

	// HUD
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d\nBest:  %d", snap.Score, snap.Best), 8, 4)
	lives := fmt.Sprintf("Lives %d/%d", snap.Lives, snap.MaxLives)
	ebitenutil.DebugPrintAt(screen, lives, ScreenWidth-len(lives)*charWidth-8, 4)
	drawHearts(screen, snap.Lives, snap.MaxLives)
	if snap.Player.HasMagnet {
		m := fmt.Sprintf("MAGNET %.0fs", snap.Magnet.Seconds())
		ebitenutil.DebugPrintAt(screen, m, ScreenWidth-len(m)*charWidth-8, 4+2*lineHeight)
	}

	switch snap.Phase {
	case engine.PhasePaused:
		text(screen, "P A U S E D\nP to resume, M for menu", mid-lineHeight)
	case engine.PhaseGameOver:
		text(screen, "G A M E   O V E R", mid-3*lineHeight)
		text(screen, fmt.Sprintf("Final score: %d", snap.Score), mid-lineHeight)
		if snap.NewRecord {
			text(screen, "*** NEW RECORD! ***", mid)
		}
		text(screen, "SPACE or tap to play again, M for menu", mid+2*lineHeight)
	}
}

// drawHearts draws a filled heart per life and a hollow one up to the cap.
func drawHearts(screen *ebiten.Image, lives, maxLives int) {
	filled := []rune(loop.Hearts(lives, maxLives))
	for i, r := range filled {
		x := float32(ScreenWidth - 10 - (maxLives-i)*14)
		y := float32(4 + lineHeight + 6)
		if r == '♥' {
			vector.DrawFilledCircle(screen, x, y, 5, inkColor(draw.InkLife), true)
		} else {
			vector.StrokeCircle(screen, x, y, 5, 1.5, inkColor(draw.InkLife), true)
		}
	}
}

package object

import (
	"github.com/tomz197/cookierun/internal/draw"
)

const (
	catcherTop    = 88.0
	catcherBottom = 93.0
	groundTop     = 95.0
	groundBottom  = 100.0
)

// Catcher is the player's paddle. Its width matches the capture reach so
// what looks caught is caught.
type Catcher struct {
	X          float64
	Reach      float64
	Magnet     bool
	MagnetLeft float64 // Seconds of magnet remaining
}

func (c Catcher) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

func (c Catcher) Draw(ctx DrawContext) error {
	cv := ctx.Canvas

	// Blink during the last two seconds of the magnet
	if c.Magnet && (c.MagnetLeft > 2 || ShouldRenderBlink(c.MagnetLeft, 4)) {
		cv.SetInk(draw.InkPlayerGlow)
		cv.FillRect(c.X-c.Reach-1, catcherTop-2, c.X+c.Reach+1, catcherTop-1)
	}

	cv.SetInk(draw.InkPlayer)
	cv.FillRect(c.X-c.Reach, catcherTop, c.X+c.Reach, catcherBottom)

	// Basket rim
	cv.SetInk(draw.InkWhite)
	cv.FillRect(c.X-c.Reach, catcherTop-1, c.X-c.Reach+1, catcherTop)
	cv.FillRect(c.X+c.Reach-1, catcherTop-1, c.X+c.Reach, catcherTop)
	return nil
}

// Ground is the strip below the catching band.
type Ground struct{}

func (Ground) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

func (Ground) Draw(ctx DrawContext) error {
	cv := ctx.Canvas
	cv.SetInk(draw.InkGround)
	cv.FillRect(0, groundTop, cv.LogicalWidth(), groundTop+1)
	for x := 0.0; x < cv.LogicalWidth(); x += 6 {
		cv.DrawLine(draw.Point{X: x, Y: groundBottom - 1}, draw.Point{X: x + 3, Y: groundTop + 1})
	}
	return nil
}

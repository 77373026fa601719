package object

import (
	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
)

const (
	cookieRadius = 3.0
	cookieChips  = 3
)

// Cookie draws a collectible as a round biscuit with chocolate chips.
type Cookie struct {
	engine.FallingObject
}

func (c Cookie) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

func (c Cookie) Draw(ctx DrawContext) error {
	cv := ctx.Canvas
	cv.SetInk(draw.InkCookie)
	cv.FillEllipse(draw.Point{X: c.X, Y: c.Y}, cookieRadius, cookieRadius)

	cv.SetInk(draw.InkChip)
	for i := uint64(0); i < cookieChips; i++ {
		dx := (noise(c.ID, i*2) - 0.5) * cookieRadius * 1.2
		dy := (noise(c.ID, i*2+1) - 0.5) * cookieRadius * 1.2
		cv.SetFloat(c.X+dx, c.Y+dy)
	}
	return nil
}

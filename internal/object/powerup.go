package object

import (
	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
)

// Magnet draws the magnet power-up as a horseshoe with white tips.
type Magnet struct {
	engine.FallingObject
}

func (m Magnet) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

func (m Magnet) Draw(ctx DrawContext) error {
	cv := ctx.Canvas
	x, y := m.X, m.Y

	cv.SetInk(draw.InkMagnet)
	cv.FillRect(x-3, y+1, x+3, y+3) // Bend
	cv.FillRect(x-3, y-3, x-1, y+1) // Left arm
	cv.FillRect(x+1, y-3, x+3, y+1) // Right arm

	cv.SetInk(draw.InkWhite)
	cv.FillRect(x-3, y-4, x-1, y-3)
	cv.FillRect(x+1, y-4, x+3, y-3)
	return nil
}

// Heart draws the extra-life power-up. It pulses while falling.
type Heart struct {
	engine.FallingObject
}

func (h Heart) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

func (h Heart) Draw(ctx DrawContext) error {
	cv := ctx.Canvas
	x, y := h.X, h.Y

	size := 1.0
	if ctx.Elapsed.Milliseconds()/300%2 == 0 {
		size = 1.2
	}

	cv.SetInk(draw.InkLife)
	cv.FillEllipse(draw.Point{X: x - 1.5*size, Y: y - 1*size}, 1.7*size, 1.7*size)
	cv.FillEllipse(draw.Point{X: x + 1.5*size, Y: y - 1*size}, 1.7*size, 1.7*size)

	points := cv.BorrowPoints(3)
	points[0] = draw.Point{X: x - 3.2*size, Y: y - 0.5*size}
	points[1] = draw.Point{X: x + 3.2*size, Y: y - 0.5*size}
	points[2] = draw.Point{X: x, Y: y + 3*size}
	cv.DrawPolygon(points, true)
	return nil
}

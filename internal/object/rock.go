package object

import (
	"math"

	"github.com/tomz197/cookierun/internal/draw"
	"github.com/tomz197/cookierun/internal/engine"
)

const (
	rockRadius   = 3.5
	rockMinVerts = 7
	rockSpin     = 0.08 // Radians per unit fallen
)

// Rock draws a hazard as an irregular spinning stone.
type Rock struct {
	engine.FallingObject
}

func (r Rock) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

func (r Rock) Draw(ctx DrawContext) error {
	numVerts := rockMinVerts + int(noise(r.ID, 0)*4)

	// Use reusable buffer from canvas to avoid per-frame allocations.
	points := ctx.Canvas.BorrowPoints(numVerts)

	angle := noise(r.ID, 1)*2*math.Pi + r.Y*rockSpin
	for i := range points {
		// Vary radius by ±30% for irregular shape
		dist := rockRadius * (0.7 + noise(r.ID, uint64(i)+2)*0.6)
		vertAngle := angle + float64(i)*2*math.Pi/float64(numVerts)
		points[i] = draw.Point{
			X: r.X + math.Cos(vertAngle)*dist,
			Y: r.Y + math.Sin(vertAngle)*dist,
		}
	}

	ctx.Canvas.SetInk(draw.InkHazardCore)
	ctx.Canvas.DrawPolygon(points, true)
	ctx.Canvas.SetInk(draw.InkHazard)
	ctx.Canvas.DrawPolygon(points, false)
	return nil
}

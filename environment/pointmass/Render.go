package pointmass

import (
	"fmt"

	"github.com/fogleman/gg"
)

const (
	ViewportW float64 = 400
	ViewportH float64 = 400

	// The viewport shows the square [viewMin, viewMax]² in world
	// coordinates, which covers the whole unit square plus a margin
	// for agents that wander outside it.
	viewMin float64 = -0.5
	viewMax float64 = 1.5

	scale float64 = ViewportW / (viewMax - viewMin)
)

// WorldToPixelCoord converts world coordinates to pixel coordinates in
// the rendering viewport
func WorldToPixelCoord(coords [2]float64) [2]float64 {
	x, y := coords[0], coords[1]

	pixelX := scale * (x - viewMin)
	pixelY := ViewportH - scale*(y-viewMin)

	return [2]float64{pixelX, pixelY}
}

// Render draws the current state of the environment and saves it as
// the PNG file ./PM<j>.png. The target is drawn as a disc of radius
// Precision, so an agent touching the disc's interior has reached the
// target.
func (p *PointMass) Render(j int) {
	dc := gg.NewContext(int(ViewportW), int(ViewportH))
	dc.SetColor(p.backgroundShade)
	dc.Clear()

	// Target catchment disc
	target := WorldToPixelCoord([2]float64{
		p.sim.Target().X(),
		p.sim.Target().Y(),
	})
	dc.DrawCircle(target[0], target[1], Precision*scale)
	dc.SetColor(p.targetColour)
	dc.Fill()

	// Trail from the previous position to the current one
	previous := WorldToPixelCoord([2]float64{
		p.sim.Previous().X(),
		p.sim.Previous().Y(),
	})
	current := WorldToPixelCoord([2]float64{
		p.sim.Current().X(),
		p.sim.Current().Y(),
	})
	dc.ClearPath()
	dc.SetColor(p.trailColour)
	dc.SetLineWidth(2.0)
	dc.DrawLine(previous[0], previous[1], current[0], current[1])
	dc.Stroke()

	// Agent
	dc.DrawCircle(current[0], current[1], 4.0)
	dc.SetColor(p.agentColour)
	dc.Fill()

	dc.SavePNG(fmt.Sprintf("./PM%v.png", j))
}

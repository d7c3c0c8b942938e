package draw

import (
	"math"

	"github.com/tomz197/graze/internal/object"
)

// circleBounds converts a logical circle to pixel space and returns its
// center, radii and bounding box.
func (c *Canvas) circleBounds(cx, cy, r float64) (pcx, pcy, rx, ry float64, x0, y0, x1, y1 int) {
	pcx, pcy = cx*c.scaleX, cy*c.scaleY
	rx, ry = r*c.scaleX, r*c.scaleY
	x0 = int(math.Floor(pcx - rx - 1))
	x1 = int(math.Ceil(pcx + rx + 1))
	y0 = int(math.Floor(pcy - ry - 1))
	y1 = int(math.Ceil(pcy + ry + 1))

	// Clip to the canvas.
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.termWidth-1), min(y1, c.subPixelHeight-1)
	return
}

// FillCircle draws a solid disc. The pixel under the center is always set,
// so circles smaller than a pixel stay visible.
func (c *Canvas) FillCircle(cx, cy, r float64, color object.Color) {
	c.SetFloat(cx, cy, color)
	pcx, pcy, rx, ry, x0, y0, x1, y1 := c.circleBounds(cx, cy, r)
	if rx <= 0 || ry <= 0 {
		return
	}

	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - pcx) / rx
			if dx*dx+dy*dy <= 1 {
				c.pixels[y*c.termWidth+x] = color
			}
		}
	}
}

// DrawCircle draws a one pixel wide ring.
func (c *Canvas) DrawCircle(cx, cy, r float64, color object.Color) {
	pcx, pcy, rx, ry, x0, y0, x1, y1 := c.circleBounds(cx, cy, r)
	if rx <= 0 || ry <= 0 {
		return
	}
	thickness := 0.5 / min(rx, ry)

	for y := y0; y <= y1; y++ {
		dy := (float64(y) + 0.5 - pcy) / ry
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - pcx) / rx
			if math.Abs(math.Sqrt(dx*dx+dy*dy)-1) <= thickness {
				c.pixels[y*c.termWidth+x] = color
			}
		}
	}
}

// DrawCross draws a small plus sign, size logical units from center to tip.
func (c *Canvas) DrawCross(cx, cy, size float64, color object.Color) {
	c.DrawLine(Point{cx - size, cy}, Point{cx + size, cy}, color)
	c.DrawLine(Point{cx, cy - size}, Point{cx, cy + size}, color)
}

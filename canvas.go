package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Surface is the render surface handle provided by the host. Coordinates are
// cells (or pixels) with the origin at the top left.
type Surface interface {
	Size() (width, height int)
	Clear()
	SetCell(x, y int, r rune, c colorful.Color)
	Show()
	Release()
}

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Empty returns whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Viewport returns the rectangle as a client viewport.
func (r Rect) Viewport() Viewport {
	return Viewport{Left: float64(r.X), Top: float64(r.Y), Width: float64(r.W), Height: float64(r.H)}
}

// Canvas draws into a clipped region of a Surface.
type Canvas struct {
	s Surface
	r Rect
}

// NewCanvas returns a canvas over region r of s.
func NewCanvas(s Surface, r Rect) Canvas {
	return Canvas{s: s, r: r}
}

// Bounds returns the canvas region.
func (c Canvas) Bounds() Rect {
	return c.r
}

// Sub returns a canvas over r, given relative to this canvas.
func (c Canvas) Sub(r Rect) Canvas {
	return Canvas{s: c.s, r: Rect{X: c.r.X + r.X, Y: c.r.Y + r.Y, W: r.W, H: r.H}}
}

// Plot sets the cell at canvas-relative (x, y); cells outside the region are dropped.
func (c Canvas) Plot(x, y int, ch rune, col colorful.Color) {
	if x < 0 || y < 0 || x >= c.r.W || y >= c.r.H {
		return
	}
	c.s.SetCell(c.r.X+x, c.r.Y+y, ch, col)
}

// Line draws a Bresenham line between two canvas-relative cells.
func (c Canvas) Line(x0, y0, x1, y1 int, ch rune, col colorful.Color) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Plot(x0, y0, ch, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Border draws the outline of the canvas region.
func (c Canvas) Border(col colorful.Color) {
	w, h := c.r.W-1, c.r.H-1
	if w < 1 || h < 1 {
		return
	}
	c.Line(0, 0, w, 0, '─', col)
	c.Line(0, h, w, h, '─', col)
	c.Line(0, 0, 0, h, '│', col)
	c.Line(w, 0, w, h, '│', col)
	c.Plot(0, 0, '┌', col)
	c.Plot(w, 0, '┐', col)
	c.Plot(0, h, '└', col)
	c.Plot(w, h, '┘', col)
}

// Text writes s starting at canvas-relative (x, y).
func (c Canvas) Text(x, y int, s string, col colorful.Color) {
	for _, r := range s {
		c.Plot(x, y, r, col)
		x++
	}
}

// Cell maps normalized device coordinates to a canvas cell. It reports false
// for points outside the depth range.
func (c Canvas) Cell(ndc mgl64.Vec3) (x, y int, ok bool) {
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, false
	}
	x = int(math.Floor((ndc.X() + 1) / 2 * float64(c.r.W)))
	y = int(math.Floor((1 - ndc.Y()) / 2 * float64(c.r.H)))
	return x, y, true
}

// Segment projects and draws the world segment a-b.
func (c Canvas) Segment(cam *Camera, a, b mgl64.Vec3, ch rune, col colorful.Color) {
	x0, y0, ok0 := c.Cell(cam.Project(a))
	x1, y1, ok1 := c.Cell(cam.Project(b))
	if !ok0 || !ok1 || c.far(x0, y0) || c.far(x1, y1) {
		return
	}
	c.Line(x0, y0, x1, y1, ch, col)
}

// far reports cells so far outside the region that rasterizing to them is wasted work.
func (c Canvas) far(x, y int) bool {
	return abs(x) > 4*(c.r.W+1) || abs(y) > 4*(c.r.H+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

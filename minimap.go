package orrery

import (
	"github.com/lucasb-eyer/go-colorful"
)

// MiniMap is the 2D top-down view of the marker's planar position. The square
// [-HalfExtent, HalfExtent]² maps to the panel minus Pad cells on each side,
// with +Z pointing up.
type MiniMap struct {
	HalfExtent float64
	Pad        int
	x, z       float64
}

// Set records the marker's planar position.
func (m *MiniMap) Set(x, z float64) {
	m.x, m.z = x, z
}

// Planar returns the last recorded planar position.
func (m *MiniMap) Planar() (x, z float64) {
	return m.x, m.z
}

// Pixel returns the panel-relative cell of the indicator in a w×h panel.
func (m *MiniMap) Pixel(w, h int) (cx, cy int) {
	span := 2 * m.HalfExtent
	nx := (m.x + m.HalfExtent) / span
	nz := (m.z + m.HalfExtent) / span
	iw, ih := float64(w-2*m.Pad-1), float64(h-2*m.Pad-1)
	cx = m.Pad + int(nx*iw+0.5)
	cy = m.Pad + int((1-nz)*ih+0.5)
	return
}

// Draw renders the region outline and the indicator dot.
func (m *MiniMap) Draw(c Canvas, frame, dot colorful.Color) {
	r := c.Bounds()
	c.Sub(Rect{X: m.Pad, Y: m.Pad, W: r.W - 2*m.Pad, H: r.H - 2*m.Pad}).Border(frame)
	x, y := m.Pixel(r.W, r.H)
	c.Plot(x, y, '●', dot)
}

package orrery

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Arrow geometry, relative to the marker position (the arrow's center).
const (
	shaftRadius   = 0.04
	shaftLength   = 0.8
	headRadius    = 0.1
	headLength    = 0.25
	headOffset    = -0.525 // head center below the marker center
	pickTolerance = 0.02
)

// Marker is the draggable arrow. It stays at a fixed height and within the
// square |x|, |z| <= HalfExtent.
type Marker struct {
	Position   mgl64.Vec3
	HalfExtent float64
	Height     float64
	parts      []Box
}

// NewMarker returns a marker at the center of the square, at the given height.
func NewMarker(halfExtent, height float64) *Marker {
	sr, hr := shaftRadius+pickTolerance, headRadius+pickTolerance
	return &Marker{
		Position:   mgl64.Vec3{0, height, 0},
		HalfExtent: halfExtent,
		Height:     height,
		parts: []Box{
			{Min: mgl64.Vec3{-sr, -shaftLength / 2, -sr}, Max: mgl64.Vec3{sr, shaftLength / 2, sr}},
			{Min: mgl64.Vec3{-hr, headOffset - headLength/2, -hr}, Max: mgl64.Vec3{hr, headOffset + headLength/2, hr}},
		},
	}
}

// Clamp returns p bounded to the square and lifted to the marker height.
func (m *Marker) Clamp(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		clamp(p.X(), -m.HalfExtent, m.HalfExtent),
		m.Height,
		clamp(p.Z(), -m.HalfExtent, m.HalfExtent),
	}
}

// MoveTo places the marker at the clamped p and returns the new position.
func (m *Marker) MoveTo(p mgl64.Vec3) mgl64.Vec3 {
	m.Position = m.Clamp(p)
	return m.Position
}

// Hit returns whether r intersects the marker's shaft or head.
func (m *Marker) Hit(r Ray) bool {
	for _, b := range m.parts {
		if _, ok := r.IntersectBox(b.Translate(m.Position)); ok {
			return true
		}
	}
	return false
}

// Tip returns the world position of the arrow tip.
func (m *Marker) Tip() mgl64.Vec3 {
	return m.Position.Add(mgl64.Vec3{0, headOffset - headLength/2, 0})
}

// Tail returns the world position of the top of the shaft.
func (m *Marker) Tail() mgl64.Vec3 {
	return m.Position.Add(mgl64.Vec3{0, shaftLength / 2, 0})
}

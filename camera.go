package orrery

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ProjectionKind selects how a Camera projects the scene.
type ProjectionKind uint8

const (
	// Perspective is a pinhole camera with a vertical field of view.
	Perspective ProjectionKind = iota + 1
	// Orthographic keeps sizes constant with depth, ViewSize units tall.
	Orthographic
)

// Camera holds a view and a projection. Aspect is width/height of the viewport
// in the same units on both axes.
type Camera struct {
	Kind             ProjectionKind
	Position, Target mgl64.Vec3
	Up               mgl64.Vec3
	FovY             float64 // radians, Perspective only
	ViewSize         float64 // Orthographic only
	Near, Far        float64
	Aspect           float64
}

// NewPerspectiveCamera returns a perspective camera at pos looking at the origin.
func NewPerspectiveCamera(fovY, near, far float64, pos mgl64.Vec3) *Camera {
	return &Camera{Kind: Perspective, Position: pos, Up: mgl64.Vec3{0, 1, 0}, FovY: fovY, Near: near, Far: far, Aspect: 1}
}

// NewOrthographicCamera returns an orthographic camera at pos looking at the origin.
func NewOrthographicCamera(viewSize, near, far float64, pos mgl64.Vec3) *Camera {
	return &Camera{Kind: Orthographic, Position: pos, Up: mgl64.Vec3{0, 1, 0}, ViewSize: viewSize, Near: near, Far: far, Aspect: 1}
}

// SetViewport recomputes the aspect for a width×height viewport whose cells are
// cellAspect times taller than wide. Zero sizes are ignored and reported false.
func (c *Camera) SetViewport(width, height int, cellAspect float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if cellAspect <= 0 {
		cellAspect = 1
	}
	c.Aspect = float64(width) / (float64(height) * cellAspect)
	return true
}

// View returns the world to camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the camera to clip matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	if c.Kind == Orthographic {
		hw, hh := c.ViewSize*c.Aspect/2, c.ViewSize/2
		return mgl64.Ortho(-hw, hw, -hh, hh, c.Near, c.Far)
	}
	return mgl64.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// Project returns the normalized device coordinates of the world point p.
// The z coordinate is within [-1, 1] for points between the near and far planes.
func (c *Camera) Project(p mgl64.Vec3) mgl64.Vec3 {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() == 0 {
		return mgl64.Vec3{0, 0, 2}
	}
	return clip.Vec3().Mul(1 / clip.W())
}

// Ray returns the world ray through the normalized device coordinates ndc.
func (c *Camera) Ray(ndc mgl64.Vec2) Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	near := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 1, 1})
	n := near.Vec3().Mul(1 / near.W())
	f := far.Vec3().Mul(1 / far.W())
	dir := unit(f.Sub(n))
	if c.Kind == Orthographic {
		// Pointers outside the view still pick: start the ray well behind the
		// scene so anything along the view line lies ahead of it.
		n = n.Sub(dir.Mul(c.Far))
	}
	return Ray{Origin: n, Dir: dir}
}

// Viewport is the client rectangle the camera renders into, in pixels (or cells).
type Viewport struct {
	Left, Top, Width, Height float64
}

// NDC converts client coordinates to normalized device coordinates.
// It reports false for an empty viewport.
func (v Viewport) NDC(x, y float64) (mgl64.Vec2, bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{
		(x-v.Left)/v.Width*2 - 1,
		-(y-v.Top)/v.Height*2 + 1,
	}, true
}

// Contains returns whether the client point lies inside the viewport.
func (v Viewport) Contains(x, y float64) bool {
	return x >= v.Left && x < v.Left+v.Width && y >= v.Top && y < v.Top+v.Height
}

package orrery

import (
	"math"
)

// OrbitControls rotates a camera around its target on pointer drags, with
// damping, polar limits and optional dolly zoom.
type OrbitControls struct {
	Enabled       bool
	RotateSpeed   float64
	DampingFactor float64 // zero disables damping
	MinPolar      float64
	MaxPolar      float64
	EnableZoom    bool
	MinDistance   float64
	MaxDistance   float64

	cam        *Camera
	radius     float64
	polar      float64 // φ, from +Y
	azimuth    float64 // θ, about +Y
	dPolar     float64
	dAzimuth   float64
	lastX      float64
	lastY      float64
	rotating   bool
	zoomFactor float64
}

// NewOrbitControls returns enabled controls which start from the camera's current position.
func NewOrbitControls(cam *Camera) *OrbitControls {
	r, φ, θ := Cartesian2Spherical(cam.Position.Sub(cam.Target))
	return &OrbitControls{
		Enabled:     true,
		RotateSpeed: 1,
		MinPolar:    0,
		MaxPolar:    math.Pi,
		MinDistance: 0,
		MaxDistance: math.Inf(1),
		cam:         cam,
		radius:      r,
		polar:       φ,
		azimuth:     θ,
		zoomFactor:  1,
	}
}

// SetEnabled implements CameraControl.
func (c *OrbitControls) SetEnabled(on bool) {
	c.Enabled = on
	if !on {
		c.rotating = false
	}
}

// Begin starts a rotation gesture at client coordinates (x, y).
func (c *OrbitControls) Begin(x, y float64) {
	if !c.Enabled {
		return
	}
	c.rotating = true
	c.lastX, c.lastY = x, y
}

// Drag rotates by the pointer delta since the last call; a full viewport height
// is one full turn at RotateSpeed 1.
func (c *OrbitControls) Drag(x, y float64, vp Viewport) {
	if !c.Enabled || !c.rotating || vp.Height <= 0 {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.dAzimuth -= twoPi * dx / vp.Height * c.RotateSpeed
	c.dPolar -= twoPi * dy / vp.Height * c.RotateSpeed
}

// End finishes the rotation gesture.
func (c *OrbitControls) End() {
	c.rotating = false
}

// Zoom dollies in (steps > 0) or out (steps < 0).
func (c *OrbitControls) Zoom(steps float64) {
	if !c.Enabled || !c.EnableZoom {
		return
	}
	c.zoomFactor *= math.Pow(0.95, steps)
}

// Update applies pending rotation and zoom to the camera. It must be called once
// per frame; with damping the motion decays over several frames.
func (c *OrbitControls) Update() {
	if c.DampingFactor > 0 {
		c.azimuth += c.dAzimuth * c.DampingFactor
		c.polar += c.dPolar * c.DampingFactor
		c.dAzimuth *= 1 - c.DampingFactor
		c.dPolar *= 1 - c.DampingFactor
	} else {
		c.azimuth += c.dAzimuth
		c.polar += c.dPolar
		c.dAzimuth, c.dPolar = 0, 0
	}
	c.polar = clamp(c.polar, math.Max(c.MinPolar, zeroε), math.Min(c.MaxPolar, math.Pi-zeroε))
	c.radius = clamp(c.radius*c.zoomFactor, c.MinDistance, c.MaxDistance)
	c.zoomFactor = 1
	c.cam.Position = c.cam.Target.Add(Spherical2Cartesian(c.radius, c.polar, c.azimuth))
}

// Polar returns the current polar angle.
func (c *OrbitControls) Polar() float64 {
	return c.polar
}

// Azimuth returns the current azimuth.
func (c *OrbitControls) Azimuth() float64 {
	return c.azimuth
}

package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	deg2rad = math.Pi / 180
	twoPi   = 2 * math.Pi
	zeroε   = 1e-12
)

// unit returns the unit vector of a given vector.
func unit(a mgl64.Vec3) mgl64.Vec3 {
	n := a.Len()
	if scalar.EqualWithinAbs(n, 0, zeroε) {
		return mgl64.Vec3{} // Nil vector
	}
	return a.Mul(1 / n)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// lerp linearly interpolates between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Spherical2Cartesian returns the Y-up Cartesian vector of radius r, polar angle φ
// (from +Y) and azimuth θ (from +Z towards +X).
func Spherical2Cartesian(r, φ, θ float64) mgl64.Vec3 {
	sφ, cφ := math.Sincos(φ)
	sθ, cθ := math.Sincos(θ)
	return mgl64.Vec3{r * sφ * sθ, r * cφ, r * sφ * cθ}
}

// Cartesian2Spherical is the inverse of Spherical2Cartesian.
func Cartesian2Spherical(v mgl64.Vec3) (r, φ, θ float64) {
	r = v.Len()
	if r == 0 {
		return 0, 0, 0
	}
	φ = math.Acos(clamp(v.Y()/r, -1, 1))
	θ = math.Atan2(v.X(), v.Z())
	return
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, twoPi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += twoPi
	}
	return math.Mod(a/deg2rad, 360)
}

package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// R1 rotation about the 1st axis.
// These are frame rotations: rotating a vector by +x about an axis is R(-x).
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v mgl64.Vec3) mgl64.Vec3 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(3, []float64{v[0], v[1], v[2]}))
	return mgl64.Vec3{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}

// RotateX rotates v by θ about the world X axis.
func RotateX(θ float64, v mgl64.Vec3) mgl64.Vec3 {
	return MxV33(R1(-θ), v)
}

// RotateY rotates v by θ about the world Y axis.
func RotateY(θ float64, v mgl64.Vec3) mgl64.Vec3 {
	return MxV33(R2(-θ), v)
}

// Plane2World converts a vector expressed in the orbital plane (the XZ plane)
// to world coordinates: inclination about X first, then the ascending node about Y.
func Plane2World(i, Ω float64, v mgl64.Vec3) mgl64.Vec3 {
	return RotateY(Ω, RotateX(i, v))
}

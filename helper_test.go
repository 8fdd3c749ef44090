package orrery

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

const eps = 1e-9

// vectorsEqual returns whether two vectors are equal within eps.
func vectorsEqual(a, b mgl64.Vec3) bool {
	for i := 2; i >= 0; i-- {
		if !scalar.EqualWithinAbs(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(a - b)
	if diff < eps || math.Abs(diff-2*math.Pi) < eps {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}

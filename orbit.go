package orrery

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/soniakeys/meeus/v3/kepler"
	sunit "github.com/soniakeys/unit"
)

// KeplerIterations is the fixed number of fixed-point iterations used to solve
// Kepler's equation. There is no convergence check: the error is bounded by
// roughly e^KeplerIterations, which is invisible for e < 0.2.
const KeplerIterations = 5

// Elements defines an orbit via the reduced set of elements the demos need.
// The argument of periapsis is implicitly zero.
type Elements struct {
	SemiMajorAxis float64 // a
	Eccentricity  float64 // e, in [0, 1)
	Inclination   float64 // i, in radians
	AscendingNode float64 // Ω, in radians
	Period        float64 // in simulation seconds, must be positive
	MeanAnomaly0  float64 // M at t=0, in radians
}

// MeanMotion returns the mean angular rate n = 2π/T.
func (el Elements) MeanMotion() float64 {
	return twoPi / el.Period
}

// MeanAnomaly returns M(t) = M0 + n·t. It is not wrapped.
func (el Elements) MeanAnomaly(t float64) float64 {
	return el.MeanAnomaly0 + el.MeanMotion()*t
}

// Apoapsis returns the apoapsis.
func (el Elements) Apoapsis() float64 {
	return el.SemiMajorAxis * (1 + el.Eccentricity)
}

// Periapsis returns the periapsis.
func (el Elements) Periapsis() float64 {
	return el.SemiMajorAxis * (1 - el.Eccentricity)
}

// EccentricAnomaly approximates E from M by iterating E ← M + e·sin(E)
// exactly KeplerIterations times, starting from E = M.
func EccentricAnomaly(M, e float64) float64 {
	E := M
	for i := 0; i < KeplerIterations; i++ {
		E = M + e*math.Sin(E)
	}
	return E
}

// PlanePosition returns the position in the orbital plane for the eccentric
// anomaly E. The plane is the world XZ plane: the second planar coordinate is Z.
func (el Elements) PlanePosition(E float64) mgl64.Vec3 {
	a, e := el.SemiMajorAxis, el.Eccentricity
	sinE, cosE := math.Sincos(E)
	return mgl64.Vec3{a * (cosE - e), 0, a * math.Sqrt(1-e*e) * sinE}
}

// Position returns the world position at simulation time t.
func (el Elements) Position(t float64) mgl64.Vec3 {
	E := EccentricAnomaly(el.MeanAnomaly(t), el.Eccentricity)
	return Plane2World(el.Inclination, el.AscendingNode, el.PlanePosition(E))
}

// KeplerResidual returns the absolute error, in radians, of the fixed iteration
// eccentric anomaly at t with respect to a converged solution of Kepler's equation.
func (el Elements) KeplerResidual(t float64) float64 {
	M := math.Mod(el.MeanAnomaly(t), twoPi)
	if M < 0 {
		M += twoPi
	}
	exact := kepler.Kepler3(el.Eccentricity, sunit.Angle(M)).Rad()
	return math.Abs(math.Remainder(EccentricAnomaly(M, el.Eccentricity)-exact, twoPi))
}

// Orientation returns the rotation taking +Y onto the radial direction of pos.
// A zero position yields the identity.
func Orientation(pos mgl64.Vec3) mgl64.Quat {
	if pos.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, pos.Normalize())
}

// String implements the stringer interface.
func (el Elements) String() string {
	return fmt.Sprintf("a=%.3f e=%.4f i=%.3f Ω=%.3f T=%.3f M0=%.3f", el.SemiMajorAxis, el.Eccentricity, Rad2deg(el.Inclination), Rad2deg(el.AscendingNode), el.Period, Rad2deg(el.MeanAnomaly0))
}

package orrery

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestIntersectPlane(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{1, 5, 2}, Dir: unit(mgl64.Vec3{0, -1, 1})}
	p, ok := r.IntersectPlane(HorizontalPlane(1))
	if !ok || !vectorsEqual(p, mgl64.Vec3{1, 1, 6}) {
		t.Fatalf("got %v %v", p, ok)
	}
	// Parallel to the plane.
	if _, ok := (Ray{Origin: mgl64.Vec3{0, 1, 0}, Dir: mgl64.Vec3{1, 0, 0}}).IntersectPlane(HorizontalPlane(0)); ok {
		t.Fatal("a parallel ray must not intersect")
	}
	// Pointing away from the plane.
	if _, ok := (Ray{Origin: mgl64.Vec3{0, 1, 0}, Dir: mgl64.Vec3{0, 1, 0}}).IntersectPlane(HorizontalPlane(0)); ok {
		t.Fatal("the plane is behind the ray")
	}
}

func TestIntersectBox(t *testing.T) {
	b := Box{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}
	d, ok := Ray{Origin: mgl64.Vec3{-5, 0, 0}, Dir: mgl64.Vec3{1, 0, 0}}.IntersectBox(b)
	if !ok || !scalar.EqualWithinAbs(d, 4, eps) {
		t.Fatalf("front hit: %f %v", d, ok)
	}
	if _, ok := (Ray{Origin: mgl64.Vec3{-5, 2, 0}, Dir: mgl64.Vec3{1, 0, 0}}).IntersectBox(b); ok {
		t.Fatal("parallel ray outside the slab must miss")
	}
	if _, ok := (Ray{Origin: mgl64.Vec3{5, 0, 0}, Dir: mgl64.Vec3{1, 0, 0}}).IntersectBox(b); ok {
		t.Fatal("box behind the ray")
	}
	if d, ok := (Ray{Origin: mgl64.Vec3{}, Dir: mgl64.Vec3{0, 0, 1}}).IntersectBox(b); !ok || !scalar.EqualWithinAbs(d, 1, eps) {
		t.Fatalf("inside hit: %f %v", d, ok)
	}
	moved := b.Translate(mgl64.Vec3{0, 3, 0})
	if _, ok := (Ray{Origin: mgl64.Vec3{-5, 3.5, 0}, Dir: mgl64.Vec3{1, 0, 0}}).IntersectBox(moved); !ok {
		t.Fatal("translated box missed")
	}
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 8}, Dir: mgl64.Vec3{0, 0, -1}}
	if d, ok := r.IntersectSphere(mgl64.Vec3{}, 2); !ok || !scalar.EqualWithinAbs(d, 6, eps) {
		t.Fatalf("got %f %v", d, ok)
	}
	if _, ok := (Ray{Origin: mgl64.Vec3{0, 3, 8}, Dir: mgl64.Vec3{0, 0, -1}}).IntersectSphere(mgl64.Vec3{}, 2); ok {
		t.Fatal("ray passes above the sphere")
	}
	if d, ok := (Ray{Origin: mgl64.Vec3{}, Dir: mgl64.Vec3{1, 0, 0}}).IntersectSphere(mgl64.Vec3{}, 2); !ok || !scalar.EqualWithinAbs(d, 2, eps) {
		t.Fatalf("inside: %f %v", d, ok)
	}
	if _, ok := (Ray{Origin: mgl64.Vec3{0, 0, 8}, Dir: mgl64.Vec3{0, 0, 1}}).IntersectSphere(mgl64.Vec3{}, 2); ok {
		t.Fatal("sphere behind the ray")
	}
}

// distanceToRay returns the distance of p to the line of r.
func distanceToRay(r Ray, p mgl64.Vec3) float64 {
	v := p.Sub(r.Origin)
	return v.Sub(r.Dir.Mul(v.Dot(r.Dir))).Len()
}

func TestCameraRoundTrip(t *testing.T) {
	persp := NewPerspectiveCamera(Deg2rad(45), 0.1, 200, mgl64.Vec3{0, 0, 8})
	ortho := NewOrthographicCamera(6, 0.1, 100, mgl64.Vec3{5, 5, 5})
	for _, cam := range []*Camera{persp, ortho} {
		cam.SetViewport(80, 24, 2)
		for _, p := range []mgl64.Vec3{{0, 0, 0}, {1, 0.5, -1}, {-1.5, 0, 1.2}, {0.3, -0.2, 0.9}} {
			ndc := cam.Project(p)
			if ndc.Z() < -1 || ndc.Z() > 1 {
				t.Fatalf("%v: depth %f out of range", p, ndc.Z())
			}
			r := cam.Ray(ndc.Vec2())
			if d := distanceToRay(r, p); d > 1e-6 {
				t.Fatalf("kind %d: ray through the projection of %v misses it by %g", cam.Kind, p, d)
			}
			if !scalar.EqualWithinAbs(r.Dir.Len(), 1, eps) {
				t.Fatal("ray direction must be a unit vector")
			}
		}
	}
	// Orthographic rays are parallel to the view direction.
	r := ortho.Ray(mgl64.Vec2{0.7, -0.4})
	if !vectorsEqual(r.Dir, unit(mgl64.Vec3{-1, -1, -1})) {
		t.Fatalf("ortho ray direction %v", r.Dir)
	}
}

func TestCameraViewport(t *testing.T) {
	cam := NewPerspectiveCamera(1, 0.1, 10, mgl64.Vec3{0, 0, 5})
	if cam.SetViewport(0, 10, 2) || cam.SetViewport(10, 0, 2) {
		t.Fatal("zero sizes must be rejected")
	}
	if cam.Aspect != 1 {
		t.Fatal("a rejected viewport changed the aspect")
	}
	if !cam.SetViewport(80, 20, 2) || !scalar.EqualWithinAbs(cam.Aspect, 2, eps) {
		t.Fatalf("aspect %f", cam.Aspect)
	}
	// The center of the view projects to the origin.
	if ndc := cam.Project(mgl64.Vec3{}); math.Abs(ndc.X()) > eps || math.Abs(ndc.Y()) > eps {
		t.Fatalf("ndc %v", ndc)
	}
}

func TestViewportNDC(t *testing.T) {
	vp := Viewport{Left: 10, Top: 5, Width: 100, Height: 50}
	ndc, ok := vp.NDC(10, 5)
	if !ok || !scalar.EqualWithinAbs(ndc.X(), -1, eps) || !scalar.EqualWithinAbs(ndc.Y(), 1, eps) {
		t.Fatalf("top left: %v", ndc)
	}
	ndc, _ = vp.NDC(60, 30)
	if !scalar.EqualWithinAbs(ndc.X(), 0, eps) || !scalar.EqualWithinAbs(ndc.Y(), 0, eps) {
		t.Fatalf("center: %v", ndc)
	}
	ndc, _ = vp.NDC(110, 55)
	if !scalar.EqualWithinAbs(ndc.X(), 1, eps) || !scalar.EqualWithinAbs(ndc.Y(), -1, eps) {
		t.Fatalf("bottom right: %v", ndc)
	}
	if _, ok := (Viewport{}).NDC(1, 1); ok {
		t.Fatal("an empty viewport has no NDC")
	}
	if !vp.Contains(10, 5) || vp.Contains(110, 30) || vp.Contains(9, 30) {
		t.Fatal("contains")
	}
}

package orrery

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const parallelε = 1e-9

// Ray is a half line from Origin along the unit vector Dir.
type Ray struct {
	Origin, Dir mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Plane is the set of points p such that Normal·p + Constant = 0.
type Plane struct {
	Normal   mgl64.Vec3
	Constant float64
}

// HorizontalPlane returns the plane y = height.
func HorizontalPlane(height float64) Plane {
	return Plane{Normal: mgl64.Vec3{0, 1, 0}, Constant: -height}
}

// IntersectPlane returns the intersection of the ray with the plane.
// It reports false when the ray is parallel to the plane or points away from it.
func (r Ray) IntersectPlane(pl Plane) (mgl64.Vec3, bool) {
	denom := pl.Normal.Dot(r.Dir)
	if math.Abs(denom) < parallelε {
		return mgl64.Vec3{}, false
	}
	t := -(pl.Normal.Dot(r.Origin) + pl.Constant) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// Box is an axis aligned box.
type Box struct {
	Min, Max mgl64.Vec3
}

// Translate returns the box moved by d.
func (b Box) Translate(d mgl64.Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// IntersectBox returns the distance to the nearest intersection with b (slab method).
func (r Ray) IntersectBox(b Box) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(r.Dir[i]) < parallelε {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[i] - r.Origin[i]) / r.Dir[i]
		t2 := (b.Max[i] - r.Origin[i]) / r.Dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true // Origin inside the box.
	}
	return tmin, true
}

// IntersectSphere returns the distance to the nearest intersection with the sphere.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t >= 0 {
		return t, true
	}
	if t := -b + sq; t >= 0 {
		return t, true
	}
	return 0, false
}

package orrery

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	maxEccentricity = 0.2
	keplerExponent  = 1.5
)

// NewSource returns the PCG source for seed and the seed actually used: zero
// draws a random one.
func NewSource(seed uint64) (*rand.PCG, uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.NewPCG(seed, seed>>1|1), seed
}

// Satellite is a simulated entity: immutable elements and the position derived
// from them at the last update.
type Satellite struct {
	Elements
	Band        int // index in the registry bands
	Index       int // index within the band
	Position    mgl64.Vec3
	Orientation mgl64.Quat // +Y points away from the globe
}

func (s *Satellite) update(t float64) {
	s.Position = s.Elements.Position(t)
	s.Orientation = Orientation(s.Position)
}

// Registry owns every satellite of a scene. It is populated once and never
// grows or shrinks afterwards.
type Registry struct {
	bands []Band
	sats  []*Satellite
}

// NewRegistry draws the satellites of each band from src.
// The same bands and source state always produce the same registry.
func NewRegistry(bands []Band, src rand.Source) (*Registry, error) {
	r := &Registry{bands: make([]Band, len(bands))}
	copy(r.bands, bands)
	total := 0
	for _, b := range bands {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		total += b.Count
	}
	r.sats = make([]*Satellite, 0, total)
	u01 := distuv.Uniform{Min: 0, Max: 1, Src: src}
	for bi, b := range bands {
		for i := 0; i < b.Count; i++ {
			a := lerp(b.MinRadius, b.MaxRadius, u01.Rand())
			el := Elements{
				SemiMajorAxis: a,
				Inclination:   u01.Rand() * math.Pi / 2,
				AscendingNode: u01.Rand() * twoPi,
				Eccentricity:  u01.Rand() * maxEccentricity,
				Period:        math.Pow(a, keplerExponent) * b.SpeedFactor,
				MeanAnomaly0:  u01.Rand() * twoPi,
			}
			sat := &Satellite{Elements: el, Band: bi, Index: i}
			sat.update(0)
			r.sats = append(r.sats, sat)
		}
	}
	return r, nil
}

// Update recomputes every satellite position at simulation time t.
func (r *Registry) Update(t float64) {
	for _, s := range r.sats {
		s.update(t)
	}
}

// Satellites returns the satellites, grouped by band in band order.
func (r *Registry) Satellites() []*Satellite {
	return r.sats
}

// Bands returns the bands the registry was built from.
func (r *Registry) Bands() []Band {
	return r.bands
}

// Len returns the number of satellites.
func (r *Registry) Len() int {
	return len(r.sats)
}

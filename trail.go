package orrery

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// TrailBuffer is a fixed capacity ring of the most recent positions of one satellite.
type TrailBuffer struct {
	Target int // satellite index in the registry
	points []mgl64.Vec3
	next   int
	full   bool
}

// NewTrailBuffer returns an empty trail of the given capacity (at least one).
func NewTrailBuffer(target, capacity int) *TrailBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &TrailBuffer{Target: target, points: make([]mgl64.Vec3, capacity)}
}

// Push appends p, overwriting the oldest point once the buffer is full.
func (tb *TrailBuffer) Push(p mgl64.Vec3) {
	tb.points[tb.next] = p
	tb.next = (tb.next + 1) % len(tb.points)
	if tb.next == 0 {
		tb.full = true
	}
}

// Len returns the number of stored points.
func (tb *TrailBuffer) Len() int {
	if tb.full {
		return len(tb.points)
	}
	return tb.next
}

// Cap returns the fixed capacity.
func (tb *TrailBuffer) Cap() int {
	return len(tb.points)
}

// Next returns the write index.
func (tb *TrailBuffer) Next() int {
	return tb.next
}

// Points returns the stored points, oldest first.
func (tb *TrailBuffer) Points() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, tb.Len())
	if tb.full {
		out = append(out, tb.points[tb.next:]...)
	}
	return append(out, tb.points[:tb.next]...)
}

// NewTrails attaches a trail to min(count, r.Len()) distinct satellites chosen from src.
func NewTrails(r *Registry, count, capacity int, src rand.Source) []*TrailBuffer {
	if count > r.Len() {
		count = r.Len()
	}
	if count <= 0 {
		return nil
	}
	perm := rand.New(src).Perm(r.Len())
	trails := make([]*TrailBuffer, count)
	for i := range trails {
		trails[i] = NewTrailBuffer(perm[i], capacity)
	}
	return trails
}

// SampleTrails pushes the current position of each trail's satellite.
func SampleTrails(r *Registry, trails []*TrailBuffer) {
	sats := r.Satellites()
	for _, tb := range trails {
		tb.Push(sats[tb.Target].Position)
	}
}

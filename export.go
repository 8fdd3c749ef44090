package orrery

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Sample is the state of one satellite at one frame.
type Sample struct {
	Frame    int
	Time     float64
	Band     string
	Index    int
	Elements Elements
	X, Y, Z  float64
	Residual float64 // radians, see Elements.KeplerResidual
}

var ephemerisHeader = []string{"frame", "time", "band", "index", "a", "e", "i_deg", "node_deg", "period", "x", "y", "z", "kepler_residual"}

// Ephemeris steps the registry frames times by step, starting at t=0, and
// sends every satellite's sample on out. It closes out when done.
func Ephemeris(ctx context.Context, r *Registry, step float64, frames int, out chan<- Sample) error {
	defer close(out)
	bands := r.Bands()
	for f := 0; f < frames; f++ {
		t := float64(f) * step
		r.Update(t)
		for _, s := range r.Satellites() {
			smp := Sample{
				Frame:    f,
				Time:     t,
				Band:     bands[s.Band].Name,
				Index:    s.Index,
				Elements: s.Elements,
				X:        s.Position.X(),
				Y:        s.Position.Y(),
				Z:        s.Position.Z(),
				Residual: s.KeplerResidual(t),
			}
			select {
			case out <- smp:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// StreamEphemeris writes the samples of the channel as CSV until it is closed.
func StreamEphemeris(w io.Writer, samples <-chan Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ephemerisHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for s := range samples {
		rec := []string{
			strconv.Itoa(s.Frame),
			ff(s.Time),
			s.Band,
			strconv.Itoa(s.Index),
			ff(s.Elements.SemiMajorAxis),
			ff(s.Elements.Eccentricity),
			ff(Rad2deg(s.Elements.Inclination)),
			ff(Rad2deg(s.Elements.AscendingNode)),
			ff(s.Elements.Period),
			ff(s.X), ff(s.Y), ff(s.Z),
			strconv.FormatFloat(s.Residual, 'e', 3, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write frame %d: %w", s.Frame, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func ff(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

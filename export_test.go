package orrery

import (
	"bytes"
	"context"
	"encoding/csv"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestEphemerisCSV(t *testing.T) {
	bands := []Band{{Name: "one", Count: 2, MinRadius: 3, MaxRadius: 4, SpeedFactor: 1}}
	r, err := NewRegistry(bands, rand.NewPCG(1, 2))
	require.NoError(t, err)

	var buf bytes.Buffer
	samples := make(chan Sample)
	var g errgroup.Group
	g.Go(func() error { return Ephemeris(context.Background(), r, 0.5, 3, samples) })
	g.Go(func() error { return StreamEphemeris(&buf, samples) })
	require.NoError(t, g.Wait())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+3*2)
	require.Equal(t, ephemerisHeader, rows[0])
	last := rows[len(rows)-1]
	require.Equal(t, "2", last[0])
	require.Equal(t, "1.000000", last[1])
	require.Equal(t, "one", last[2])
	require.Equal(t, "1", last[3])

	sat := r.Satellites()[1]
	p := sat.Elements.Position(1)
	x, err := strconv.ParseFloat(last[9], 64)
	require.NoError(t, err)
	require.InDelta(t, p.X(), x, 1e-6)
	res, err := strconv.ParseFloat(last[12], 64)
	require.NoError(t, err)
	require.Less(t, res, 1e-3)
}

func TestEphemerisCancelled(t *testing.T) {
	r, err := NewRegistry(DefaultBands(), rand.NewPCG(1, 2))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := make(chan Sample)
	require.ErrorIs(t, Ephemeris(ctx, r, 0.01, 10, out), context.Canceled)
	_, open := <-out
	require.False(t, open, "the channel must be closed")
}

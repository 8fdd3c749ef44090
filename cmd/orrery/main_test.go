package main

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"testing"

	"github.com/BengineerZ/orrery"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv(orrery.ConfigEnv, "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestBandsCommand(t *testing.T) {
	out := execute(t, "bands")
	for _, b := range orrery.DefaultBands() {
		require.Contains(t, out, b.Name)
	}
	require.Len(t, strings.Split(out, "\n"), len(orrery.DefaultBands())+2)
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config", "--seed", "9")
	var cfg orrery.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	require.Equal(t, uint64(9), cfg.Globe.Seed)
	require.Equal(t, orrery.DefaultConfig().Arrow, cfg.Arrow)
	require.Equal(t, orrery.DefaultConfig().Globe.Bands, cfg.Globe.Bands)
}

func TestEphemerisCommand(t *testing.T) {
	out := execute(t, "ephemeris", "--seed", "5", "--frames", "2", "--step", "0.5")
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+2*25)
	require.Equal(t, "frame", rows[0][0])
	require.Equal(t, "0.500000", rows[len(rows)-1][1])

	again := execute(t, "ephemeris", "--seed", "5", "--frames", "2", "--step", "0.5")
	require.Equal(t, out, again, "a seed must reproduce the ephemeris")
}

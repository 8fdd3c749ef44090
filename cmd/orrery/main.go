package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BengineerZ/orrery"
	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"
)

var (
	configDir string
	logPath   string
	seed      uint64
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Orbiting satellites and a draggable arrow, in the terminal",
	Long: `orrery renders two interactive scenes in the terminal:
  globe   satellites in Kepler orbits around a spinning globe, with trails
  arrow   an arrow dragged over a ground box, mirrored on a 2D map

Drag with the left button to orbit the camera (or move the arrow), scroll to
zoom, and press q or Esc to quit.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory holding conf.toml (default $"+orrery.ConfigEnv+")")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "logfmt log file (default: discard)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "satellite seed, 0 for random")
	rootCmd.AddCommand(globeCmd, arrowCmd, ephemerisCmd, bandsCmd, configCmd)
}

// loadConfig resolves the configuration, applying the flag overrides.
func loadConfig(cmd *cobra.Command) (orrery.Config, error) {
	cfg, err := orrery.LoadConfig(configDir)
	if err != nil {
		return orrery.Config{}, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Globe.Seed = seed
	}
	return cfg, nil
}

// openLog returns the logger of the run and its closer. The terminal is the
// render surface, so logs never go to stderr.
func openLog() (kitlog.Logger, io.Closer, error) {
	if logPath == "" {
		return orrery.NewLogger(nil), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return kitlog.With(orrery.NewLogger(f), "ts", kitlog.DefaultTimestampUTC), f, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/BengineerZ/orrery"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	ephFrames int
	ephStep   float64
)

var ephemerisCmd = &cobra.Command{
	Use:   "ephemeris",
	Short: "Print the globe satellites' positions as CSV",
	Long: `ephemeris steps the globe satellites without rendering and writes one CSV
row per satellite and frame, including the error of the fixed iteration Kepler
solution against a converged one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if ephFrames < 1 {
			return fmt.Errorf("frames must be positive, got %d", ephFrames)
		}
		step := ephStep
		if !cmd.Flags().Changed("step") {
			step = cfg.Globe.TimeStep
		}
		src, used := orrery.NewSource(cfg.Globe.Seed)
		registry, err := orrery.NewRegistry(cfg.Globe.Bands, src)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "# seed %d, %d satellites\n", used, registry.Len())

		samples := make(chan orrery.Sample, registry.Len())
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return orrery.Ephemeris(ctx, registry, step, ephFrames, samples)
		})
		g.Go(func() error {
			err := orrery.StreamEphemeris(cmd.OutOrStdout(), samples)
			if err != nil {
				// Unblock the producer.
				for range samples {
				}
			}
			return err
		})
		return g.Wait()
	},
}

func init() {
	ephemerisCmd.Flags().IntVar(&ephFrames, "frames", 100, "number of frames")
	ephemerisCmd.Flags().Float64Var(&ephStep, "step", 0, "simulation seconds per frame (default globe.time_step)")
}

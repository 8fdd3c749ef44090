package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BengineerZ/orrery"
	"github.com/BengineerZ/orrery/term"
	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"
)

var globeCmd = &cobra.Command{
	Use:   "globe",
	Short: "Satellites orbiting a spinning globe",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScene(cmd, func(cfg orrery.Config, logger kitlog.Logger) (orrery.Scene, error) {
			return orrery.NewGlobe(cfg.Globe, cfg.Frame.CellAspect, logger)
		})
	},
}

var arrowCmd = &cobra.Command{
	Use:   "arrow",
	Short: "Drag an arrow over a ground box",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScene(cmd, func(cfg orrery.Config, logger kitlog.Logger) (orrery.Scene, error) {
			// The terminal reports every mouse event to us: no capture needed.
			return orrery.NewArrow(cfg.Arrow, cfg.Frame.CellAspect, nil, logger), nil
		})
	},
}

type sceneFactory func(cfg orrery.Config, logger kitlog.Logger) (orrery.Scene, error)

func runScene(cmd *cobra.Command, build sceneFactory) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := openLog()
	if err != nil {
		return err
	}
	defer closer.Close()

	scene, err := build(cfg, logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scr, err := term.New()
	if err != nil {
		return err
	}
	d := orrery.MountAsync(ctx, scene, term.Loader(scr), orrery.NewTickerScheduler(cfg.Frame.Interval), logger)
	if err := d.Wait(); err != nil {
		d.Unmount()
		scr.Release()
		return fmt.Errorf("mount %s: %w", scene.Name(), err)
	}
	if err := term.Run(ctx, scr, d); err != nil {
		return err
	}
	logger.Log("level", "info", "subsys", "cli", "scene", scene.Name(), "frames", d.Frames())
	return nil
}

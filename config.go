package orrery

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConfigEnv names the environment variable holding the directory of conf.toml.
const ConfigEnv = "ORRERY_CONFIG"

// Config is the full configuration of both demos.
type Config struct {
	Frame FrameConfig `mapstructure:"frame" yaml:"frame"`
	Globe GlobeConfig `mapstructure:"globe" yaml:"globe"`
	Arrow ArrowConfig `mapstructure:"arrow" yaml:"arrow"`
}

// FrameConfig configures the render loop.
type FrameConfig struct {
	Interval   time.Duration `mapstructure:"interval" yaml:"interval"`
	CellAspect float64       `mapstructure:"cell_aspect" yaml:"cell_aspect"` // cell height / cell width
}

// GlobeConfig configures the satellite globe.
type GlobeConfig struct {
	Seed           uint64  `mapstructure:"seed" yaml:"seed"`
	TimeStep       float64 `mapstructure:"time_step" yaml:"time_step"` // simulation seconds per frame
	SpinRate       float64 `mapstructure:"spin_rate" yaml:"spin_rate"` // globe radians per frame
	Radius         float64 `mapstructure:"radius" yaml:"radius"`
	CameraDistance float64 `mapstructure:"camera_distance" yaml:"camera_distance"`
	FovDeg         float64 `mapstructure:"fov_deg" yaml:"fov_deg"`
	MinPolarDeg    float64 `mapstructure:"min_polar_deg" yaml:"min_polar_deg"`
	MaxPolarDeg    float64 `mapstructure:"max_polar_deg" yaml:"max_polar_deg"`
	Zoom           bool    `mapstructure:"zoom" yaml:"zoom"`
	Trails         int     `mapstructure:"trails" yaml:"trails"`
	TrailLength    int     `mapstructure:"trail_length" yaml:"trail_length"`
	TrailEvery     int     `mapstructure:"trail_every" yaml:"trail_every"` // frames between trail samples
	Bands          []Band  `mapstructure:"bands" yaml:"bands"`
}

// ArrowConfig configures the draggable arrow demo.
type ArrowConfig struct {
	BoxSize      float64 `mapstructure:"box_size" yaml:"box_size"`
	BoxThickness float64 `mapstructure:"box_thickness" yaml:"box_thickness"`
	Height       float64 `mapstructure:"height" yaml:"height"`
	ViewSize     float64 `mapstructure:"view_size" yaml:"view_size"`
	CameraAt     float64 `mapstructure:"camera_at" yaml:"camera_at"` // camera sits at (c, c, c)
	MinPolarDeg  float64 `mapstructure:"min_polar_deg" yaml:"min_polar_deg"`
	MaxPolarDeg  float64 `mapstructure:"max_polar_deg" yaml:"max_polar_deg"`
	MapWidth     int     `mapstructure:"map_width" yaml:"map_width"` // cells
	MapPad       int     `mapstructure:"map_pad" yaml:"map_pad"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("frame.interval", FrameInterval)
	v.SetDefault("frame.cell_aspect", 2.0)

	v.SetDefault("globe.seed", 0)
	v.SetDefault("globe.time_step", 0.01)
	v.SetDefault("globe.spin_rate", 0.0002)
	v.SetDefault("globe.radius", 2.0)
	v.SetDefault("globe.camera_distance", 8.0)
	v.SetDefault("globe.fov_deg", 45.0)
	v.SetDefault("globe.min_polar_deg", 30.0)
	v.SetDefault("globe.max_polar_deg", 90.0)
	v.SetDefault("globe.zoom", true)
	v.SetDefault("globe.trails", 12)
	v.SetDefault("globe.trail_length", 50)
	v.SetDefault("globe.trail_every", 1)

	v.SetDefault("arrow.box_size", 4.0)
	v.SetDefault("arrow.box_thickness", 0.2)
	v.SetDefault("arrow.height", 0.6)
	v.SetDefault("arrow.view_size", 6.0)
	v.SetDefault("arrow.camera_at", 5.0)
	v.SetDefault("arrow.min_polar_deg", 30.0)
	v.SetDefault("arrow.max_polar_deg", 90.0)
	v.SetDefault("arrow.map_width", 24)
	v.SetDefault("arrow.map_pad", 1)
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	cfg, err := decode(viper.New())
	if err != nil {
		panic(fmt.Errorf("invalid default configuration: %w", err))
	}
	return cfg
}

// LoadConfig reads conf.toml (or any format viper supports under the name "conf")
// from dir, or from $ORRERY_CONFIG when dir is empty. Without a directory the
// defaults apply. ORRERY_* environment variables override file values, e.g.
// ORRERY_GLOBE_SEED=42.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("orrery")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if dir == "" {
		dir = os.Getenv(ConfigEnv)
	}
	if dir != "" {
		v.SetConfigName("conf")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s/conf: %w", dir, err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Globe.Bands) == 0 {
		cfg.Globe.Bands = DefaultBands()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns the first invalid setting.
func (c Config) Validate() error {
	if c.Frame.CellAspect <= 0 {
		return errors.New("frame.cell_aspect must be positive")
	}
	g := c.Globe
	if g.Radius <= 0 || g.CameraDistance <= g.Radius {
		return fmt.Errorf("globe: camera distance %f must exceed radius %f", g.CameraDistance, g.Radius)
	}
	if g.FovDeg <= 0 || g.FovDeg >= 180 {
		return fmt.Errorf("globe: invalid field of view %f", g.FovDeg)
	}
	if g.Trails < 0 || g.TrailLength < 1 || g.TrailEvery < 1 {
		return errors.New("globe: trails must be >= 0, trail_length and trail_every >= 1")
	}
	if err := validatePolar(g.MinPolarDeg, g.MaxPolarDeg); err != nil {
		return fmt.Errorf("globe: %w", err)
	}
	for _, b := range g.Bands {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("globe: %w", err)
		}
	}
	a := c.Arrow
	if a.BoxSize <= 0 || a.ViewSize <= 0 || a.CameraAt <= 0 {
		return errors.New("arrow: box_size, view_size and camera_at must be positive")
	}
	if a.MapWidth < 2*a.MapPad+3 || a.MapPad < 0 {
		return fmt.Errorf("arrow: map_width %d too small for map_pad %d", a.MapWidth, a.MapPad)
	}
	if err := validatePolar(a.MinPolarDeg, a.MaxPolarDeg); err != nil {
		return fmt.Errorf("arrow: %w", err)
	}
	return nil
}

// validatePolar checks polar limits in degrees. Deg2rad folds angles modulo
// 360, so anything outside [0, 180] would silently wrap.
func validatePolar(lo, hi float64) error {
	if lo < 0 || lo > hi || hi > 180 {
		return fmt.Errorf("polar limits [%g, %g] must satisfy 0 <= min_polar_deg <= max_polar_deg <= 180", lo, hi)
	}
	return nil
}

package orrery

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Band groups satellites that share a radius range, a speed scale and a color.
type Band struct {
	Name        string  `mapstructure:"name" yaml:"name"`
	Count       int     `mapstructure:"count" yaml:"count"`
	MinRadius   float64 `mapstructure:"min_radius" yaml:"min_radius"`
	MaxRadius   float64 `mapstructure:"max_radius" yaml:"max_radius"`
	SpeedFactor float64 `mapstructure:"speed_factor" yaml:"speed_factor"`
	Color       string  `mapstructure:"color" yaml:"color"` // hex, e.g. #88aaff
}

// DefaultBands returns the low, medium, high and special bands of the globe demo.
func DefaultBands() []Band {
	return []Band{
		{Name: "low", Count: 10, MinRadius: 3.4, MaxRadius: 3.7, SpeedFactor: 1.0, Color: "#ffffff"},
		{Name: "medium", Count: 7, MinRadius: 3.9, MaxRadius: 4.3, SpeedFactor: 0.7, Color: "#88aaff"},
		{Name: "high", Count: 5, MinRadius: 4.5, MaxRadius: 5.0, SpeedFactor: 0.4, Color: "#ff8855"},
		{Name: "special", Count: 3, MinRadius: 4.8, MaxRadius: 5.2, SpeedFactor: 0.3, Color: "#ffffff"},
	}
}

// Validate returns an error if the band cannot produce valid orbits.
func (b Band) Validate() error {
	if b.Name == "" {
		return errors.New("band has no name")
	}
	if b.Count < 0 {
		return fmt.Errorf("band %s: negative count %d", b.Name, b.Count)
	}
	if b.MinRadius <= 0 || b.MaxRadius < b.MinRadius {
		return fmt.Errorf("band %s: invalid radius range [%f, %f]", b.Name, b.MinRadius, b.MaxRadius)
	}
	if b.SpeedFactor <= 0 {
		return fmt.Errorf("band %s: speed factor must be positive", b.Name)
	}
	if _, err := b.RGB(); err != nil {
		return fmt.Errorf("band %s: %w", b.Name, err)
	}
	return nil
}

// RGB returns the band color, white when unset.
func (b Band) RGB() (colorful.Color, error) {
	if b.Color == "" {
		return colorful.Color{R: 1, G: 1, B: 1}, nil
	}
	return colorful.Hex(b.Color)
}

func (b Band) String() string {
	return fmt.Sprintf("%s: %d sats, r=[%.2f, %.2f], ×%.2f", b.Name, b.Count, b.MinRadius, b.MaxRadius, b.SpeedFactor)
}

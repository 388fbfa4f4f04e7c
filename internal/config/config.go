// Settings file handling
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"photo-compare/internal/compare"
)

const (
	MinWindowWidth  = 900
	MinWindowHeight = 700
)

// Config is the on-disk settings file
type Config struct {
	Dissolve DissolveConfig `toml:"dissolve"`
	View     ViewConfig     `toml:"view"`
	Window   WindowConfig   `toml:"window"`
}

type DissolveConfig struct {
	HoldSeconds       float64 `toml:"hold_seconds"`
	TransitionSeconds float64 `toml:"transition_seconds"`
}

type ViewConfig struct {
	Direction string  `toml:"direction"`
	Mode      string  `toml:"mode"`
	ZoomStep  float64 `toml:"zoom_step"`
	MinZoom   float64 `toml:"min_zoom"`
	MaxZoom   float64 `toml:"max_zoom"`
	Basic     bool    `toml:"basic"` // wipe only, no zoom/pan/dissolve
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

func Default() *Config {
	timing := compare.DefaultDissolveTiming()
	limits := compare.DefaultZoomLimits()
	return &Config{
		Dissolve: DissolveConfig{
			HoldSeconds:       timing.Hold.Seconds(),
			TransitionSeconds: timing.Transition.Seconds(),
		},
		View: ViewConfig{
			Direction: "left-to-right",
			Mode:      "wipe",
			ZoomStep:  limits.Step,
			MinZoom:   limits.Min,
			MaxZoom:   limits.Max,
		},
		Window: WindowConfig{Width: MinWindowWidth, Height: MinWindowHeight},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults; a file that exists but does not parse is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Validate()
	return cfg, nil
}

// Parse decodes settings from a TOML document over the defaults.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps every value into its usable range. Unknown enum spellings
// fall back to the defaults.
func (c *Config) Validate() {
	minSeconds := compare.MinPhaseDuration.Seconds()
	if c.Dissolve.HoldSeconds < minSeconds {
		c.Dissolve.HoldSeconds = minSeconds
	}
	if c.Dissolve.TransitionSeconds < minSeconds {
		c.Dissolve.TransitionSeconds = minSeconds
	}

	if _, err := compare.ParseDirection(c.View.Direction); err != nil {
		c.View.Direction = "left-to-right"
	}
	if _, err := compare.ParseMode(c.View.Mode); err != nil {
		c.View.Mode = "wipe"
	}

	limits := compare.ZoomLimits{Min: c.View.MinZoom, Max: c.View.MaxZoom, Step: c.View.ZoomStep}.Normalize()
	c.View.MinZoom, c.View.MaxZoom, c.View.ZoomStep = limits.Min, limits.Max, limits.Step

	if c.Window.Width < MinWindowWidth {
		c.Window.Width = MinWindowWidth
	}
	if c.Window.Height < MinWindowHeight {
		c.Window.Height = MinWindowHeight
	}
}

func (c *Config) Direction() compare.Direction {
	d, _ := compare.ParseDirection(c.View.Direction)
	return d
}

func (c *Config) Mode() compare.Mode {
	m, _ := compare.ParseMode(c.View.Mode)
	return m
}

func (c *Config) Timing() compare.DissolveTiming {
	return compare.TimingFromSeconds(c.Dissolve.HoldSeconds, c.Dissolve.TransitionSeconds)
}

func (c *Config) ZoomLimits() compare.ZoomLimits {
	return compare.ZoomLimits{Min: c.View.MinZoom, Max: c.View.MaxZoom, Step: c.View.ZoomStep}.Normalize()
}

func (c *Config) Capabilities() compare.Capabilities {
	if c.View.Basic {
		return compare.BasicCapabilities()
	}
	return compare.FullCapabilities()
}

// ViewerOptions builds the options for a new compare.Viewer.
func (c *Config) ViewerOptions(logger *logrus.Logger) compare.Options {
	return compare.Options{
		Capabilities: c.Capabilities(),
		Direction:    c.Direction(),
		Mode:         c.Mode(),
		Timing:       c.Timing(),
		Zoom:         c.ZoomLimits(),
		Logger:       logger,
	}
}

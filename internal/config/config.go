// Package config loads drag tuning from a YAML file and converts it into the
// internal drag.Config form.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"draglist/internal/drag"
)

// Config is the on-disk tuning file.
type Config struct {
	ActivationDelayMS int        `yaml:"activation_delay_ms"`
	SwapThreshold     float64    `yaml:"swap_threshold"`
	Mode              string     `yaml:"mode"` // fixed | measured
	RowEstimate       float64    `yaml:"row_estimate"`
	Spring            Spring     `yaml:"spring"`
	AutoScroll        AutoScroll `yaml:"autoscroll"`
}

type Spring struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

type AutoScroll struct {
	Threshold       float64 `yaml:"threshold"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Ease            string  `yaml:"ease"` // cubic | sine
	Smoothing       float64 `yaml:"smoothing"`
	DirectionAware  bool    `yaml:"direction_aware"`
	JitterThreshold float64 `yaml:"jitter_threshold"`
}

// Default returns the file form of the built-in tuning.
func Default() Config {
	d := drag.DefaultConfig()
	return Config{
		ActivationDelayMS: int(d.ActivationDelay / time.Millisecond),
		SwapThreshold:     d.SwapThreshold,
		Mode:              "fixed",
		RowEstimate:       1,
		Spring: Spring{
			Stiffness: d.Spring.Stiffness,
			Damping:   d.Spring.Damping,
			Mass:      d.Spring.Mass,
		},
		AutoScroll: AutoScroll{
			Threshold:       d.AutoScroll.Threshold,
			MinSpeed:        d.AutoScroll.MinSpeed,
			MaxSpeed:        d.AutoScroll.MaxSpeed,
			Ease:            "cubic",
			Smoothing:       d.AutoScroll.Smoothing,
			DirectionAware:  d.AutoScroll.DirectionAware,
			JitterThreshold: d.AutoScroll.JitterThreshold,
		},
	}
}

// Load reads the YAML file at path, layering it over the defaults. A missing
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Mode {
	case "fixed", "measured":
	default:
		return fmt.Errorf("mode must be fixed or measured, got %q", c.Mode)
	}
	switch c.AutoScroll.Ease {
	case "cubic", "sine":
	default:
		return fmt.Errorf("autoscroll.ease must be cubic or sine, got %q", c.AutoScroll.Ease)
	}
	if c.SwapThreshold <= 0 || c.SwapThreshold > 1 {
		return fmt.Errorf("swap_threshold must be in (0, 1], got %v", c.SwapThreshold)
	}
	if c.AutoScroll.MinSpeed > c.AutoScroll.MaxSpeed {
		return fmt.Errorf("autoscroll.min_speed %v exceeds max_speed %v", c.AutoScroll.MinSpeed, c.AutoScroll.MaxSpeed)
	}
	return nil
}

// Drag converts the file form into the tuning the widget consumes.
func (c Config) Drag() drag.Config {
	mode := drag.ModeFixed
	if c.Mode == "measured" {
		mode = drag.ModeMeasured
	}
	ease := drag.EaseCubic
	if c.AutoScroll.Ease == "sine" {
		ease = drag.EaseSine
	}
	return drag.Config{
		ActivationDelay: time.Duration(c.ActivationDelayMS) * time.Millisecond,
		SwapThreshold:   c.SwapThreshold,
		Mode:            mode,
		Spring: drag.SpringConfig{
			Stiffness: c.Spring.Stiffness,
			Damping:   c.Spring.Damping,
			Mass:      c.Spring.Mass,
		},
		AutoScroll: drag.AutoScrollConfig{
			Threshold:       c.AutoScroll.Threshold,
			MinSpeed:        c.AutoScroll.MinSpeed,
			MaxSpeed:        c.AutoScroll.MaxSpeed,
			Ease:            ease,
			Smoothing:       c.AutoScroll.Smoothing,
			DirectionAware:  c.AutoScroll.DirectionAware,
			JitterThreshold: c.AutoScroll.JitterThreshold,
		},
	}
}

// YAML renders the config back to YAML, for `draglist config show`.
func (c Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}

// Package config provides configuration loading and access for the spring
// driver and the demo binary.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lissom-motion/lissom/spring"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Driver    DriverConfig    `yaml:"driver"`
	Sleep     SleepConfig     `yaml:"sleep"`
	Demo      DemoConfig      `yaml:"demo"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DriverConfig holds spring driver behavior switches.
type DriverConfig struct {
	// StrictRuntimeTypeChecking makes targeting a property with a goal of a
	// different kind a hard error instead of a silent re-seed.
	StrictRuntimeTypeChecking bool `yaml:"strict_runtime_type_checking"`
}

// SleepConfig overrides the default spring sleep thresholds. Offsets and
// velocities are in intermediate-space units; the rotation pair is radians
// and radians per second. Zero means "use the built-in default". Known
// variants of this design disagree on the exact constants, so they are
// configuration rather than hardcoded truth.
type SleepConfig struct {
	OffsetThreshold           float64 `yaml:"offset_threshold"`
	VelocityThreshold         float64 `yaml:"velocity_threshold"`
	RotationOffsetThreshold   float64 `yaml:"rotation_offset_threshold"`
	RotationVelocityThreshold float64 `yaml:"rotation_velocity_threshold"`
}

// DemoConfig holds display and default spring parameters for the demo.
type DemoConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	TargetFPS    int     `yaml:"target_fps"`
	Entities     int     `yaml:"entities"`
	DampingRatio float64 `yaml:"damping_ratio"`
	Frequency    float64 `yaml:"frequency"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	// SampleEvery records every Nth tick; 0 disables sampling.
	SampleEvery int `yaml:"sample_every"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present
		// in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Thresholds maps the sleep section onto solver thresholds, filling any
// zero field from the built-in defaults.
func (c *Config) Thresholds() spring.Thresholds {
	th := spring.DefaultThresholds()
	if c.Sleep.OffsetThreshold > 0 {
		th.Offset = c.Sleep.OffsetThreshold
	}
	if c.Sleep.VelocityThreshold > 0 {
		th.Velocity = c.Sleep.VelocityThreshold
	}
	if c.Sleep.RotationOffsetThreshold > 0 {
		th.RotationOffset = c.Sleep.RotationOffsetThreshold
	}
	if c.Sleep.RotationVelocityThreshold > 0 {
		th.RotationVelocity = c.Sleep.RotationVelocityThreshold
	}
	return th
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

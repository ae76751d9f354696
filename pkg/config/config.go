// Package config loads the YAML run configuration. Defaults reproduce the
// standard analysis: the 3x3 space, a sequential pass, and
// monotonic_functions.csv plus plot.png in the working directory.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/regnet-monotone/pkg/enumerate"
	"github.com/dd0wney/regnet-monotone/pkg/logging"
	"github.com/dd0wney/regnet-monotone/pkg/network"
	"github.com/dd0wney/regnet-monotone/pkg/parallel"
	"github.com/dd0wney/regnet-monotone/pkg/validation"
)

// Config is the full run configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Workers int           `yaml:"workers"`
	Output  OutputConfig  `yaml:"output"`
	S3      S3Config      `yaml:"s3"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// GridConfig bounds the two levels of the config space.
type GridConfig struct {
	MaxActivator int `yaml:"max_activator"`
	MaxRepressor int `yaml:"max_repressor"`
}

// OutputConfig names the presentation outputs. Empty file names disable them.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	CSV      string `yaml:"csv"`
	PNG      string `yaml:"png"`
	Manifest string `yaml:"manifest"`
	Compress bool   `yaml:"compress"`
	Terminal bool   `yaml:"terminal"`
}

// S3Config enables uploading exports. Disabled when Bucket is empty.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// MetricsConfig names the Prometheus textfile. Disabled when empty.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration of the standard analysis.
func Default() Config {
	return Config{
		Grid: GridConfig{
			MaxActivator: network.MaxLevel,
			MaxRepressor: network.MaxLevel,
		},
		Workers: 1,
		Output: OutputConfig{
			Dir:      ".",
			CSV:      "monotonic_functions.csv",
			PNG:      "plot.png",
			Terminal: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Canonical reports whether the grid is the 3x3 space.
func (c Config) Canonical() bool {
	return c.Grid.MaxActivator == network.MaxLevel && c.Grid.MaxRepressor == network.MaxLevel
}

// SpaceSize returns the number of configs the grid produces. It is only
// meaningful once Validate has bounded both axes.
func (c Config) SpaceSize() int {
	return (c.Grid.MaxActivator + 1) * (c.Grid.MaxRepressor + 1)
}

// Validate checks every field and reports all problems at once. Each grid
// axis is bounded before the two are multiplied.
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		RangeInt("Grid.MaxActivator", c.Grid.MaxActivator, 0, enumerate.MaxSpaceSize-1).
		RangeInt("Grid.MaxRepressor", c.Grid.MaxRepressor, 0, enumerate.MaxSpaceSize-1).
		Custom("Grid", func() error {
			if !c.axesBounded() {
				return nil
			}
			if n := c.SpaceSize(); n > enumerate.MaxSpaceSize {
				return fmt.Errorf("%d configs exceeds %d", n, enumerate.MaxSpaceSize)
			}
			return nil
		}).
		RangeInt("Workers", c.Workers, 0, parallel.MaxWorkers).
		Required("Output.Dir", c.Output.Dir).
		Custom("Log.Level", func() error {
			_, err := logging.ParseLevel(c.Log.Level)
			return err
		}).
		When(c.S3.Bucket != "", func(v *validation.ConfigValidator) {
			v.Required("S3.Region", c.S3.Region)
			v.When(c.S3.AccessKeyID != "", func(v *validation.ConfigValidator) {
				v.Required("S3.SecretAccessKey", c.S3.SecretAccessKey)
			})
		}).
		Validate()
}

func (c Config) axesBounded() bool {
	inRange := func(v int) bool { return v >= 0 && v < enumerate.MaxSpaceSize }
	return inRange(c.Grid.MaxActivator) && inRange(c.Grid.MaxRepressor)
}

// LogLevel returns the parsed log level, info when it does not parse.
func (c Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.InfoLevel
	}
	return level
}

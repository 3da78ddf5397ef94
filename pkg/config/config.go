// Package config loads run settings from defaults, an optional YAML settings
// file, and PEPCHARGE_* environment variables
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the implicit settings file (pepcharge.yaml) searched in the
// working directory when no explicit path is given
const FileName = "pepcharge"

// Default run settings
const (
	DefaultPH          = 7.0
	DefaultProfileMin  = 0.0
	DefaultProfileMax  = 14.0
	DefaultProfileStep = 0.5
	DefaultPlotWidth   = 1280
	DefaultPlotHeight  = 720
)

// Config holds all run settings
type Config struct {
	PH      float64       `mapstructure:"ph"`
	PKaFile string        `mapstructure:"pka_file"`
	Profile ProfileConfig `mapstructure:"profile"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Plot    PlotConfig    `mapstructure:"plot"`
	Verbose bool          `mapstructure:"verbose"`
}

// ProfileConfig holds the titration sweep range
type ProfileConfig struct {
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
	Step float64 `mapstructure:"step"`
}

// FilterConfig holds the default peptide list filters
type FilterConfig struct {
	MinLength int  `mapstructure:"min_length"`
	MaxLength int  `mapstructure:"max_length"`
	Unique    bool `mapstructure:"unique"`
}

// PlotConfig holds chart dimensions
type PlotConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// setDefaults registers every setting with viper so environment variables and
// partial settings files overlay cleanly
func setDefaults() {
	viper.SetDefault("ph", DefaultPH)
	viper.SetDefault("pka_file", "")
	viper.SetDefault("profile.min", DefaultProfileMin)
	viper.SetDefault("profile.max", DefaultProfileMax)
	viper.SetDefault("profile.step", DefaultProfileStep)
	viper.SetDefault("filter.min_length", 0)
	viper.SetDefault("filter.max_length", 0)
	viper.SetDefault("filter.unique", false)
	viper.SetDefault("plot.width", DefaultPlotWidth)
	viper.SetDefault("plot.height", DefaultPlotHeight)
	viper.SetDefault("verbose", false)
}

// Load reads settings. An explicitly given file must exist and parse; the
// implicit pepcharge.yaml in the working directory is optional.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix("pepcharge")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	} else {
		viper.SetConfigName(FileName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}

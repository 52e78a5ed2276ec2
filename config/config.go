// Package config holds the settings of the samples tools and loads them
// from defaults, an optional config file and SAMPLES_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-samples/algorithms/windowing"
	"github.com/RyanBlaney/sonido-samples/logging"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

// EnvPrefix is the prefix of environment overrides, so filter.passes is
// read from SAMPLES_FILTER_PASSES.
const EnvPrefix = "SAMPLES"

// Config is the complete tool configuration.
type Config struct {
	Session  SessionConfig  `json:"session" mapstructure:"session"`
	File     FileConfig     `json:"file" mapstructure:"file"`
	Filter   FilterConfig   `json:"filter" mapstructure:"filter"`
	Spectrum SpectrumConfig `json:"spectrum" mapstructure:"spectrum"`
}

// SessionConfig controls diagnostics.
type SessionConfig struct {
	Verbosity int  `json:"verbosity" mapstructure:"verbosity"` // 0 silent ... 5 trace
	Colors    bool `json:"colors" mapstructure:"colors"`
}

// FileConfig controls how samples files are written.
type FileConfig struct {
	Mode        string `json:"mode" mapstructure:"mode"` // "s", "g", "m", "b" or the mode name
	Precision   int    `json:"precision" mapstructure:"precision"`
	GzipLevel   int    `json:"gzip_level" mapstructure:"gzip_level"`
	Description string `json:"description,omitempty" mapstructure:"description"`
}

// FilterConfig holds the shaping parameters used when a command does not
// override them.
type FilterConfig struct {
	Passes      int     `json:"passes" mapstructure:"passes"`
	Width       float64 `json:"width" mapstructure:"width"`
	Decay       float64 `json:"decay" mapstructure:"decay"`
	CFDDelay    int     `json:"cfd_delay" mapstructure:"cfd_delay"`
	CFDFraction float64 `json:"cfd_fraction" mapstructure:"cfd_fraction"`
}

// SpectrumConfig selects the spectrum transform.
type SpectrumConfig struct {
	Window string `json:"window" mapstructure:"window"`
	// Order of the FFT; 0 pads the input to the next power of two.
	Order int `json:"order" mapstructure:"order"`
	Hop   int `json:"hop" mapstructure:"hop"`
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Verbosity: int(logging.Errors),
		Colors:    false,
	}
}

func DefaultFileConfig() FileConfig {
	return FileConfig{
		Mode:      "s",
		Precision: samplefile.DefaultPrecision,
		GzipLevel: -1, // gzip.DefaultCompression
	}
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Passes:      1,
		Width:       3,
		Decay:       0.9,
		CFDDelay:    4,
		CFDFraction: 0.3,
	}
}

func DefaultSpectrumConfig() SpectrumConfig {
	return SpectrumConfig{
		Window: "hamming",
		Order:  0,
		Hop:    0,
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Session:  DefaultSessionConfig(),
		File:     DefaultFileConfig(),
		Filter:   DefaultFilterConfig(),
		Spectrum: DefaultSpectrumConfig(),
	}
}

// LogVerbosity returns the session verbosity as a logging level selector.
func (c SessionConfig) LogVerbosity() logging.Verbosity {
	return logging.Verbosity(c.Verbosity)
}

// Writer converts the file settings into a samples file writer.
func (c FileConfig) Writer() (samplefile.Writer, error) {
	mode, err := samplefile.ParseMode(c.Mode)
	if err != nil {
		return samplefile.Writer{}, err
	}
	return samplefile.Writer{Mode: mode, Precision: c.Precision, GzipLevel: c.GzipLevel}, nil
}

// WindowType parses the configured window name.
func (c SpectrumConfig) WindowType() (windowing.Type, error) {
	return windowing.ParseType(c.Window)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Session.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("session.verbosity %d is negative", c.Session.Verbosity))
	}
	if _, err := c.File.Writer(); err != nil {
		errs = append(errs, fmt.Errorf("file.mode: %w", err))
	}
	if c.File.GzipLevel < -2 || c.File.GzipLevel > 9 {
		errs = append(errs, fmt.Errorf("file.gzip_level %d outside [-2, 9]", c.File.GzipLevel))
	}
	if c.Filter.Passes < 0 {
		errs = append(errs, fmt.Errorf("filter.passes %d is negative", c.Filter.Passes))
	}
	if c.Filter.Decay <= 0 || c.Filter.Decay >= 1 {
		errs = append(errs, fmt.Errorf("filter.decay %g outside (0, 1)", c.Filter.Decay))
	}
	if c.Filter.CFDDelay < 0 {
		errs = append(errs, fmt.Errorf("filter.cfd_delay %d is negative", c.Filter.CFDDelay))
	}
	if c.Filter.CFDFraction >= 1 {
		errs = append(errs, fmt.Errorf("filter.cfd_fraction %g is not below 1", c.Filter.CFDFraction))
	}
	if _, err := c.Spectrum.WindowType(); err != nil {
		errs = append(errs, fmt.Errorf("spectrum.window: %w", err))
	}
	if c.Spectrum.Order < 0 || c.Spectrum.Order > 30 {
		errs = append(errs, fmt.Errorf("spectrum.order %d outside [0, 30]", c.Spectrum.Order))
	}
	return errors.Join(errs...)
}

// setDefaults registers every key with viper, which is what makes the
// environment overrides visible to Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("session.verbosity", c.Session.Verbosity)
	v.SetDefault("session.colors", c.Session.Colors)
	v.SetDefault("file.mode", c.File.Mode)
	v.SetDefault("file.precision", c.File.Precision)
	v.SetDefault("file.gzip_level", c.File.GzipLevel)
	v.SetDefault("file.description", c.File.Description)
	v.SetDefault("filter.passes", c.Filter.Passes)
	v.SetDefault("filter.width", c.Filter.Width)
	v.SetDefault("filter.decay", c.Filter.Decay)
	v.SetDefault("filter.cfd_delay", c.Filter.CFDDelay)
	v.SetDefault("filter.cfd_fraction", c.Filter.CFDFraction)
	v.SetDefault("spectrum.window", c.Spectrum.Window)
	v.SetDefault("spectrum.order", c.Spectrum.Order)
	v.SetDefault("spectrum.hop", c.Spectrum.Hop)
}

// NewViper returns a viper instance primed with the defaults and the
// environment overrides. Flags can be bound to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file path, if not empty, into v and returns the
// validated configuration. Values set in the environment or bound flags
// take precedence over the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// 10 Oct 2026

// Package config holds the alignment settings which can be kept in a YAML
// file. Keys missing from a file keep their defaults. The tools let
// command line flags override whatever the file says.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrew-torda/hicalign/cmo"
	"github.com/andrew-torda/hicalign/reciprocal"
)

var ErrInvalid = errors.New("config: invalid setting")

// Config has settings for both aligners.
type Config struct {
	NumV     int     `yaml:"num_v"`     // eigenvectors, 0 for all
	MaxNumV  int     `yaml:"max_num_v"` // cap on num_v, 0 for none
	Method   string  `yaml:"method"`    // frobenius or score
	LongNW   bool    `yaml:"long_nw"`
	LongDist bool    `yaml:"long_dist"`
	Workers  int     `yaml:"workers"`  // 0 for one per CPU
	Penalty  float64 `yaml:"penalty"`  // boundary gap penalty, 0 for mean spacing
	MaxDist  float64 `yaml:"max_dist"` // furthest boundaries can be paired
}

// Default gives the settings used when nothing else is said.
func Default() *Config {
	o := cmo.DefaultOptions()
	return &Config{
		NumV:     o.NumV,
		MaxNumV:  o.MaxNumV,
		Method:   o.Method,
		LongNW:   o.LongNW,
		LongDist: o.LongDist,
		MaxDist:  reciprocal.DefaultMaxDist,
	}
}

// Validate checks the values make sense.
func (c *Config) Validate() error {
	switch {
	case c.Method != cmo.Frobenius && c.Method != cmo.NWScore:
		return fmt.Errorf("%w: method %q, want %s or %s", ErrInvalid, c.Method, cmo.Frobenius, cmo.NWScore)
	case c.NumV < 0:
		return fmt.Errorf("%w: num_v %d", ErrInvalid, c.NumV)
	case c.MaxNumV < 0:
		return fmt.Errorf("%w: max_num_v %d", ErrInvalid, c.MaxNumV)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Penalty < 0:
		return fmt.Errorf("%w: penalty %g", ErrInvalid, c.Penalty)
	case c.MaxDist < 0:
		return fmt.Errorf("%w: max_dist %g", ErrInvalid, c.MaxDist)
	}
	return nil
}

// Load reads settings from a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Save writes the settings to a YAML file.
func Save(path string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Cmo gives the contact map search options.
func (c *Config) Cmo() cmo.Options {
	return cmo.Options{
		NumV:     c.NumV,
		MaxNumV:  c.MaxNumV,
		Method:   c.Method,
		LongNW:   c.LongNW,
		LongDist: c.LongDist,
		Workers:  c.Workers,
	}
}

// Reciprocal gives the boundary aligner options.
func (c *Config) Reciprocal() reciprocal.Options {
	return reciprocal.Options{Penalty: c.Penalty, MaxDist: c.MaxDist}
}

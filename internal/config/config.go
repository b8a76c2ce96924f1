package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported pixel/weight precisions.
const (
	PrecisionFloat64 = "float64"
	PrecisionFloat32 = "float32"
)

// Config captures the runtime knobs for a training run. Hyperparameters are
// fixed and deliberately absent.
type Config struct {
	DataDir         string `yaml:"data_dir"`
	TrainImages     string `yaml:"train_images"`
	TrainLabels     string `yaml:"train_labels"`
	TestImages      string `yaml:"test_images"`
	TestLabels      string `yaml:"test_labels"`
	TrainCount      int    `yaml:"train_count"`
	TestCount       int    `yaml:"test_count"`
	Precision       string `yaml:"precision"`
	Display         int    `yaml:"display"`
	ValidateHeaders bool   `yaml:"validate_headers"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	DataDir         string
	TrainCount      int
	TestCount       int
	Precision       string
	Display         int
	ValidateHeaders bool
}

// Default returns the configuration for the full MNIST sets.
func Default() *Config {
	return &Config{
		TrainCount: 60000,
		TestCount:  10000,
		Precision:  PrecisionFloat64,
		Display:    10,
	}
}

// Load reads and validates a Config from YAML. Keys absent from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override. Display uses -1 as
// "unset" so that 0 can turn the display off.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.DataDir != "" {
		c.DataDir = o.DataDir
		c.TrainImages, c.TrainLabels = "", ""
		c.TestImages, c.TestLabels = "", ""
	}
	if o.TrainCount > 0 {
		c.TrainCount = o.TrainCount
	}
	if o.TestCount > 0 {
		c.TestCount = o.TestCount
	}
	if o.Precision != "" {
		c.Precision = o.Precision
	}
	if o.Display >= 0 {
		c.Display = o.Display
	}
	if o.ValidateHeaders {
		c.ValidateHeaders = true
	}
}

// ExplicitPaths reports whether all four data files are named directly.
func (c *Config) ExplicitPaths() bool {
	return c.TrainImages != "" && c.TrainLabels != "" && c.TestImages != "" && c.TestLabels != ""
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataDir == "" && !c.ExplicitPaths() {
		return errors.New("either data_dir or all of train_images, train_labels, test_images, test_labels must be set")
	}
	if c.TrainCount <= 0 {
		return fmt.Errorf("train_count must be > 0 (got %d)", c.TrainCount)
	}
	if c.TestCount <= 0 {
		return fmt.Errorf("test_count must be > 0 (got %d)", c.TestCount)
	}
	switch c.Precision {
	case PrecisionFloat64, PrecisionFloat32:
	default:
		return fmt.Errorf("precision must be %q or %q (got %q)", PrecisionFloat64, PrecisionFloat32, c.Precision)
	}
	if c.Display < 0 {
		return fmt.Errorf("display must be >= 0 (got %d)", c.Display)
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

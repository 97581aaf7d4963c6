// Package config loads optional repocat settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"repocat/pkg/catalog"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = ".repocat.yaml"

// Config mirrors the catalog arguments that can be set from a file.
// Pointer fields distinguish "unset" from zero values.
type Config struct {
	Output          *string  `yaml:"out"`
	MaxBytes        *int     `yaml:"max_bytes"`
	Workers         *int     `yaml:"workers"`
	Gzip            *bool    `yaml:"gzip"`
	Include         []string `yaml:"include"`
	ExtraIgnoreDirs []string `yaml:"extra_ignore_dirs"`
	TextExtensions  []string `yaml:"text_extensions"`
	SampleSize      *int     `yaml:"sample_size"`
	NonPrintRatio   *float64 `yaml:"non_printable_threshold"`
}

// LoadConfig reads the file at path. A missing file yields an empty Config
// without error; a malformed one is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Apply copies every value set in the file onto args. List values are
// appended to whatever args already holds.
func (c *Config) Apply(args *catalog.Arguments) {
	if c.Output != nil {
		args.Output = *c.Output
	}
	if c.MaxBytes != nil {
		args.MaxBytes = *c.MaxBytes
	}
	if c.Workers != nil {
		args.Workers = *c.Workers
	}
	if c.Gzip != nil {
		args.Gzip = *c.Gzip
	}
	if c.SampleSize != nil {
		args.SampleSize = *c.SampleSize
	}
	if c.NonPrintRatio != nil {
		args.NonPrintRatio = *c.NonPrintRatio
	}
	args.Include = append(args.Include, c.Include...)
	args.ExtraIgnoreDirs = append(args.ExtraIgnoreDirs, c.ExtraIgnoreDirs...)
	args.ExtraTextExts = append(args.ExtraTextExts, c.TextExtensions...)
}

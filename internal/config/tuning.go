package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/cookierun/internal/engine"
	"gopkg.in/yaml.v3"
)

// LoadTuning reads engine tuning from a YAML file. Keys that are not set
// keep their default value. An empty path returns the defaults.
func LoadTuning(path string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML tuning over the defaults and validates the result.
func ParseTuning(data []byte) (engine.Config, error) {
	cfg := engine.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse tuning: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

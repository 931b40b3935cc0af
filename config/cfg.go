// Package config handles program configuration: embedded defaults overlaid
// by an optional YAML file, plus preparation of the program logger.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

//go:embed config.default.yaml
var defaultConfig []byte

type TemplateFieldName string

// NOTE: must match yaml field names below, alternative is to use struct
// field names and reflection which I want to avoid for now
const OutputNameTemplateFieldName TemplateFieldName = "output_name_template"

type (
	DocumentConfig struct {
		OutputNameTemplate string `yaml:"output_name_template"`
		Pretty             bool   `yaml:"pretty"`
	}

	Config struct {
		Version  int            `yaml:"version"`
		Document DocumentConfig `yaml:"document"`
		Logging  LoggingConfig  `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposing its values on top of embedded defaults. An empty path
// returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) == 0 {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported configuration version: %d", cfg.Version)
	}
	return cfg, nil
}

// Prepare returns the default embedded configuration as a byte slice.
func Prepare() ([]byte, error) {
	return append([]byte{}, defaultConfig...), nil
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

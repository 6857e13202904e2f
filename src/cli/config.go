// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema []byte

// configEnv names the environment variable consulted when --config is empty.
const configEnv = "C509_CONFIG_FILE"

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// ErrInvalidConfig is returned when a config file does not match the schema.
var ErrInvalidConfig = errors.New("invalid config file")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	configFormatJSON configFormat = iota
	configFormatYAML
)

// Config holds the settings a config file may override.
type Config struct {
	// Workers bounds concurrent conversions in batch and fetch.
	Workers int `json:"workers" yaml:"workers"`
	// TimeoutSeconds bounds each TLS dial and handshake.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	// DefaultPort is used for fetch targets given without a port.
	DefaultPort int  `json:"defaultPort" yaml:"defaultPort"`
	PEM         bool `json:"pem" yaml:"pem"`
	// LogFormat is "text" or "json".
	LogFormat string `json:"logFormat" yaml:"logFormat"`
}

func defaultConfig() *Config {
	return &Config{
		Workers:        4,
		TimeoutSeconds: 10,
		DefaultPort:    443,
		LogFormat:      logFormatText,
	}
}

// detectConfigFormat picks the parser from the file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// documentLoader returns a schema loader for the raw config document.
func documentLoader(data []byte, format configFormat) (gojsonschema.JSONLoader, error) {
	if format == configFormatJSON {
		return gojsonschema.NewBytesLoader(data), nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return gojsonschema.NewGoLoader(doc), nil
}

func validateConfig(data []byte, format configFormat) error {
	doc, err := documentLoader(data, format)
	if err != nil {
		return err
	}
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(configSchema), doc)
	if err != nil {
		return fmt.Errorf("failed to validate config file: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// loadConfig returns the defaults overlaid with the file at configPath, or
// at $C509_CONFIG_FILE when configPath is empty. No path means defaults.
func loadConfig(configPath string) (*Config, error) {
	config := defaultConfig()

	if configPath == "" {
		configPath = os.Getenv(configEnv)
	}
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := detectConfigFormat(configPath)
	if err := validateConfig(data, format); err != nil {
		return nil, err
	}
	if err := unmarshalConfig(data, config, format); err != nil {
		return nil, err
	}
	return config, nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures the settings stored in .poet/config.yaml.
//
// Example YAML:
//
//	logging:
//	  level: debug
//	java:
//	  version: "11"
//	discovery:
//	  exclude: ["build/"]
//
// Unknown keys are rejected so typos surface early. Use Default() when no
// config file is found.
type Config struct {
	Logging   Logging   `yaml:"logging"`
	Java      Java      `yaml:"java"`
	Discovery Discovery `yaml:"discovery"`
}

// Logging captures logging-specific settings.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Java holds the compatibility level written into generated build files.
type Java struct {
	Version string `yaml:"version"`
}

// Discovery controls which directories are searched for blueprint files.
type Discovery struct {
	Exclude []string `yaml:"exclude"`
}

const (
	relPath            = ".poet/config.yaml"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultJavaVersion = "1.8"
)

var defaultExclusions = []string{".git/", ".gradle/", "build/"}

// Default returns a Config populated with hard-coded defaults.
func Default() *Config {
	return &Config{
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Java: Java{
			Version: defaultJavaVersion,
		},
		Discovery: Discovery{
			Exclude: append([]string(nil), defaultExclusions...),
		},
	}
}

// Load reads .poet/config.yaml located under root. When the file does not
// exist the function returns Default() with a nil error.
func Load(root string) (*Config, error) {
	if root == "" {
		return nil, fmt.Errorf("root must not be empty")
	}
	return LoadFS(os.DirFS(root))
}

// LoadFS performs the same operation as Load but works directly on an
// fs.FS.
func LoadFS(fsys fs.FS) (*Config, error) {
	data, err := fs.ReadFile(fsys, relPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", relPath, err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
	if cfg.Java.Version == "" {
		cfg.Java.Version = defaultJavaVersion
	}
	// An explicit empty list disables the default exclusions.
	if cfg.Discovery.Exclude == nil {
		cfg.Discovery.Exclude = append([]string(nil), defaultExclusions...)
	}
	return &cfg, nil
}

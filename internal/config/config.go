// Package config provides configuration loading and structs for the simcheck server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host               string   `yaml:"host" validate:"required"`
	Port               int      `yaml:"port" validate:"min=1,max=65535"`
	RequestTimeoutSecs int      `yaml:"request_timeout_secs" validate:"min=1"`
	MaxUploadBytes     int64    `yaml:"max_upload_bytes" validate:"min=1"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
}

// AnalysisConfig holds segmentation, scoring and upload limits.
type AnalysisConfig struct {
	// DefaultThreshold is used when a request omits the threshold. Nil means 0.3;
	// an explicit 0 is kept.
	DefaultThreshold  *float64 `yaml:"default_threshold" validate:"omitempty,min=0,max=1"`
	MaxDocuments      int      `yaml:"max_documents" validate:"min=2"`
	Extensions        []string `yaml:"extensions" validate:"min=1,dive,startswith=."`
	Workers           int      `yaml:"workers" validate:"min=0"`
	BlockSize         int      `yaml:"block_size" validate:"min=1"`
	AbbreviationGuard *bool    `yaml:"abbreviation_guard"`
	ParagraphBreaks   bool     `yaml:"paragraph_breaks"`
}

// DefaultThresholdValue is the threshold used when neither the request nor the config sets one.
const DefaultThresholdValue = 0.3

// DefaultThresholdOrDefault returns the configured default threshold, or 0.3 when unset.
func (a *AnalysisConfig) DefaultThresholdOrDefault() float64 {
	if a.DefaultThreshold != nil {
		return *a.DefaultThreshold
	}
	return DefaultThresholdValue
}

// AbbreviationGuardOrDefault returns whether the abbreviation guard is on; defaults to true when unset.
func (a *AnalysisConfig) AbbreviationGuardOrDefault() bool {
	if a.AbbreviationGuard != nil {
		return *a.AbbreviationGuard
	}
	return true
}

// AllowsExtension reports whether ext (with leading dot) is in the allow-list, case-insensitively.
func (a *AnalysisConfig) AllowsExtension(ext string) bool {
	for _, e := range a.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Load reads and parses the config file at path, applies environment overrides and
// defaults, and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges after defaults have been applied.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Environment variables that override file values.
const (
	EnvHost    = "SIMCHECK_HOST"
	EnvPort    = "SIMCHECK_PORT"
	EnvDebug   = "SIMCHECK_DEBUG"
	EnvWorkers = "SIMCHECK_WORKERS"
)

// ApplyEnv overrides cfg with any SIMCHECK_* variables present in the environment.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		cfg.Analysis.Workers = workers
	}
	return nil
}

package config

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// MaskYAMLConfig represents the complete mask.yaml file structure
type MaskYAMLConfig struct {
	Server *ServerYAMLConfig        `yaml:"server"`
	String map[string]StringRuleSet `yaml:"string"`
	Regex  map[string]RegexRuleSet  `yaml:"regex"`
	JSON   map[string]JSONRuleSet   `yaml:"json"`
}

// ServerYAMLConfig holds HTTP server settings from YAML. Durations are
// strings ("10s") parsed during resolution.
type ServerYAMLConfig struct {
	Port         int    `yaml:"port,omitempty"`
	ReadTimeout  string `yaml:"read_timeout,omitempty"`
	WriteTimeout string `yaml:"write_timeout,omitempty"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
// This is the primary entry point for configuration loading.
//
// Steps performed:
//  1. Load mask.yaml from configDir
//  2. Expand environment variables
//  3. Parse YAML into typed rule-sets
//  4. Merge built-in + user-defined rule-sets (user overrides built-in)
//  5. Resolve server settings with defaults
//  6. Validate every pattern and path
//  7. Return Config ready for use
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	stats := cfg.Stats()
	log.Info("Configuration initialized successfully",
		"string_keys", stats.StringKeys,
		"regex_keys", stats.RegexKeys,
		"json_keys", stats.JSONKeys)

	return cfg, nil
}

// load is the internal loader (not exported)
func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{
		configDir: configDir,
	}

	maskYAML, err := loader.loadMaskYAML()
	if err != nil {
		return nil, NewLoadError("mask.yaml", err)
	}

	// Merge built-in + user-defined rule-sets (user overrides built-in).
	// The merge target is a fresh copy so the built-in singleton stays
	// pristine across reloads in tests.
	mask := cloneMaskConfig(GetBuiltinConfig())
	user := &MaskConfig{String: maskYAML.String, JSON: maskYAML.JSON}
	if err := mergo.Merge(mask, user, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge mask config: %w", err)
	}
	// A user regex rule-set replaces the built-in one wholesale, same as
	// the slice-valued sections; mergo would merge the nested maps entry
	// by entry instead.
	for key, rules := range maskYAML.Regex {
		mask.Regex[key] = rules
	}

	server := resolveServerConfig(maskYAML.Server)

	return &Config{
		configDir: configDir,
		Server:    server,
		Mask:      mask,
	}, nil
}

// validate performs comprehensive validation on loaded configuration
func validate(cfg *Config) error {
	validator := NewValidator(cfg)
	return validator.ValidateAll()
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	// Expand environment variables using {{.VAR}} template syntax; $ is
	// left alone because the file is full of regex patterns and JSONPaths.
	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return nil
}

func (l *configLoader) loadMaskYAML() (*MaskYAMLConfig, error) {
	var config MaskYAMLConfig

	// Initialize maps to avoid nil maps
	config.String = make(map[string]StringRuleSet)
	config.Regex = make(map[string]RegexRuleSet)
	config.JSON = make(map[string]JSONRuleSet)

	if err := l.loadYAML("mask.yaml", &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// cloneMaskConfig returns a copy of cfg that merging user rules into can
// never reach back through. Top-level maps are fresh, and the map-valued
// regex rule-sets are cloned as well. The string and json rule-set slices
// stay shared; they are only ever replaced wholesale, never appended to.
func cloneMaskConfig(cfg *MaskConfig) *MaskConfig {
	clone := &MaskConfig{
		String: make(map[string]StringRuleSet, len(cfg.String)),
		Regex:  make(map[string]RegexRuleSet, len(cfg.Regex)),
		JSON:   make(map[string]JSONRuleSet, len(cfg.JSON)),
	}
	maps.Copy(clone.String, cfg.String)
	maps.Copy(clone.JSON, cfg.JSON)
	for key, rules := range cfg.Regex {
		clone.Regex[key] = maps.Clone(rules)
	}
	return clone
}

// resolveServerConfig resolves HTTP server configuration from YAML,
// applying defaults.
func resolveServerConfig(sys *ServerYAMLConfig) *ServerConfig {
	cfg := DefaultServerConfig()

	if sys == nil {
		return cfg
	}

	if sys.Port > 0 {
		cfg.Port = sys.Port
	}
	if sys.ReadTimeout != "" {
		if d, err := time.ParseDuration(sys.ReadTimeout); err == nil {
			cfg.ReadTimeout = d
		} else {
			slog.Warn("Invalid read_timeout in server config, using default",
				"value", sys.ReadTimeout,
				"default", cfg.ReadTimeout,
				"error", err)
		}
	}
	if sys.WriteTimeout != "" {
		if d, err := time.ParseDuration(sys.WriteTimeout); err == nil {
			cfg.WriteTimeout = d
		} else {
			slog.Warn("Invalid write_timeout in server config, using default",
				"value", sys.WriteTimeout,
				"default", cfg.WriteTimeout,
				"error", err)
		}
	}

	return cfg
}

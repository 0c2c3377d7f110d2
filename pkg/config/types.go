package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// MaskConfig is the masking rule snapshot: three sections keyed by logical
// name, one per masking strategy. Loaded once at startup and never mutated
// afterward, so it is safe to share across goroutines without locking.
type MaskConfig struct {
	String map[string]StringRuleSet `yaml:"string"`
	Regex  map[string]RegexRuleSet  `yaml:"regex"`
	JSON   map[string]JSONRuleSet   `yaml:"json"`
}

// StringRule replaces every match of Pattern with the Replacement literal.
type StringRule struct {
	Pattern     string
	Replacement string
}

// StringRuleSet is an ordered list of string rules. It decodes from a YAML
// mapping (pattern: replacement) preserving file order — rules apply
// cumulatively, so application order is part of the configuration.
type StringRuleSet []StringRule

// UnmarshalYAML decodes a mapping node into the ordered rule list.
func (rs *StringRuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: string rule-set must be a mapping of pattern to replacement", ErrInvalidYAML)
	}
	rules := make(StringRuleSet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		rules = append(rules, StringRule{
			Pattern:     node.Content[i].Value,
			Replacement: node.Content[i+1].Value,
		})
	}
	*rs = rules
	return nil
}

// RegexRuleSet maps a rule name to a single regex pattern. Pure lookup,
// no ordering semantics.
type RegexRuleSet map[string]string

// JSONRule masks the capture groups of Pattern within the value(s) selected
// by the JSONPath expression Path.
type JSONRule struct {
	Path    string
	Pattern string
}

// JSONRuleSet is an ordered list of JSONPath rules, decoded from a YAML
// mapping (path: pattern) the same way as StringRuleSet.
type JSONRuleSet []JSONRule

// UnmarshalYAML decodes a mapping node into the ordered rule list.
func (rs *JSONRuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: json rule-set must be a mapping of json-path to pattern", ErrInvalidYAML)
	}
	rules := make(JSONRuleSet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		rules = append(rules, JSONRule{
			Path:    node.Content[i].Value,
			Pattern: node.Content[i+1].Value,
		})
	}
	*rs = rules
	return nil
}

// ServerConfig holds resolved HTTP server settings.
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns server settings used when mask.yaml has no
// server section.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Config is the root runtime configuration, ready for use after Initialize.
type Config struct {
	configDir string

	Server *ServerConfig
	Mask   *MaskConfig
}

// Stats summarizes how many rule-set keys each section carries.
type Stats struct {
	StringKeys int
	RegexKeys  int
	JSONKeys   int
}

// Stats returns section sizes for startup logging and health reporting.
func (c *Config) Stats() Stats {
	return Stats{
		StringKeys: len(c.Mask.String),
		RegexKeys:  len(c.Mask.Regex),
		JSONKeys:   len(c.Mask.JSON),
	}
}

// ConfigDir returns the directory the configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound indicates configuration file was not found
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidYAML indicates YAML parsing failed
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrValidationFailed indicates configuration validation failed
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrInvalidPattern indicates a rule carries a regex that does not compile
	ErrInvalidPattern = errors.New("invalid regex pattern")

	// ErrInvalidPath indicates a json rule carries an unparseable JSONPath
	ErrInvalidPath = errors.New("invalid json path")

	// ErrMissingRequiredField indicates a required field is missing
	ErrMissingRequiredField = errors.New("missing required field")
)

// ValidationError wraps rule validation errors with section and key context
type ValidationError struct {
	Section string // Section being validated (string, regex, json, server)
	Key     string // Logical key of the rule-set
	Rule    string // Offending rule (pattern, name, or path; optional)
	Err     error  // Underlying error
}

// Error returns formatted error message
func (e *ValidationError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s section, key '%s': rule '%s': %v", e.Section, e.Key, e.Rule, e.Err)
	}
	return fmt.Sprintf("%s section, key '%s': %v", e.Section, e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(section, key, rule string, err error) *ValidationError {
	return &ValidationError{
		Section: section,
		Key:     key,
		Rule:    rule,
		Err:     err,
	}
}

// LoadError wraps configuration loading errors with file context
type LoadError struct {
	File string // Configuration file being loaded
	Err  error  // Underlying error
}

// Error returns formatted error message
func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new load error
func NewLoadError(file string, err error) *LoadError {
	return &LoadError{
		File: file,
		Err:  err,
	}
}

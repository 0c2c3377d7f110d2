package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ohler55/ojg/jp"
)

// Validator performs load-time checks on a configuration snapshot so that
// malformed rules surface at startup instead of at mask time.
type Validator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateAll validates every rule in every section and returns all
// problems found, joined.
func (v *Validator) ValidateAll() error {
	var errs []error

	errs = append(errs, v.validateStringSection()...)
	errs = append(errs, v.validateRegexSection()...)
	errs = append(errs, v.validateJSONSection()...)

	return errors.Join(errs...)
}

func (v *Validator) validateStringSection() []error {
	var errs []error
	for key, rules := range v.cfg.Mask.String {
		for _, rule := range rules {
			if rule.Pattern == "" {
				errs = append(errs, NewValidationError("string", key, "", ErrMissingRequiredField))
				continue
			}
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				errs = append(errs, NewValidationError("string", key, rule.Pattern,
					fmt.Errorf("%w: %v", ErrInvalidPattern, err)))
			}
		}
	}
	return errs
}

func (v *Validator) validateRegexSection() []error {
	var errs []error
	for key, rules := range v.cfg.Mask.Regex {
		for name, pattern := range rules {
			if pattern == "" {
				errs = append(errs, NewValidationError("regex", key, name, ErrMissingRequiredField))
				continue
			}
			if _, err := regexp.Compile(pattern); err != nil {
				errs = append(errs, NewValidationError("regex", key, name,
					fmt.Errorf("%w: %v", ErrInvalidPattern, err)))
			}
		}
	}
	return errs
}

func (v *Validator) validateJSONSection() []error {
	var errs []error
	for key, rules := range v.cfg.Mask.JSON {
		for _, rule := range rules {
			if _, err := jp.ParseString(rule.Path); err != nil {
				errs = append(errs, NewValidationError("json", key, rule.Path,
					fmt.Errorf("%w: %v", ErrInvalidPath, err)))
			}
			if rule.Pattern == "" {
				errs = append(errs, NewValidationError("json", key, rule.Path, ErrMissingRequiredField))
				continue
			}
			if _, err := regexp.Compile(rule.Pattern); err != nil {
				errs = append(errs, NewValidationError("json", key, rule.Path,
					fmt.Errorf("%w: %v", ErrInvalidPattern, err)))
			}
		}
	}
	return errs
}

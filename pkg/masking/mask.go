// Package masking redacts sensitive values from strings and JSON documents
// before they reach a log sink, driven by the rule-sets in the mask
// configuration. Three strategies are exposed: literal substitution on flat
// strings, capture-group masking against a single named regex, and
// JSONPath-driven masking of structured documents.
package masking

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/codeready-toolchain/logmask/pkg/config"
)

// MaskChar is the replacement character for masked content.
const MaskChar = '*'

// Service applies the configured masking rules. Created once at application
// startup (singleton). Thread-safe and stateless aside from the
// compiled-pattern cache.
type Service struct {
	cfg   *config.MaskConfig
	cache *PatternCache
}

// NewService creates a masking service over an immutable rule snapshot.
func NewService(cfg *config.MaskConfig) *Service {
	s := &Service{
		cfg:   cfg,
		cache: NewPatternCache(),
	}

	slog.Info("Masking service initialized",
		"string_keys", len(cfg.String),
		"regex_keys", len(cfg.Regex),
		"json_keys", len(cfg.JSON))

	return s
}

// MaskString applies the ordered rule list configured under key in the
// string section. Every match of each rule's pattern is replaced with the
// rule's literal replacement; rules apply cumulatively, each rule's output
// feeding the next. Unknown keys pass the input through unchanged.
//
// A rule whose pattern fails to compile is skipped with an error log;
// load-time validation normally rejects such configurations before this
// can happen.
func (s *Service) MaskString(input, key string) string {
	rules, ok := s.cfg.String[key]
	if !ok {
		return input
	}

	output := input
	for _, rule := range rules {
		re, err := s.cache.GetOrCompile(rule.Pattern)
		if err != nil {
			slog.Error("Failed to compile string masking rule, skipping",
				"key", key, "pattern", rule.Pattern, "error", err)
			continue
		}
		output = re.ReplaceAllString(output, rule.Replacement)
	}
	return output
}

// MaskRegex masks input against the single pattern configured under
// key/name in the regex section, starring out each capture group to its
// own length. Missing key, missing name, or an empty pattern passes the
// input through unchanged.
func (s *Service) MaskRegex(input, key, name string) string {
	rules, ok := s.cfg.Regex[key]
	if !ok {
		return input
	}
	pattern := rules[name]
	if pattern == "" {
		return input
	}
	return s.maskGroups(input, MaskChar, pattern)
}

// maskGroups masks the capturing groups of pattern within input: each
// group's characters become maskChar, everything outside the groups is
// kept. The pattern must match the entire input; when it does not, the
// input is returned untouched (no match, no redaction). An empty pattern
// or any compile failure masks the whole input instead — over-masking is
// preferred to leaking.
//
// The output always has the same character length as the input.
func (s *Service) maskGroups(input string, maskChar rune, pattern string) string {
	if input == "" {
		return input
	}
	if pattern == "" {
		return maskAll(input, maskChar)
	}

	re, err := s.cache.GetOrCompile(anchored(pattern))
	if err != nil {
		slog.Error("Failed to compile masking pattern, masking whole value",
			"pattern", pattern, "error", err)
		return maskAll(input, maskChar)
	}

	m := re.FindStringSubmatchIndex(input)
	if m == nil {
		return input
	}

	// Mark the byte spans covered by each capturing group, then rebuild
	// the string in a single pass: one maskChar per rune inside a group,
	// everything else copied through. Overlapping or nested groups just
	// mark the same bytes twice.
	group := make([]bool, len(input))
	for g := 1; 2*g+1 < len(m); g++ {
		start, end := m[2*g], m[2*g+1]
		if start < 0 {
			continue // group did not participate in the match
		}
		for i := start; i < end; i++ {
			group[i] = true
		}
	}

	var b strings.Builder
	b.Grow(len(input))
	for i, r := range input {
		if group[i] {
			b.WriteRune(maskChar)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// anchored wraps pattern so it only matches the whole input. The wrapped
// source is the cache key; the non-capturing group leaves group numbering
// unaffected.
func anchored(pattern string) string {
	return `\A(?:` + pattern + `)\z`
}

// maskAll replaces every character of input with maskChar.
func maskAll(input string, maskChar rune) string {
	return strings.Repeat(string(maskChar), utf8.RuneCountInString(input))
}

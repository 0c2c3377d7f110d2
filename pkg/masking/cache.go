package masking

import (
	"regexp"
	"sync"
)

// PatternCache caches compiled regular expressions keyed by their source
// text, amortizing compilation across repeated masking calls. Safe for
// concurrent use. Two callers compiling the same source at the same time
// both store equivalent values, so last write wins harmlessly. Entries
// live for the process lifetime; growth is bounded by the finite set of
// configured patterns.
type PatternCache struct {
	patterns sync.Map // pattern source text → *regexp.Regexp
}

// NewPatternCache creates an empty cache.
func NewPatternCache() *PatternCache {
	return &PatternCache{}
}

// GetOrCompile returns the compiled form of pattern, compiling and caching
// it on first use. Compilation failures are not cached.
func (c *PatternCache) GetOrCompile(pattern string) (*regexp.Regexp, error) {
	if v, ok := c.patterns.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	c.patterns.Store(pattern, re)
	return re, nil
}

package config

import (
	"sync"
)

var (
	builtinConfig     *MaskConfig
	builtinConfigOnce sync.Once
)

// GetBuiltinConfig returns the built-in masking rule-sets (thread-safe,
// lazy-initialized). User-defined rule-sets with the same logical key
// override these wholesale.
func GetBuiltinConfig() *MaskConfig {
	builtinConfigOnce.Do(initBuiltinConfig)
	return builtinConfig
}

func initBuiltinConfig() {
	builtinConfig = &MaskConfig{
		// Query-string credentials, the most common access-log leak.
		String: map[string]StringRuleSet{
			"query": {
				{Pattern: `password=[^&]*`, Replacement: "password=******"},
				{Pattern: `token=[^&]*`, Replacement: "token=******"},
				{Pattern: `api_key=[^&]*`, Replacement: "api_key=******"},
			},
		},
		// Credential-bearing header values: scheme stays visible, the
		// credential itself is starred out to its own length.
		Regex: map[string]RegexRuleSet{
			"header": {
				"authorization": `(?:Bearer|Basic) (\S+)`,
				"cookie":        `(.*)`,
			},
		},
		JSON: map[string]JSONRuleSet{},
	}
}

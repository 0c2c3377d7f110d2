package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMaskYAML writes content as mask.yaml into a temp config dir and
// returns the dir.
func writeMaskYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mask.yaml"), []byte(content), 0o644))
	return dir
}

func TestInitialize_LoadsAllSections(t *testing.T) {
	dir := writeMaskYAML(t, `
server:
  port: 9090
  read_timeout: 5s
string:
  auth:
    "abc\\d+": "REDACTED"
regex:
  card:
    pan: "(\\d{4})-(\\d{4})-(\\d{4})-(\\d{4})"
json:
  userRecord:
    "$.user.ssn": "(\\d{3})-(\\d{2})-(\\d{4})"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)

	require.Contains(t, cfg.Mask.String, "auth")
	assert.Equal(t, StringRuleSet{{Pattern: `abc\d+`, Replacement: "REDACTED"}}, cfg.Mask.String["auth"])

	require.Contains(t, cfg.Mask.Regex, "card")
	assert.Equal(t, `(\d{4})-(\d{4})-(\d{4})-(\d{4})`, cfg.Mask.Regex["card"]["pan"])

	require.Contains(t, cfg.Mask.JSON, "userRecord")
	assert.Equal(t, JSONRuleSet{{Path: "$.user.ssn", Pattern: `(\d{3})-(\d{2})-(\d{4})`}}, cfg.Mask.JSON["userRecord"])
}

func TestInitialize_MissingFile(t *testing.T) {
	_, err := Initialize(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestInitialize_InvalidYAML(t *testing.T) {
	dir := writeMaskYAML(t, "string: [not: a: mapping")
	_, err := Initialize(context.Background(), dir)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestInitialize_InvalidRegexRejected(t *testing.T) {
	dir := writeMaskYAML(t, `
regex:
  card:
    pan: "([unclosed"
`)
	_, err := Initialize(context.Background(), dir)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestInitialize_InvalidJSONPathRejected(t *testing.T) {
	dir := writeMaskYAML(t, `
json:
  k:
    "$.[": "(\\d+)"
`)
	_, err := Initialize(context.Background(), dir)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestInitialize_EmptyPatternRejected(t *testing.T) {
	dir := writeMaskYAML(t, `
regex:
  card:
    pan: ""
`)
	_, err := Initialize(context.Background(), dir)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestInitialize_StringRuleOrderPreserved(t *testing.T) {
	dir := writeMaskYAML(t, `
string:
  ordered:
    "first": "1"
    "second": "2"
    "third": "3"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	rules := cfg.Mask.String["ordered"]
	require.Len(t, rules, 3)
	assert.Equal(t, "first", rules[0].Pattern)
	assert.Equal(t, "second", rules[1].Pattern)
	assert.Equal(t, "third", rules[2].Pattern)
}

func TestInitialize_ExpandsEnvTemplates(t *testing.T) {
	t.Setenv("MASK_REPLACEMENT", "HIDDEN")
	dir := writeMaskYAML(t, `
string:
  auth:
    "abc\\d+": "{{.MASK_REPLACEMENT}}"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "HIDDEN", cfg.Mask.String["auth"][0].Replacement)
}

func TestInitialize_DollarSignsSurviveExpansion(t *testing.T) {
	dir := writeMaskYAML(t, `
json:
  k:
    "$.user.ssn": "^secret.*$"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "$.user.ssn", cfg.Mask.JSON["k"][0].Path)
	assert.Equal(t, "^secret.*$", cfg.Mask.JSON["k"][0].Pattern)
}

func TestInitialize_BuiltinRuleSetsPresent(t *testing.T) {
	dir := writeMaskYAML(t, `
string:
  auth:
    "abc\\d+": "REDACTED"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	// Built-in rule-sets survive alongside user ones.
	assert.Contains(t, cfg.Mask.String, "query")
	assert.Contains(t, cfg.Mask.Regex, "header")
	assert.Contains(t, cfg.Mask.String, "auth")
}

func TestInitialize_UserOverridesBuiltin(t *testing.T) {
	dir := writeMaskYAML(t, `
string:
  query:
    "sid=[^&]*": "sid=******"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	// The user rule-set replaces the built-in one wholesale.
	require.Len(t, cfg.Mask.String["query"], 1)
	assert.Equal(t, "sid=[^&]*", cfg.Mask.String["query"][0].Pattern)
}

func TestInitialize_UserOverridesBuiltinRegexWholesale(t *testing.T) {
	dir := writeMaskYAML(t, `
regex:
  header:
    authorization: "Token (\\S+)"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	// Same wholesale semantics as the string section: the built-in
	// cookie rule does not survive alongside the user's rule-set.
	require.Len(t, cfg.Mask.Regex["header"], 1)
	assert.Equal(t, `Token (\S+)`, cfg.Mask.Regex["header"]["authorization"])
	assert.NotContains(t, cfg.Mask.Regex["header"], "cookie")
}

func TestInitialize_LeavesBuiltinSingletonUntouched(t *testing.T) {
	builtinAuth := GetBuiltinConfig().Regex["header"]["authorization"]
	builtinQueryRules := len(GetBuiltinConfig().String["query"])

	dir := writeMaskYAML(t, `
string:
  query:
    "sid=[^&]*": "sid=******"
regex:
  header:
    authorization: "Token (\\S+)"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, `Token (\S+)`, cfg.Mask.Regex["header"]["authorization"])

	// The load merged into a copy; the singleton still serves the next
	// Initialize its original rules.
	builtin := GetBuiltinConfig()
	assert.Equal(t, builtinAuth, builtin.Regex["header"]["authorization"])
	assert.Len(t, builtin.String["query"], builtinQueryRules)
	assert.Contains(t, builtin.Regex["header"], "cookie")

	// A later load without overrides starts from the original built-ins,
	// not the previous load's user rules.
	cfg2, err := Initialize(context.Background(), writeMaskYAML(t, `string: {}`))
	require.NoError(t, err)
	assert.Equal(t, builtinAuth, cfg2.Mask.Regex["header"]["authorization"])
	assert.Len(t, cfg2.Mask.String["query"], builtinQueryRules)
}

func TestInitialize_ServerDefaults(t *testing.T) {
	dir := writeMaskYAML(t, `
string: {}
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, DefaultServerConfig(), cfg.Server)
}

func TestInitialize_InvalidDurationFallsBack(t *testing.T) {
	dir := writeMaskYAML(t, `
server:
  read_timeout: "not-a-duration"
`)

	cfg, err := Initialize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig().ReadTimeout, cfg.Server.ReadTimeout)
}

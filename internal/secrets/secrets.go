// Package secrets implements the hardcoded-secret decision rule: a pure,
// order-preserving filter over (field name, literal value) facts extracted
// from source text by the callers in internal/analyzers and
// internal/configscan.
package secrets

import (
	"fmt"
	"regexp"
	"strings"
)

// Position locates a field initialization in source. The scanner never
// interprets it; it is copied through to the matching finding.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// FieldInit is one extracted field initialization with a literal value.
// Extractors must only produce entries whose initializer is a literal
// constant; computed expressions never become a FieldInit.
type FieldInit struct {
	FieldName    string
	LiteralValue string
	Position     Position
}

// Finding is one suspected hardcoded secret.
type Finding struct {
	FieldName    string
	LiteralValue string
	Position     Position
	Message      string
}

// defaultNameSubstrings are matched case-insensitively against field names.
var defaultNameSubstrings = []string{"apikey", "token", "secret", "password", "auth"}

// defaultValuePrefixes are matched case-insensitively against literal values.
var defaultValuePrefixes = []string{"sk_", "token_", "apikey_"}

// DefaultMinRunLength is the minimum length of a base64-alphabet run for a
// value to be considered secret-like on density alone.
const DefaultMinRunLength = 32

// nameSeparators are stripped from field names before substring matching so
// snake_case, kebab-case and dotted keys (api_key, access-token,
// client.secret) match the same substrings camelCase names do.
var nameSeparators = strings.NewReplacer("_", "", "-", "", ".", "")

// Matcher holds the compiled field-name and value predicates. A zero Matcher
// is not usable; construct one with NewMatcher. Matchers are immutable after
// construction and safe for concurrent use.
type Matcher struct {
	nameSubstrings []string
	valuePrefixes  []string
	runPattern     *regexp.Regexp
}

// Option customizes a Matcher beyond the built-in heuristics.
type Option func(*matcherConfig)

type matcherConfig struct {
	extraNames    []string
	extraPrefixes []string
	minRun        int
}

// WithNameSubstrings adds field-name substrings to the built-in set.
func WithNameSubstrings(names ...string) Option {
	return func(c *matcherConfig) { c.extraNames = append(c.extraNames, names...) }
}

// WithValuePrefixes adds value prefixes to the built-in set.
func WithValuePrefixes(prefixes ...string) Option {
	return func(c *matcherConfig) { c.extraPrefixes = append(c.extraPrefixes, prefixes...) }
}

// WithMinRunLength overrides the base64-run length threshold. Values < 1
// fall back to the default.
func WithMinRunLength(n int) Option {
	return func(c *matcherConfig) { c.minRun = n }
}

// NewMatcher builds a Matcher with the built-in heuristics plus any options.
func NewMatcher(opts ...Option) *Matcher {
	cfg := matcherConfig{minRun: DefaultMinRunLength}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.minRun < 1 {
		cfg.minRun = DefaultMinRunLength
	}
	m := &Matcher{
		nameSubstrings: append([]string{}, defaultNameSubstrings...),
		valuePrefixes:  append([]string{}, defaultValuePrefixes...),
		// The alphabet already covers both cases; the run check is
		// case-sensitive by construction.
		runPattern: regexp.MustCompile(fmt.Sprintf(`[A-Za-z0-9+/=]{%d,}`, cfg.minRun)),
	}
	for _, n := range cfg.extraNames {
		if s := nameSeparators.Replace(strings.ToLower(strings.TrimSpace(n))); s != "" {
			m.nameSubstrings = append(m.nameSubstrings, s)
		}
	}
	for _, p := range cfg.extraPrefixes {
		if s := strings.ToLower(strings.TrimSpace(p)); s != "" {
			m.valuePrefixes = append(m.valuePrefixes, s)
		}
	}
	return m
}

// IsSecretField reports whether name looks secret-bearing. Matching is
// case-insensitive substring containment with separator characters removed
// first, not whole-word: authToken, myApiKeyValue, Password1 and api_key all
// match.
func (m *Matcher) IsSecretField(name string) bool {
	normalized := nameSeparators.Replace(strings.ToLower(name))
	for _, sub := range m.nameSubstrings {
		if strings.Contains(normalized, sub) {
			return true
		}
	}
	return false
}

// IsSecretValue reports whether value looks like secret material: a known
// prefix followed by at least one character (case-insensitive), or a run of
// base64-alphabet characters at or above the configured threshold.
func (m *Matcher) IsSecretValue(value string) bool {
	if value == "" {
		return false
	}
	lower := strings.ToLower(value)
	for _, p := range m.valuePrefixes {
		if strings.HasPrefix(lower, p) && len(value) > len(p) {
			return true
		}
	}
	return m.runPattern.MatchString(value)
}

// Scan applies the conjunctive rule to each input in order and returns one
// finding per input whose field name AND literal value both match. The output
// order mirrors the input order; inputs are never mutated.
func (m *Matcher) Scan(inits []FieldInit) []Finding {
	var out []Finding
	for _, in := range inits {
		if !m.IsSecretField(in.FieldName) {
			continue
		}
		if !m.IsSecretValue(in.LiteralValue) {
			continue
		}
		out = append(out, Finding{
			FieldName:    in.FieldName,
			LiteralValue: in.LiteralValue,
			Position:     in.Position,
			Message:      Message(in.FieldName, in.LiteralValue),
		})
	}
	return out
}

// Message builds the deterministic finding message for a field/value pair.
func Message(fieldName, literalValue string) string {
	return fmt.Sprintf("Hardcoded secret detected: '%s' assigned to field '%s'", literalValue, fieldName)
}

// defaultMatcher backs the package-level predicate functions.
var defaultMatcher = NewMatcher()

// IsSecretField applies the default matcher's field-name predicate.
func IsSecretField(name string) bool { return defaultMatcher.IsSecretField(name) }

// IsSecretValue applies the default matcher's value predicate.
func IsSecretValue(value string) bool { return defaultMatcher.IsSecretValue(value) }

// Scan runs the default matcher over inits.
func Scan(inits []FieldInit) []Finding { return defaultMatcher.Scan(inits) }

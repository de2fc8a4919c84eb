// Package security provides opt-in checks for the parts of a statement likesql
// inlines verbatim: identifiers, predicate text and literal expressions.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidIdentifier is returned for identifiers that cannot be quoted safely.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrDangerousPattern is returned when inlined SQL text matches an injection pattern.
	ErrDangerousPattern = errors.New("dangerous SQL pattern")
	// ErrSuspiciousParam is returned when a bound string value looks like an injection attempt.
	ErrSuspiciousParam = errors.New("suspicious parameter value")
)

// Validator checks inlined SQL fragments against dangerous patterns.
type Validator struct {
	patterns    []*regexp.Regexp
	strict      bool
	checkParams bool
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict enables strict validation mode (more aggressive).
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// WithParamChecks enables inspection of bound string values.
// Bound values never reach the SQL text, so this only flags intent.
func WithParamChecks(enabled bool) ValidatorOption {
	return func(v *Validator) {
		v.checkParams = enabled
	}
}

// NewValidator creates a validator with the default dangerous patterns.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		patterns: compilePatterns(dangerousPatterns),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}

	return v
}

// dangerousPatterns contains injection patterns blocked in predicate and
// expression text. They are matched against the upper-cased input.
var dangerousPatterns = []string{
	// SQL comment indicators
	`--[\s]`,   // line comment (with space after)
	`/\*.*\*/`, // C-style comment
	`#[\s]`,    // MySQL comment (with space after)

	// Stacked statements
	`;\s*DROP\s+`,     // ; DROP TABLE/DATABASE
	`;\s*DELETE\s+`,   // ; DELETE FROM
	`;\s*TRUNCATE\s+`, // ; TRUNCATE TABLE
	`;\s*ALTER\s+`,    // ; ALTER TABLE
	`;\s*CREATE\s+`,   // ; CREATE TABLE
	`;\s*INSERT\s+`,   // ; INSERT INTO
	`;\s*UPDATE\s+`,   // ; UPDATE ... SET

	// UNION-based exfiltration
	`UNION\s+ALL\s+SELECT`, // UNION ALL SELECT
	`UNION\s+SELECT`,       // UNION SELECT

	// MySQL timing and file access
	`\bSLEEP\s*\(`,       // SLEEP() (timing attacks)
	`BENCHMARK\s*\(`,     // BENCHMARK() (timing attacks)
	`LOAD_FILE\s*\(`,     // read server files
	`INTO\s+OUTFILE`,     // write server files
	`INFORMATION_SCHEMA`, // metadata access

	// Boolean-based blind injection
	`\s+OR\s+1\s*=\s*1\b`,   // OR 1=1
	`\s+OR\s+'1'\s*=\s*'1'`, // OR '1'='1'
	`\s+AND\s+1\s*=\s*0\b`,  // AND 1=0
}

// strictPatterns contains additional patterns for strict mode.
// These may reject legitimate predicates.
var strictPatterns = []string{
	`;`,         // any statement separator
	`'`,         // any inline string literal
	`\bUNION\b`, // any UNION
	`\bSLEEP\b`, // any SLEEP
}

// identifierForbidden lists characters an identifier may never contain,
// because quoting does not escape them.
const identifierForbidden = "`\"'\x00;"

// ValidateIdentifier rejects empty identifiers and identifiers containing
// quote characters, NUL or a statement separator.
func (v *Validator) ValidateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrInvalidIdentifier, kind)
	}
	if name == "*" {
		return nil
	}
	if i := strings.IndexAny(name, identifierForbidden); i >= 0 {
		return fmt.Errorf("%w: %s %q contains %q", ErrInvalidIdentifier, kind, name, name[i])
	}
	return nil
}

// ValidateQuery checks predicate or expression text for dangerous patterns.
// Returns an error wrapping ErrDangerousPattern on the first match.
func (v *Validator) ValidateQuery(query string) error {
	// Normalize for pattern matching
	normalized := strings.ToUpper(query)

	for _, pattern := range v.patterns {
		if pattern.MatchString(normalized) {
			return fmt.Errorf("%w: %q", ErrDangerousPattern, pattern.String())
		}
	}

	return nil
}

// ValidateParams checks bound string values when param checks are enabled.
// Non-string values are skipped.
func (v *Validator) ValidateParams(params []any) error {
	if !v.checkParams {
		return nil
	}

	for i, param := range params {
		str, ok := param.(string)
		if !ok {
			continue
		}
		// Check for injection attempts in string parameters
		if containsSQLInjection(str) {
			return fmt.Errorf("%w at index %d", ErrSuspiciousParam, i)
		}
	}

	return nil
}

// injectionIndicators are upper-cased fragments typical of injected strings.
var injectionIndicators = []string{
	"'--",      // close string, start comment
	"';",       // close string, stack statement
	"' OR ",    // close string, OR tautology
	"' AND ",   // close string, AND clause
	"/*",       // comment start
	"*/",       // comment end
	"' UNION ", // close string, UNION SELECT
	"' DROP ",  // close string, DROP
}

// containsSQLInjection checks a string value for injection indicators.
func containsSQLInjection(value string) bool {
	upper := strings.ToUpper(value)
	for _, indicator := range injectionIndicators {
		if strings.Contains(upper, indicator) {
			return true
		}
	}
	return false
}

// compilePatterns compiles regex patterns.
// Panics on invalid patterns, which are all hardcoded.
func compilePatterns(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}

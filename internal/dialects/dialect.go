// Package dialects provides the backend variants likesql can target. A dialect
// decides how identifiers are quoted and how outgoing bind values are
// transcoded for transports that cannot carry every Go type.
package dialects

import "sync"

// Dialect defines backend-specific behaviors.
type Dialect interface {
	// Name returns the registered backend name.
	Name() string
	// QuoteIdentifier wraps a bare identifier in the dialect's quote character.
	// Embedded quote characters are not escaped: identifiers are expected to be
	// application-controlled.
	QuoteIdentifier(string) string
	// TranscodeValues converts bind values into a transport-safe form.
	// The returned slice has the same length and order as the input.
	TranscodeValues([]any) []any
}

var (
	mu       sync.RWMutex
	dialects = make(map[string]Dialect)
)

// RegisterDialect registers a dialect by backend name.
func RegisterDialect(name string, d Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[name] = d
}

// LookupDialect retrieves a registered dialect by backend name.
func LookupDialect(name string) (Dialect, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := dialects[name]
	return d, ok
}

// GetDialect retrieves a registered dialect by backend name, panics if not found.
func GetDialect(name string) Dialect {
	if d, ok := LookupDialect(name); ok {
		return d
	}
	panic("unsupported dialect: " + name)
}

// backtick quotes an identifier with MySQL-style backticks.
// The wildcard is passed through untouched.
func backtick(s string) string {
	if s == "*" {
		return s
	}
	return "`" + s + "`"
}

package logger

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMask replaces sensitive values in log output.
const DefaultMask = "***REDACTED***"

// defaultSensitiveFields are column name fragments treated as secrets.
var defaultSensitiveFields = []string{
	"password", "passwd", "pwd",
	"token", "api_key", "apikey",
	"secret", "auth",
	"credit_card", "card_number", "cvv", "cvc",
	"ssn", "private_key",
}

var (
	// insertColumnsRegex captures the column list of an INSERT statement.
	insertColumnsRegex = regexp.MustCompile(`(?is)^INSERT\b.*?\((.*?)\)\s*VALUES\s*\(`)
	// boundColumnRegex captures the identifier compared against a trailing placeholder.
	boundColumnRegex = regexp.MustCompile("(?i)`?([A-Za-z_][A-Za-z0-9_]*)`?\\s*(?:=|<>|!=|<=|>=|<|>|\\bNOT\\s+LIKE|\\bLIKE)\\s*$")
)

// Sanitizer masks bind values that belong to sensitive columns so that
// compiled statements can be logged without leaking secrets.
type Sanitizer struct {
	fields []string
	mask   string
}

// NewSanitizer creates a sanitizer for the given column name fragments.
// An empty list selects the default set (password, token, secret, ...).
func NewSanitizer(sensitiveFields []string) *Sanitizer {
	if len(sensitiveFields) == 0 {
		sensitiveFields = defaultSensitiveFields
	}
	fields := make([]string, len(sensitiveFields))
	for i, f := range sensitiveFields {
		fields[i] = strings.ToLower(f)
	}
	return &Sanitizer{fields: fields, mask: DefaultMask}
}

// IsSensitive reports whether a column name contains a sensitive fragment.
func (s *Sanitizer) IsSensitive(column string) bool {
	column = strings.ToLower(column)
	for _, f := range s.fields {
		if strings.Contains(column, f) {
			return true
		}
	}
	return false
}

// MaskValues returns a copy of values where every value bound to a sensitive
// column is replaced by the mask. Placeholders are attributed to columns by
// position: the INSERT column list, or the identifier compared against the
// placeholder. A placeholder that cannot be attributed is masked whenever
// the statement mentions any sensitive column. values itself is not modified.
func (s *Sanitizer) MaskValues(sql string, values []any) []any {
	if len(values) == 0 {
		return values
	}

	columns := placeholderColumns(sql)
	mentionsSensitive := s.mentionsSensitive(sql)

	masked := make([]any, len(values))
	for i, v := range values {
		masked[i] = v

		col := ""
		if i < len(columns) {
			col = columns[i]
		}
		switch {
		case col != "" && s.IsSensitive(col):
			masked[i] = s.mask
		case col == "" && mentionsSensitive:
			masked[i] = s.mask
		}
	}
	return masked
}

// mentionsSensitive reports whether any sensitive fragment appears in sql.
func (s *Sanitizer) mentionsSensitive(sql string) bool {
	lower := strings.ToLower(sql)
	for _, f := range s.fields {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// placeholderColumns attributes each ? in sql to a column name, "" when unknown.
func placeholderColumns(sql string) []string {
	var columns []string

	if m := insertColumnsRegex.FindStringSubmatch(sql); m != nil {
		for _, c := range strings.Split(m[1], ",") {
			columns = append(columns, strings.Trim(strings.TrimSpace(c), "`"))
		}
		return columns
	}

	for i := 0; i < len(sql); i++ {
		if sql[i] != '?' {
			continue
		}
		col := ""
		if m := boundColumnRegex.FindStringSubmatch(sql[:i]); m != nil {
			col = m[1]
		}
		columns = append(columns, col)
	}
	return columns
}

// FormatValues renders values for logging.
// Mask sensitive values with MaskValues before calling this.
func (s *Sanitizer) FormatValues(values []any) string {
	if len(values) == 0 {
		return "[]"
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// formatValue renders one value, truncating long output.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	var str string
	if b, ok := v.([]byte); ok {
		str = fmt.Sprintf("<%d bytes>", len(b))
	} else {
		str = fmt.Sprintf("%v", v)
	}

	const maxLen = 100
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

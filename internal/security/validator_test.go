package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_ValidateQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		strict    bool
		wantError bool
	}{
		{"filter", "username = ?", false, false},
		{"filter with trailing clause", "username = ? ORDER BY username ASC LIMIT 2", false, false},
		{"trailing only", "ORDER BY created_at DESC", false, false},
		{"like", "username LIKE ?", false, false},
		{"arithmetic expression", "count + ?", false, false},
		{"and in normal mode", "a = ? AND b = ?", false, false},

		{"double dash comment", "name = 'admin'-- AND password = 'x'", false, true},
		{"c style comment", "id = 1 /*x*/", false, true},
		{"hash comment", "id = 1# AND status = 0", false, true},
		{"stacked drop", "id = 1; DROP TABLE users", false, true},
		{"stacked delete", "id = 1; DELETE FROM users", false, true},
		{"union select", "id = 1 UNION SELECT password FROM users", false, true},
		{"tautology", "id = ? OR 1=1", false, true},
		{"sleep", "id = sleep(5)", false, true},
		{"information schema", "id IN (SELECT 1 FROM information_schema.tables)", false, true},

		{"strict rejects quotes", "name = 'joe'", true, true},
		{"strict rejects semicolon", "id = ?;", true, true},
		{"strict allows placeholders", "id = ? AND name = ?", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(WithStrict(tt.strict))
			err := v.ValidateQuery(tt.query)
			if tt.wantError {
				assert.ErrorIs(t, err, ErrDangerousPattern)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ValidateIdentifier(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		ident     string
		wantError bool
	}{
		{"plain", "users", false},
		{"underscore", "user_name", false},
		{"wildcard", "*", false},
		{"unicode", "üsers", false},
		{"empty", "", true},
		{"backtick", "we`ird", true},
		{"double quote", `a"b`, true},
		{"single quote", "a'b", true},
		{"semicolon", "users;DROP", true},
		{"nul", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateIdentifier("column", tt.ident)
			if tt.wantError {
				assert.True(t, errors.Is(err, ErrInvalidIdentifier))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_ValidateParams(t *testing.T) {
	params := []any{"joe", 42, "x' OR 'a'='a"}

	// Disabled by default.
	assert.NoError(t, NewValidator().ValidateParams(params))

	v := NewValidator(WithParamChecks(true))
	err := v.ValidateParams(params)
	assert.ErrorIs(t, err, ErrSuspiciousParam)
	assert.Contains(t, err.Error(), "index 2")

	assert.NoError(t, v.ValidateParams([]any{"joe", 1, nil, []byte("x")}))
}

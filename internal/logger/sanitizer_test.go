package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_MaskValues(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		values []any
		want   []any
	}{
		{
			name:   "insert masks only the password column",
			sql:    "INSERT INTO `users` (`username`, `password`) VALUES (?, ?)",
			values: []any{"joe", "123"},
			want:   []any{"joe", DefaultMask},
		},
		{
			name:   "insert or ignore",
			sql:    "INSERT OR IGNORE INTO `sessions` (`user_id`, `token`) VALUES (?, ?)",
			values: []any{7, "abc"},
			want:   []any{7, DefaultMask},
		},
		{
			name:   "update set and where",
			sql:    "UPDATE `users` SET `password` = ? WHERE id = ?",
			values: []any{"secret", 9},
			want:   []any{DefaultMask, 9},
		},
		{
			name:   "where like",
			sql:    "SELECT * FROM `keys` WHERE api_key LIKE ?",
			values: []any{"sk_%"},
			want:   []any{DefaultMask},
		},
		{
			name:   "arithmetic assignment is unattributed",
			sql:    "UPDATE `users` SET `count` = count + ? WHERE username = ?",
			values: []any{1, "bob"},
			want:   []any{1, "bob"},
		},
		{
			name:   "unattributed placeholder in sensitive statement",
			sql:    "UPDATE `users` SET `password` = ? WHERE id IN (?)",
			values: []any{"secret", 3},
			want:   []any{DefaultMask, DefaultMask},
		},
		{
			name:   "case insensitive column",
			sql:    "UPDATE `users` SET `PASSWORD` = ? WHERE id = ?",
			values: []any{"secret", 1},
			want:   []any{DefaultMask, 1},
		},
		{
			name:   "nothing sensitive",
			sql:    "SELECT * FROM `users` WHERE username = ?",
			values: []any{"joe"},
			want:   []any{"joe"},
		},
		{
			name:   "no values",
			sql:    "SELECT COUNT(1) FROM `users`",
			values: []any{},
			want:   []any{},
		},
	}

	sanitizer := NewSanitizer(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizer.MaskValues(tt.sql, tt.values))
		})
	}
}

func TestSanitizer_MaskValues_DoesNotModifyInput(t *testing.T) {
	sanitizer := NewSanitizer(nil)
	values := []any{"joe", "123"}

	_ = sanitizer.MaskValues("INSERT INTO `users` (`username`, `password`) VALUES (?, ?)", values)
	assert.Equal(t, []any{"joe", "123"}, values)
}

func TestSanitizer_CustomFields(t *testing.T) {
	sanitizer := NewSanitizer([]string{"dni"})

	assert.True(t, sanitizer.IsSensitive("dni"))
	assert.True(t, sanitizer.IsSensitive("DNI_NUMBER"))
	assert.False(t, sanitizer.IsSensitive("password"))

	got := sanitizer.MaskValues("UPDATE `people` SET `dni` = ? WHERE id = ?", []any{"123", 1})
	assert.Equal(t, []any{DefaultMask, 1}, got)
}

func TestSanitizer_FormatValues(t *testing.T) {
	sanitizer := NewSanitizer(nil)

	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{"empty", nil, "[]"},
		{"mixed", []any{1, "joe", nil, true}, "[1, joe, NULL, true]"},
		{"bytes", []any{[]byte{1, 2, 3}}, "[<3 bytes>]"},
		{"long string", []any{strings.Repeat("x", 150)}, "[" + strings.Repeat("x", 100) + "...]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizer.FormatValues(tt.values))
		})
	}
}

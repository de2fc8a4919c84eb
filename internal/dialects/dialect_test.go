package dialects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		dialect string
		input   string
		want    string
	}{
		{"mysql", "users", "`users`"},
		{"mysql", "*", "*"},
		{"mariadb", "user_name", "`user_name`"},
		{"sqlite", "users", "`users`"},
		{"sqlite3", "*", "*"},
		{"rqlite", "users", "`users`"},
		// Embedded quotes are not escaped.
		{"mysql", "we`ird", "`we`ird`"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.input, func(t *testing.T) {
			d := GetDialect(tt.dialect)
			assert.Equal(t, tt.want, d.QuoteIdentifier(tt.input))
		})
	}
}

func TestGetDialect_Unknown(t *testing.T) {
	assert.Panics(t, func() {
		GetDialect("oracle")
	})

	_, ok := LookupDialect("oracle")
	assert.False(t, ok)
}

func TestDialectNames(t *testing.T) {
	assert.Equal(t, "mysql", GetDialect("mariadb").Name())
	assert.Equal(t, "sqlite", GetDialect("sqlite3").Name())
	assert.Equal(t, "rqlite", GetDialect("rqlite").Name())
}

func TestTranscodeValues_Passthrough(t *testing.T) {
	values := []any{"joe", []byte{0x01, 0x02}, 42}

	for _, name := range []string{"mysql", "sqlite"} {
		got := GetDialect(name).TranscodeValues(values)
		assert.Equal(t, values, got, name)
	}
}

func TestRqliteDialect_TranscodeValues(t *testing.T) {
	d := GetDialect("rqlite")
	values := []any{"joe", []byte{0xde, 0xad, 0xbe, 0xef}, 7, nil}

	got := d.TranscodeValues(values)
	require.Len(t, got, 4)
	assert.Equal(t, []any{"joe", "deadbeef", 7, nil}, got)

	// Caller's slice is left untouched.
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, values[1])

	assert.Nil(t, d.TranscodeValues(nil))
	assert.Equal(t, []any{}, d.TranscodeValues([]any{}))
}

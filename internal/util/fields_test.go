package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDBTag(t *testing.T) {
	tests := []struct {
		tag    string
		column string
		isPK   bool
	}{
		{"id", "id", false},
		{"id,pk", "id", true},
		{"id, pk", "id", true},
		{"-", "-", false},
		{"name,omitempty", "name", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			column, isPK := parseDBTag(tt.tag)
			assert.Equal(t, tt.column, column)
			assert.Equal(t, tt.isPK, isPK)
		})
	}
}

type audit struct {
	CreatedBy string `db:"created_by"`
}

type Timestamps struct {
	Created int64 `db:"created_at"`
}

type user struct {
	ID       int    `db:"id,pk"`
	Username string `db:"username"`
	Password string `db:"-"`
	Email    string
	secret   string
	Timestamps
	Audit audit `db:"audit"`
}

func TestStructFields(t *testing.T) {
	u := user{ID: 7, Username: "joe", Password: "x", Email: "j@x", secret: "s"}
	u.Created = 100

	fields, err := StructFields(&u)
	require.NoError(t, err)

	assert.Equal(t, []FieldValue{
		{Column: "id", Value: 7, Primary: true},
		{Column: "username", Value: "joe"},
		{Column: "Email", Value: "j@x"},
		{Column: "created_at", Value: int64(100)},
		{Column: "audit", Value: audit{}},
	}, fields)
}

func TestStructFields_Errors(t *testing.T) {
	_, err := StructFields((*user)(nil))
	assert.ErrorContains(t, err, "nil pointer")

	_, err = StructFields(42)
	assert.ErrorContains(t, err, "expected struct, got int")
}

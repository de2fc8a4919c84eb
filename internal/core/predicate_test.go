package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFind(t *testing.T) {
	tests := []struct {
		find     string
		expected string
	}{
		{"", ""},
		{"id = ?", " WHERE id = ?"},
		{"ORDER BY id", " ORDER BY id"},
		{"LIMIT 10", " LIMIT 10"},
		{"GROUP BY role", " GROUP BY role"},
		{"username = ? ORDER BY username", " WHERE username = ? ORDER BY username"},
		// Only an uppercase keyword at position 0 is trailing.
		{"order by id", " WHERE order by id"},
		{" LIMIT 1", " WHERE  LIMIT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.find, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFind(tt.find))
		})
	}
}

func TestPredicate(t *testing.T) {
	f := Filter("a = ? AND b = ?", 1, "x")
	assert.Equal(t, " WHERE a = ? AND b = ?", f.Render())
	assert.Equal(t, "a = ? AND b = ?", f.Clause())
	assert.Equal(t, []any{1, "x"}, f.Values())

	// Values returns a copy.
	v := f.Values()
	v[0] = 99
	assert.Equal(t, []any{1, "x"}, f.Values())

	tr := Trailing("LIMIT 3")
	assert.Equal(t, " LIMIT 3", tr.Render())
	assert.Empty(t, tr.Values())

	// A Filter is always a WHERE, even when it reads like a trailing clause.
	assert.Equal(t, " WHERE LIMIT", Filter("LIMIT").Render())
	assert.Equal(t, "", Filter("").Render())
	assert.Equal(t, "", Trailing("").Render())
}

func TestResolveFind(t *testing.T) {
	p := Filter("id = ?", 7)

	tests := []struct {
		name     string
		find     any
		extra    []any
		rendered string
		values   []any
	}{
		{name: "nil", find: nil, rendered: "", values: []any{}},
		{name: "empty string", find: "", rendered: "", values: []any{}},
		{name: "string", find: "a = ?", extra: []any{1}, rendered: " WHERE a = ?", values: []any{1}},
		{name: "predicate", find: p, extra: []any{8}, rendered: " WHERE id = ?", values: []any{7, 8}},
		{name: "predicate pointer", find: &p, rendered: " WHERE id = ?", values: []any{7}},
		{name: "nil predicate pointer", find: (*Predicate)(nil), rendered: "", values: []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered, _, values, err := resolveFind(tt.find, tt.extra)
			require.NoError(t, err)
			assert.Equal(t, tt.rendered, rendered)
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestResolveFind_InvalidType(t *testing.T) {
	_, _, _, err := resolveFind(map[string]any{"id": 1}, nil)
	assert.ErrorIs(t, err, ErrInvalidPredicate)
	assert.Contains(t, err.Error(), "map[string]interface {}")
}

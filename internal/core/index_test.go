package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileIndexes(t *testing.T) {
	clauses, err := CompileIndexes(KeywordIndex, bt, Indexes{
		{Name: "idx1", Columns: []string{"name", "dni", "dob DESC"}},
		{Name: "idx2", Columns: []string{"created_at ASC"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"  INDEX `idx1` (`name` ASC, `dni` ASC, `dob` DESC)",
		"  INDEX `idx2` (`created_at` ASC)",
	}, clauses)
}

func TestCompileIndexes_UniqueKey(t *testing.T) {
	clauses, err := CompileIndexes(KeywordUniqueKey, bt, Indexes{{Name: "email_x", Columns: []string{"email"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"  UNIQUE KEY `email_x` (`email` ASC)"}, clauses)
}

func TestCompileIndexes_Empty(t *testing.T) {
	clauses, err := CompileIndexes(KeywordIndex, bt, nil)
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestCompileIndexes_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		indexes Indexes
	}{
		{name: "empty name", indexes: Indexes{{Columns: []string{"a"}}}},
		{name: "empty token", indexes: Indexes{{Name: "i", Columns: []string{""}}}},
		{name: "direction only", indexes: Indexes{{Name: "i", Columns: []string{" DESC"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileIndexes(KeywordIndex, bt, tt.indexes)
			assert.ErrorIs(t, err, ErrInvalidSpecification)
		})
	}
}

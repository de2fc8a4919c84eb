package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDatabase(t *testing.T) {
	cfg := Config{Charset: "utf8mb4", Collate: "utf8mb4_unicode_ci", Engine: "InnoDB"}

	s := resolveDatabase(nil, cfg)
	assert.Equal(t, "utf8mb4", s.charset)
	assert.Equal(t, "utf8mb4_unicode_ci", s.collate)

	s = resolveDatabase(&DatabaseOptions{Collate: "utf8mb4_bin"}, cfg)
	assert.Equal(t, "utf8mb4", s.charset)
	assert.Equal(t, "utf8mb4_bin", s.collate)

	s = resolveDatabase(&DatabaseOptions{}, Config{})
	assert.Empty(t, s.charset)
	assert.Empty(t, s.collate)
}

func TestResolveTable(t *testing.T) {
	cfg := Config{Charset: "utf8mb4", Collate: "utf8mb4_unicode_ci", Engine: "InnoDB"}

	s := resolveTable(nil, cfg)
	assert.Equal(t, "InnoDB", s.engine)
	assert.Equal(t, "utf8mb4", s.charset)
	assert.Nil(t, s.increment)
	assert.Nil(t, s.unique)

	opts := &TableOptions{
		Engine:    "MyISAM",
		Increment: AutoIncrement(0),
		Index:     Indexes{{Name: "i", Columns: []string{"a"}}},
	}
	s = resolveTable(opts, cfg)
	assert.Equal(t, "MyISAM", s.engine)
	assert.Equal(t, "utf8mb4", s.charset)
	assert.Equal(t, "utf8mb4_unicode_ci", s.collate)
	if assert.NotNil(t, s.increment) {
		assert.Equal(t, int64(0), *s.increment)
	}
	assert.Len(t, s.index, 1)
}

func TestCreateTable_IncrementZero(t *testing.T) {
	b := New(WithDatabase(StaticDatabase("app")))
	stmt := collected(t)(b.CreateTable("t", Columns{Col("a")}, &TableOptions{Increment: AutoIncrement(0)}))
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS `app`.`t` (  `a` int NULL) AUTO_INCREMENT=0", stmt.SQL)
}

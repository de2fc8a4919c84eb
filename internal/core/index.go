package core

import (
	"fmt"
	"strings"
)

// Index keywords accepted by CompileIndexes.
const (
	KeywordUniqueKey = "UNIQUE KEY"
	KeywordIndex     = "INDEX"
)

// DefaultIndexDirection applies to index tokens without a direction.
const DefaultIndexDirection = "ASC"

// Index is a named index over "column" or "column DIRECTION" tokens.
type Index struct {
	Name    string
	Columns []string
}

// Indexes is an ordered list of indexes.
type Indexes []Index

// CompileIndexes compiles each index into a clause such as
//
//	  INDEX `idx1` (`name` ASC, `dni` ASC, `dob` DESC)
//
// keeping the order of indexes.
func CompileIndexes(keyword string, quote QuoteFunc, indexes Indexes) ([]string, error) {
	clauses := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		if idx.Name == "" {
			return nil, fmt.Errorf("%w: %s with empty name", ErrInvalidSpecification, keyword)
		}

		columns := make([]string, len(idx.Columns))
		for i, token := range idx.Columns {
			name, direction, _ := strings.Cut(token, " ")
			if name == "" {
				return nil, fmt.Errorf("%w: %s %q has an empty column in %q", ErrInvalidSpecification, keyword, idx.Name, token)
			}
			if direction == "" {
				direction = DefaultIndexDirection
			}
			columns[i] = quote(name) + " " + direction
		}

		clauses = append(clauses, "  "+keyword+" "+quote(idx.Name)+" ("+strings.Join(columns, ", ")+")")
	}
	return clauses, nil
}

package core

import (
	"fmt"
	"strings"
)

// trailingKeywords start clauses that are appended without a WHERE prefix.
// Only a match at position 0 counts.
var trailingKeywords = []string{"ORDER BY", "LIMIT", "GROUP BY"}

// ParseFind prefixes a predicate string for use after a table reference.
//
//	ParseFind("id = ?")      // " WHERE id = ?"
//	ParseFind("LIMIT 1")     // " LIMIT 1"
//	ParseFind("")            // ""
func ParseFind(find string) string {
	if find == "" {
		return ""
	}
	if isTrailing(find) {
		return " " + find
	}
	return " WHERE " + find
}

func isTrailing(find string) bool {
	for _, kw := range trailingKeywords {
		if strings.HasPrefix(find, kw) {
			return true
		}
	}
	return false
}

type predicateKind int

const (
	filterPredicate predicateKind = iota
	trailingPredicate
)

// Predicate is an explicitly tagged filter or trailing clause.
type Predicate struct {
	kind   predicateKind
	clause string
	values []any
}

// Filter builds a WHERE condition with its bound values.
// The condition may be followed by a trailing clause, as in
// "username = ? ORDER BY username ASC LIMIT 2".
func Filter(expr string, values ...any) Predicate {
	return Predicate{kind: filterPredicate, clause: expr, values: values}
}

// Trailing builds a clause such as ORDER BY, LIMIT or GROUP BY that is
// appended without a WHERE prefix.
func Trailing(clause string) Predicate {
	return Predicate{kind: trailingPredicate, clause: clause}
}

// Clause returns the unprefixed clause text.
func (p Predicate) Clause() string {
	return p.clause
}

// Render returns the prefixed clause, empty when the clause is empty.
func (p Predicate) Render() string {
	if p.clause == "" {
		return ""
	}
	if p.kind == trailingPredicate {
		return " " + p.clause
	}
	return " WHERE " + p.clause
}

// Values returns a copy of the bound values.
func (p Predicate) Values() []any {
	return append([]any(nil), p.values...)
}

// resolveFind turns a string or Predicate into its prefixed text, the raw
// clause, and the bound values: the predicate's own values followed by extra.
func resolveFind(find any, extra []any) (rendered, clause string, values []any, err error) {
	values = make([]any, 0, len(extra))

	switch f := find.(type) {
	case nil:
	case string:
		rendered, clause = ParseFind(f), f
	case Predicate:
		rendered, clause = f.Render(), f.clause
		values = append(values, f.values...)
	case *Predicate:
		if f != nil {
			rendered, clause = f.Render(), f.clause
			values = append(values, f.values...)
		}
	default:
		return "", "", nil, fmt.Errorf("%w, got %T", ErrInvalidPredicate, find)
	}

	values = append(values, extra...)
	return rendered, clause, values, nil
}

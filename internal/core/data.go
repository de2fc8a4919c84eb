package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/likesql/internal/util"
)

// Field is one column/value pair.
type Field struct {
	Column string
	Value  any
}

// Data is an ordered list of column/value pairs. Order decides both the
// column list and the order of bound values.
type Data []Field

// D builds Data from alternating column names and values.
// Panics if pairs has odd length or a column is not a string (fail fast).
func D(pairs ...any) Data {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("D: expected column/value pairs, got %d arguments", len(pairs)))
	}
	d := make(Data, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		col, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("D: column at argument %d is %T, not string", i, pairs[i]))
		}
		d = append(d, Field{Column: col, Value: pairs[i+1]})
	}
	return d
}

// DataFromMap builds Data from a map with columns in sorted order,
// so the generated SQL is deterministic.
func DataFromMap(m map[string]any) Data {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := make(Data, len(keys))
	for i, k := range keys {
		d[i] = Field{Column: k, Value: m[k]}
	}
	return d
}

// DataFromStruct builds Data from a struct or *struct using db tags, in
// field declaration order. Fields tagged db:"-" are skipped; fields without
// a tag use the field name. With skipPrimary, fields tagged db:"col,pk" are
// left out, which suits an UPDATE keyed by the primary key.
func DataFromStruct(v any, skipPrimary bool) (Data, error) {
	fields, err := util.StructFields(v)
	if err != nil {
		return nil, WrapError(err, "data from struct")
	}

	d := make(Data, 0, len(fields))
	for _, f := range fields {
		if skipPrimary && f.Primary {
			continue
		}
		d = append(d, Field{Column: f.Column, Value: f.Value})
	}
	return d, nil
}

// Columns returns the column names in order.
func (d Data) Columns() []string {
	cols := make([]string, len(d))
	for i, f := range d {
		cols[i] = f.Column
	}
	return cols
}

// Values returns the values in order.
func (d Data) Values() []any {
	values := make([]any, len(d))
	for i, f := range d {
		values[i] = f.Value
	}
	return values
}

// Setter produces the SET list of an UPDATE statement.
// It is implemented by Data and Arithmetic.
type Setter interface {
	setClause(quote QuoteFunc) (clause string, exprs []string, values []any)
}

// setClause binds every value with a placeholder.
func (d Data) setClause(quote QuoteFunc) (string, []string, []any) {
	parts := make([]string, len(d))
	for i, f := range d {
		parts[i] = quote(f.Column) + " = ?"
	}
	return strings.Join(parts, ", "), nil, d.Values()
}

// Arithmetic is an UPDATE assignment list whose values are literal SQL
// expressions such as "count + ?". Only Values are bound. Expressions are
// inlined verbatim, so they must never carry untrusted input.
type Arithmetic struct {
	Set    Data
	Values []any
}

// Expr builds an Arithmetic assignment list.
func Expr(set Data, values ...any) Arithmetic {
	return Arithmetic{Set: set, Values: values}
}

// setClause inlines each expression and binds only a.Values.
func (a Arithmetic) setClause(quote QuoteFunc) (string, []string, []any) {
	parts := make([]string, len(a.Set))
	exprs := make([]string, len(a.Set))
	for i, f := range a.Set {
		exprs[i] = fmt.Sprint(f.Value)
		parts[i] = quote(f.Column) + " = " + exprs[i]
	}
	return strings.Join(parts, ", "), exprs, append([]any(nil), a.Values...)
}

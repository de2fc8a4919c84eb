package core

import (
	"fmt"
	"strings"
)

// DefaultColumnType is used when a column specification sets no type.
const DefaultColumnType = "int"

// NullValue is the type of Null.
type NullValue struct{}

// Null used as a column default renders the keyword NULL.
// A nil Default means no DEFAULT clause at all.
var Null = NullValue{}

// Column describes one column definition.
type Column struct {
	Name string
	// Type is the SQL type, DefaultColumnType when empty.
	Type string
	// Length holds type parameters: a length, precision/scale, or ENUM members.
	// String elements are single-quoted, anything else is rendered as is.
	Length   []any
	Unsigned bool
	Collate  string
	// Required renders NOT NULL. Primary columns are always NOT NULL.
	Required bool
	// Default is the column default: nil for none, Null for NULL.
	// It is ignored on auto-increment columns.
	Default   any
	Increment bool
	// Primary adds the column to the table's primary key, in column order.
	Primary bool
}

// Columns is an ordered list of column definitions.
type Columns []Column

// Col returns a column with the default type.
func Col(name string) Column {
	return Column{Name: name}
}

// ColumnOf returns a column of the given type, the shorthand form of a specification.
func ColumnOf(name, typ string) Column {
	return Column{Name: name, Type: typ}
}

// Len builds a Length from a scalar or a list of type parameters.
func Len(values ...any) []any {
	return values
}

// QuoteFunc quotes an identifier.
type QuoteFunc func(string) string

// CompileColumn compiles one column definition fragment, indented by two
// spaces. primary reports whether the column belongs to the primary key.
func CompileColumn(quote QuoteFunc, col Column) (fragment string, primary bool, err error) {
	if col.Name == "" {
		return "", false, fmt.Errorf("%w: column with empty name", ErrInvalidSpecification)
	}

	typ := col.Type
	if typ == "" {
		typ = DefaultColumnType
	}

	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(quote(col.Name))
	sb.WriteByte(' ')
	sb.WriteString(typ)

	if len(col.Length) > 0 {
		sb.WriteString(" (")
		sb.WriteString(renderLength(col.Length))
		sb.WriteByte(')')
	}

	if col.Unsigned {
		sb.WriteString(" unsigned")
	}

	if col.Collate != "" {
		sb.WriteString(" COLLATE ")
		sb.WriteString(col.Collate)
	}

	if col.Required || col.Primary {
		sb.WriteString(" NOT NULL")
	} else {
		sb.WriteString(" NULL")
	}

	if col.Default != nil && !col.Increment {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(renderDefault(col.Default))
	}

	if col.Increment {
		sb.WriteString(" AUTO_INCREMENT")
	}

	return sb.String(), col.Primary, nil
}

// compileColumns compiles every column and folds the primary key list.
func compileColumns(quote QuoteFunc, cols Columns) (fragments, primaryKeys []string, err error) {
	fragments = make([]string, 0, len(cols))
	for _, col := range cols {
		fragment, primary, err := CompileColumn(quote, col)
		if err != nil {
			return nil, nil, err
		}
		fragments = append(fragments, fragment)
		if primary {
			primaryKeys = append(primaryKeys, col.Name)
		}
	}
	return fragments, primaryKeys, nil
}

// renderLength joins type parameters with commas, quoting strings.
func renderLength(length []any) string {
	parts := make([]string, len(length))
	for i, l := range length {
		if s, ok := l.(string); ok {
			parts[i] = "'" + s + "'"
			continue
		}
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ",")
}

// renderDefault renders a DEFAULT value. Strings are single-quoted without
// escaping; other values pass through fmt.
func renderDefault(v any) string {
	switch d := v.(type) {
	case NullValue:
		return "NULL"
	case string:
		return "'" + d + "'"
	default:
		return fmt.Sprint(d)
	}
}

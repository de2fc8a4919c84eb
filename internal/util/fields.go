// Package util holds reflection helpers for turning tagged structs into
// statement data.
package util

import (
	"errors"
	"reflect"
	"strings"
)

// FieldValue is one column and its value taken from a struct field.
type FieldValue struct {
	Column  string
	Value   any
	Primary bool
}

// parseDBTag parses a db tag into its column name and pk flag.
//
// Supported formats:
//   - "column"       -> column="column", isPK=false
//   - "column,pk"    -> column="column", isPK=true
//   - "-"            -> column="-", isPK=false (skip field)
func parseDBTag(tag string) (column string, isPK bool) {
	parts := strings.Split(tag, ",")
	column = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "pk" {
			isPK = true
			break
		}
	}
	return column, isPK
}

// StructFields returns the columns and values of data in field declaration order.
//
// Rules:
//   - Unexported fields are skipped.
//   - db:"-" fields are skipped.
//   - db:"column_name" or db:"column_name,pk" maps to column_name.
//   - Fields without db tag use the field name.
//   - Embedded structs without a db tag are flattened.
//   - Zero values are included.
//
// Returns an error if data is not a struct or *struct, or is a nil pointer.
func StructFields(data any) ([]FieldValue, error) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, errors.New("StructFields: nil pointer")
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, errors.New("StructFields: expected struct, got " + v.Kind().String())
	}

	return appendFields(nil, v), nil
}

func appendFields(out []FieldValue, v reflect.Value) []FieldValue {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, tagged := field.Tag.Lookup("db")
		if !tagged && field.Anonymous && field.Type.Kind() == reflect.Struct {
			out = appendFields(out, v.Field(i))
			continue
		}

		column, isPK := field.Name, false
		if tagged {
			column, isPK = parseDBTag(tag)
			if column == "-" {
				continue
			}
			if column == "" {
				column = field.Name
			}
		}

		out = append(out, FieldValue{Column: column, Value: v.Field(i).Interface(), Primary: isPK})
	}
	return out
}

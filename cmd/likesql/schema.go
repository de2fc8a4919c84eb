package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/coregx/likesql"
)

// schema is a parsed schema file. Tables keep file order.
type schema struct {
	Database string
	Tables   []tableSpec
}

type tableSpec struct {
	Name    string
	Columns likesql.Columns
	Options likesql.TableOptions
}

// parseSchema reads a schema document of the form
//
//	database: app
//	tables:
//	  users:
//	    columns:
//	      id: {type: int, unsigned: true, increment: true, primary: true}
//	      username: {type: varchar, length: 32, required: true}
//	      bio: text
//	    unique:
//	      username_x: [username]
//	    engine: InnoDB
//
// Mapping order is significant, so the document is walked as yaml.Node
// rather than decoded into maps.
func parseSchema(data []byte) (*schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse schema: empty document")
	}

	root := doc.Content[0]
	pairs, err := mappingPairs(root)
	if err != nil {
		return nil, err
	}

	s := &schema{}
	for _, p := range pairs {
		switch p.key {
		case "database":
			if s.Database, err = scalarString(p.value); err != nil {
				return nil, err
			}
		case "tables":
			if s.Tables, err = parseTables(p.value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("line %d: unknown schema key %q", p.line, p.key)
		}
	}

	if len(s.Tables) == 0 {
		return nil, fmt.Errorf("parse schema: no tables")
	}
	return s, nil
}

type pair struct {
	key   string
	value *yaml.Node
	line  int
}

func mappingPairs(n *yaml.Node) ([]pair, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	pairs := make([]pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
		}
		pairs = append(pairs, pair{key: k.Value, value: n.Content[i+1], line: k.Line})
	}
	return pairs, nil
}

func parseTables(n *yaml.Node) ([]tableSpec, error) {
	pairs, err := mappingPairs(n)
	if err != nil {
		return nil, err
	}

	tables := make([]tableSpec, 0, len(pairs))
	for _, p := range pairs {
		t, err := parseTable(p.key, p.value)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", p.key, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func parseTable(name string, n *yaml.Node) (tableSpec, error) {
	t := tableSpec{Name: name}

	pairs, err := mappingPairs(n)
	if err != nil {
		return t, err
	}

	for _, p := range pairs {
		switch p.key {
		case "columns":
			t.Columns, err = parseColumns(p.value)
		case "unique":
			t.Options.Unique, err = parseIndexes(p.value)
		case "index":
			t.Options.Index, err = parseIndexes(p.value)
		case "engine":
			t.Options.Engine, err = scalarString(p.value)
		case "charset":
			t.Options.Charset, err = scalarString(p.value)
		case "collate":
			t.Options.Collate, err = scalarString(p.value)
		case "increment":
			var n int64
			if err = p.value.Decode(&n); err == nil {
				t.Options.Increment = likesql.AutoIncrement(n)
			}
		default:
			err = fmt.Errorf("line %d: unknown table key %q", p.line, p.key)
		}
		if err != nil {
			return t, err
		}
	}

	if len(t.Columns) == 0 {
		return t, fmt.Errorf("no columns")
	}
	return t, nil
}

func parseColumns(n *yaml.Node) (likesql.Columns, error) {
	pairs, err := mappingPairs(n)
	if err != nil {
		return nil, err
	}

	cols := make(likesql.Columns, 0, len(pairs))
	for _, p := range pairs {
		col, err := parseColumn(p.key, p.value)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", p.key, err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// parseColumn accepts either a type string or a mapping of attributes.
func parseColumn(name string, n *yaml.Node) (likesql.Column, error) {
	if n.Kind == yaml.ScalarNode {
		if n.ShortTag() == "!!null" {
			return likesql.Col(name), nil
		}
		return likesql.ColumnOf(name, n.Value), nil
	}

	col := likesql.Column{Name: name}
	pairs, err := mappingPairs(n)
	if err != nil {
		return col, err
	}

	for _, p := range pairs {
		switch p.key {
		case "type":
			col.Type, err = scalarString(p.value)
		case "length":
			col.Length, err = parseLength(p.value)
		case "unsigned":
			err = p.value.Decode(&col.Unsigned)
		case "collate":
			col.Collate, err = scalarString(p.value)
		case "required":
			err = p.value.Decode(&col.Required)
		case "default":
			col.Default, err = scalarValue(p.value)
		case "increment":
			err = p.value.Decode(&col.Increment)
		case "primary":
			err = p.value.Decode(&col.Primary)
		default:
			err = fmt.Errorf("line %d: unknown column key %q", p.line, p.key)
		}
		if err != nil {
			return col, err
		}
	}
	return col, nil
}

func parseLength(n *yaml.Node) ([]any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := lengthValue(n)
		if err != nil {
			return nil, err
		}
		return likesql.Len(v), nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := lengthValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: length must be a scalar or a list", n.Line)
	}
}

// parseIndexes reads a mapping of index name to a column token or a list of tokens.
func parseIndexes(n *yaml.Node) (likesql.Indexes, error) {
	pairs, err := mappingPairs(n)
	if err != nil {
		return nil, err
	}

	indexes := make(likesql.Indexes, 0, len(pairs))
	for _, p := range pairs {
		var tokens []string
		switch p.value.Kind {
		case yaml.ScalarNode:
			tokens = []string{p.value.Value}
		case yaml.SequenceNode:
			if err := p.value.Decode(&tokens); err != nil {
				return nil, fmt.Errorf("index %s: %w", p.key, err)
			}
		default:
			return nil, fmt.Errorf("line %d: index %s must list columns", p.line, p.key)
		}
		indexes = append(indexes, likesql.Index{Name: p.key, Columns: tokens})
	}
	return indexes, nil
}

func scalarString(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	return n.Value, nil
}

// scalarValue converts a scalar node to a Go value by its resolved tag.
// A null scalar becomes likesql.Null.
// lengthValue is a scalarValue that rejects null.
func lengthValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, fmt.Errorf("line %d: length must not be null", n.Line)
	}
	return scalarValue(n)
}

func scalarValue(n *yaml.Node) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("line %d: expected a scalar", n.Line)
	}

	switch n.ShortTag() {
	case "!!null":
		return likesql.Null, nil
	case "!!int":
		var v int64
		err := n.Decode(&v)
		return v, err
	case "!!float":
		var v float64
		err := n.Decode(&v)
		return v, err
	case "!!bool":
		var v bool
		err := n.Decode(&v)
		return v, err
	default:
		return n.Value, nil
	}
}

// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"strconv"
)

// syntheticColumnPrefix names trailing fields the service didn't describe. Hive omits partition columns from
// the schema of SELECT * queries while still returning their values.
const syntheticColumnPrefix = "_p"

// FieldSchema describes one declared column.
type FieldSchema struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Comment string `json:"comment,omitempty"`
}

// Schema is the column metadata the service reports for a query.
type Schema struct {
	FieldSchemas []FieldSchema     `json:"fieldSchemas"`
	Properties   map[string]string `json:"properties,omitempty"`
}

// Names returns the declared column names in order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.FieldSchemas))
	for i, f := range s.FieldSchemas {
		names[i] = f.Name
	}
	return names
}

// declaredTypes indexes the declared types by name. The first declaration of a name wins.
func (s *Schema) declaredTypes() map[string]DataType {
	types := make(map[string]DataType)
	if s == nil {
		return types
	}
	for _, f := range s.FieldSchemas {
		if _, ok := types[f.Name]; !ok {
			types[f.Name] = ParseDataType(f.Type)
		}
	}
	return types
}

// schemaDefinition is the effective layout of one result set. It is computed once, from the first row, and
// shared by every row of that result set.
type schemaDefinition struct {
	columns []string
	types   map[string]DataType
	// index maps a column name to its position. A repeated name resolves to its last position.
	index map[string]int
}

func syntheticColumnName(k int) string {
	return syntheticColumnPrefix + strconv.Itoa(k)
}

// resolveSchema extends the declared columns with synthetic names until they cover every field of the
// sample row, then types every column. Columns without a declaration are strings. Without a sample row the
// declared columns are used as they are.
func resolveSchema(schema *Schema, sampleRow string, hasSample bool) *schemaDefinition {
	declared := schema.declaredTypes()
	columns := schema.Names()

	if hasSample {
		width := len(splitRow(sampleRow))
		taken := make(map[string]bool, width)
		for _, c := range columns {
			taken[c] = true
		}
		for k := 1; len(columns) < width; k++ {
			name := syntheticColumnName(k)
			if taken[name] {
				continue
			}
			taken[name] = true
			columns = append(columns, name)
		}
	}

	types := make(map[string]DataType, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
		if t, ok := declared[c]; ok {
			types[c] = t
		} else {
			types[c] = StringType
		}
	}
	return &schemaDefinition{columns: columns, types: types, index: index}
}

// typeOf returns the column type, string for names outside the definition.
func (def *schemaDefinition) typeOf(column string) DataType {
	if t, ok := def.types[column]; ok {
		return t
	}
	return StringType
}

// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"strings"
)

// fieldDelimiter separates the fields of a raw row.
const fieldDelimiter = "\t"

// splitRow splits a raw row into its fields. An empty row has no fields.
func splitRow(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, fieldDelimiter)
}

// Record is one typed row of a result set. Values are int64 for integer columns, float64 for floating point
// columns and string otherwise. A column of an unknown type that is missing from a short row has a nil value.
type Record struct {
	def    *schemaDefinition
	values []any
}

// Get returns the value of a column and whether the column belongs to the record.
func (r Record) Get(column string) (any, bool) {
	if r.def == nil {
		return nil, false
	}
	i, ok := r.def.index[column]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the value of a column, nil if the record has no such column.
func (r Record) Value(column string) any {
	v, _ := r.Get(column)
	return v
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.values)
}

// Columns returns the column names in order.
func (r Record) Columns() []string {
	if r.def == nil {
		return nil
	}
	return append([]string(nil), r.def.columns...)
}

// Map returns a copy of the record keyed by column name.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	if r.def == nil {
		return m
	}
	for name, i := range r.def.index {
		m[name] = r.values[i]
	}
	return m
}

// coerceRow types one raw row against the definition. Fields are matched by position: a short row leaves
// its trailing columns missing, a long row loses the fields past the last column.
func coerceRow(def *schemaDefinition, raw string) Record {
	fields := splitRow(raw)
	values := make([]any, len(def.columns))
	for i, column := range def.columns {
		t := def.typeOf(column)
		if i < len(fields) {
			values[i] = coerceValue(t, fields[i])
		} else {
			values[i] = coerceMissing(t)
		}
	}
	return Record{def: def, values: values}
}

// rowToArray lists the record's values in column order for serialization.
func rowToArray(def *schemaDefinition, rec Record) []any {
	out := make([]any, len(def.columns))
	for i, column := range def.columns {
		out[i] = rec.Value(column)
	}
	return out
}

// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"io"
	"iter"
	"maps"
	"os"
	"strings"
)

const (
	csvSeparator = ","
	tsvSeparator = "\t"
)

// ResultSet is the typed, immutable result of one fetch.
type ResultSet struct {
	def     *schemaDefinition
	records []Record
}

// NewResultSet types raw tab-delimited rows. The column layout is resolved from the declared schema and the
// first row only; every later row is assumed to have the same width. A nil schema declares no columns, so
// every column is synthetic and typed as a string.
func NewResultSet(rows []string, schema *Schema) *ResultSet {
	var def *schemaDefinition
	if len(rows) > 0 {
		def = resolveSchema(schema, rows[0], true)
	} else {
		def = resolveSchema(schema, "", false)
	}
	records := make([]Record, len(rows))
	for i, raw := range rows {
		records[i] = coerceRow(def, raw)
	}
	return &ResultSet{def: def, records: records}
}

// ColumnNames returns the effective column names, declared ones first.
func (rs *ResultSet) ColumnNames() []string {
	return append([]string(nil), rs.def.columns...)
}

// ColumnTypeMap returns the type of every effective column.
func (rs *ResultSet) ColumnTypeMap() map[string]DataType {
	return maps.Clone(rs.def.types)
}

// Len returns the number of records.
func (rs *ResultSet) Len() int {
	return len(rs.records)
}

// At returns the i-th record. It panics if i is out of range.
func (rs *ResultSet) At(i int) Record {
	return rs.records[i]
}

// Records iterates over the records in order.
func (rs *ResultSet) Records() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, rec := range rs.records {
			if !yield(i, rec) {
				return
			}
		}
	}
}

// Render joins the fields of each record with sep and the records with newlines. Fields are not quoted.
func (rs *ResultSet) Render(sep string) string {
	lines := make([]string, len(rs.records))
	fields := make([]string, len(rs.def.columns))
	for i, rec := range rs.records {
		for j, v := range rowToArray(rs.def, rec) {
			fields[j] = formatValue(v)
		}
		lines[i] = strings.Join(fields, sep)
	}
	return strings.Join(lines, "\n")
}

// ToCSV renders the records as comma separated text.
func (rs *ResultSet) ToCSV() string {
	return rs.Render(csvSeparator)
}

// ToTSV renders the records as tab separated text.
func (rs *ResultSet) ToTSV() string {
	return rs.Render(tsvSeparator)
}

// WriteCSV writes the comma separated rendering to w.
func (rs *ResultSet) WriteCSV(w io.Writer) error {
	_, err := io.WriteString(w, rs.ToCSV())
	return err
}

// WriteTSV writes the tab separated rendering to w.
func (rs *ResultSet) WriteTSV(w io.Writer) error {
	_, err := io.WriteString(w, rs.ToTSV())
	return err
}

// SaveCSV writes the comma separated rendering to a file, replacing its content.
func (rs *ResultSet) SaveCSV(path string) error {
	return os.WriteFile(path, []byte(rs.ToCSV()), 0644)
}

// SaveTSV writes the tab separated rendering to a file, replacing its content.
func (rs *ResultSet) SaveTSV(path string) error {
	return os.WriteFile(path, []byte(rs.ToTSV()), 0644)
}

// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"strings"
)

// DataType is a column type tag as declared by the service schema.
type DataType string

const (
	// BooleanType is a BOOLEAN column. Values are kept as text.
	BooleanType DataType = "boolean"
	// StringType is a STRING column. It is also the type of every undeclared column.
	StringType DataType = "string"
	// BigintType is a BIGINT column.
	BigintType DataType = "bigint"
	// FloatType is a FLOAT column.
	FloatType DataType = "float"
	// DoubleType is a DOUBLE column.
	DoubleType DataType = "double"
	// IntType is an INT column.
	IntType DataType = "int"
	// SmallintType is a SMALLINT column.
	SmallintType DataType = "smallint"
	// TinyintType is a TINYINT column.
	TinyintType DataType = "tinyint"
)

// ParseDataType normalizes a declared type name. An empty name is a string.
func ParseDataType(name string) DataType {
	t := strings.ToLower(strings.TrimSpace(name))
	if t == "" {
		return StringType
	}
	return DataType(t)
}

type converter func(raw string) any

func toText(raw string) any    { return raw }
func toInteger(raw string) any { return leadingInt64(raw) }
func toFloat(raw string) any   { return leadingFloat64(raw) }

// coercionTable maps the closed set of known tags to their conversion. Anything else passes through.
var coercionTable = map[DataType]converter{
	BooleanType:  toText,
	StringType:   toText,
	BigintType:   toInteger,
	FloatType:    toFloat,
	DoubleType:   toFloat,
	IntType:      toInteger,
	SmallintType: toInteger,
	TinyintType:  toInteger,
}

// IsKnown reports whether the tag belongs to the coercion table.
func (t DataType) IsKnown() bool {
	_, ok := coercionTable[t]
	return ok
}

// IsInteger reports whether values of the type coerce to int64.
func (t DataType) IsInteger() bool {
	switch t {
	case BigintType, IntType, SmallintType, TinyintType:
		return true
	}
	return false
}

// IsFloat reports whether values of the type coerce to float64.
func (t DataType) IsFloat() bool {
	return t == FloatType || t == DoubleType
}

// coerceValue converts a raw field. It never fails: malformed numbers become their leading numeric prefix,
// or zero when there is none.
func coerceValue(t DataType, raw string) any {
	conv, ok := coercionTable[t]
	if !ok {
		return raw
	}
	return conv(raw)
}

// coerceMissing is the value of a field absent from a short row. Known tags coerce the empty text, unknown
// tags have no value at all.
func coerceMissing(t DataType) any {
	conv, ok := coercionTable[t]
	if !ok {
		return nil
	}
	return conv("")
}

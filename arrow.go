// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	"fmt"

	"github.com/apache/arrow/go/v16/arrow"
	"github.com/apache/arrow/go/v16/arrow/array"
	"github.com/apache/arrow/go/v16/arrow/memory"
)

// hiveTypeMetadataKey keeps the declared Hive type on every Arrow field.
const hiveTypeMetadataKey = "hive.type"

func arrowTypeOf(t DataType) arrow.DataType {
	switch {
	case t.IsInteger():
		return arrow.PrimitiveTypes.Int64
	case t.IsFloat():
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// ArrowSchema returns the Arrow schema of the result set. Integer columns become int64, floating point
// columns float64, every other column a nullable string.
func (rs *ResultSet) ArrowSchema() *arrow.Schema {
	fields := make([]arrow.Field, len(rs.def.columns))
	for i, name := range rs.def.columns {
		t := rs.def.typeOf(name)
		fields[i] = arrow.Field{
			Name:     name,
			Type:     arrowTypeOf(t),
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{hiveTypeMetadataKey}, []string{string(t)}),
		}
	}
	return arrow.NewSchema(fields, nil)
}

// ToArrowRecord copies the result set into a single Arrow record. The caller must Release it.
func (rs *ResultSet) ToArrowRecord(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	rb := array.NewRecordBuilder(mem, rs.ArrowSchema())
	defer rb.Release()
	rb.Reserve(len(rs.records))

	for _, rec := range rs.records {
		for i, v := range rowToArray(rs.def, rec) {
			if err := appendArrowValue(rb.Field(i), v); err != nil {
				return nil, &HiveError{
					Number:      ErrCodeArrowConversion,
					SQLState:    SQLStateInvalidParameterValue,
					Message:     errMsgArrowConversion,
					MessageArgs: []interface{}{rs.def.columns[i], err},
					Err:         err,
				}
			}
		}
	}
	return rb.NewRecord(), nil
}

func appendArrowValue(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch bb := b.(type) {
	case *array.Int64Builder:
		if n, ok := v.(int64); ok {
			bb.Append(n)
			return nil
		}
	case *array.Float64Builder:
		if f, ok := v.(float64); ok {
			bb.Append(f)
			return nil
		}
	case *array.StringBuilder:
		bb.Append(formatValue(v))
		return nil
	}
	return fmt.Errorf("unexpected value %v of type %T", v, v)
}

// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

// TableSchema is a table definition that renders its own DDL. The statements are run verbatim.
type TableSchema interface {
	Name() string
	CreateTableStatement() string
	AddColumnsStatement() string
	ReplaceColumnsStatement() string
}

package logger

import (
	"github.com/snowflakedb/gohive/loginterface"
)

// Re-export types from loginterface so the root package and this one share them
// without an import cycle.
type (
	LogEntry             = loginterface.LogEntry
	HiveLogger           = loginterface.HiveLogger
	ClientLogContextHook = loginterface.ClientLogContextHook
)

// Copyright (c) 2026 Snowflake Computing Inc. All rights reserved.

package gohive

import (
	loggerinternal "github.com/snowflakedb/gohive/internal/logger"
	"github.com/snowflakedb/gohive/loginterface"
)

type contextKey string

// HiveSessionIDKey is context key of the session id
const HiveSessionIDKey contextKey = "LOG_SESSION_ID"

// HiveQueryIDKey is context key of the query id
const HiveQueryIDKey contextKey = "LOG_QUERY_ID"

const defaultLogLevel = "error"

func init() {
	SetLogKeys(HiveSessionIDKey, HiveQueryIDKey)
	_ = logger.SetLogLevel(defaultLogLevel)
}

type (
	// ClientLogContextHook is a client-defined hook that can be used to insert log
	// fields based on the Context.
	ClientLogContextHook = loginterface.ClientLogContextHook

	// LogEntry allows for logging using a snapshot of field values.
	LogEntry = loginterface.LogEntry

	// HiveLogger abstracts away the underlying logging mechanism.
	HiveLogger = loginterface.HiveLogger
)

// SetLogKeys sets the context keys to be written to logs when logger.WithContext is used.
func SetLogKeys(keys ...contextKey) {
	ikeys := make([]interface{}, len(keys))
	for i, k := range keys {
		ikeys[i] = k
	}
	loggerinternal.SetLogKeys(ikeys)
}

// RegisterLogContextHook registers a hook that can be used to extract fields
// from the Context and associated with log messages using the provided key.
func RegisterLogContextHook(contextKey string, ctxExtractor ClientLogContextHook) {
	loggerinternal.RegisterLogContextHook(contextKey, ctxExtractor)
}

// logger delegates to the current global logger.
var logger HiveLogger = loggerinternal.NewProxy()

// SetLogger replaces the global logger. The logger is wrapped with secret masking.
func SetLogger(inLogger HiveLogger) error {
	return loggerinternal.SetLogger(inLogger)
}

// GetLogger returns the global logger.
func GetLogger() HiveLogger {
	return logger
}

// CreateDefaultLogger creates a new logrus-backed logger with secret masking. It does not change the
// global logger.
func CreateDefaultLogger() HiveLogger {
	return loggerinternal.CreateDefaultLogger()
}

// maskSecrets masks passwords, tokens and storage credentials in text.
func maskSecrets(text string) string {
	return loggerinternal.MaskSecrets(text)
}

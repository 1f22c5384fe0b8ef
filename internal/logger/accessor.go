package logger

import (
	"errors"
	"sync"
)

var (
	loggerAccessorMu sync.Mutex
	// globalLogger is always a secretMaskingLogger.
	globalLogger HiveLogger
)

// GetLogger returns the global logger for use by internal packages
func GetLogger() HiveLogger {
	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()

	return globalLogger
}

// SetLogger installs a new global logger. The logger is wrapped with secret masking; a logger that is
// already wrapped is unwrapped first so masking is applied once.
func SetLogger(providedLogger HiveLogger) error {
	if providedLogger == nil {
		return errors.New("logger cannot be nil")
	}
	if _, isProxy := providedLogger.(*Proxy); isProxy {
		return errors.New("cannot set Proxy as raw logger - it would create infinite recursion")
	}
	raw := providedLogger
	if masking, ok := raw.(*secretMaskingLogger); ok {
		raw = masking.inner
	}

	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()
	globalLogger = newSecretMaskingLogger(raw)
	return nil
}

func init() {
	globalLogger = CreateDefaultLogger()
}

// CreateDefaultLogger creates a new logrus-backed logger wrapped with secret masking.
func CreateDefaultLogger() HiveLogger {
	return newSecretMaskingLogger(newRawLogger())
}

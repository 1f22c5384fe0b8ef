package logger

import (
	"context"
	"fmt"
	"io"
)

// secretMaskingLogger wraps any logger implementation and ensures
// all log messages have secrets masked before being passed to the inner logger.
type secretMaskingLogger struct {
	inner HiveLogger
}

var _ HiveLogger = (*secretMaskingLogger)(nil)

func newSecretMaskingLogger(inner HiveLogger) *secretMaskingLogger {
	return &secretMaskingLogger{inner: inner}
}

// maskValue masks strings. Other values are kept as they are unless their printed form carries a secret.
func (l *secretMaskingLogger) maskValue(value interface{}) interface{} {
	if str, ok := value.(string); ok {
		return l.maskString(str)
	}
	strVal := fmt.Sprint(value)
	masked := l.maskString(strVal)
	if masked != strVal {
		return masked
	}
	return value
}

func (l *secretMaskingLogger) maskString(value string) string {
	return MaskSecrets(value)
}

func (l *secretMaskingLogger) Tracef(format string, args ...interface{}) {
	l.inner.Tracef("%s", l.maskString(fmt.Sprintf(format, args...)))
}

func (l *secretMaskingLogger) Debugf(format string, args ...interface{}) {
	l.inner.Debugf("%s", l.maskString(fmt.Sprintf(format, args...)))
}

func (l *secretMaskingLogger) Infof(format string, args ...interface{}) {
	l.inner.Infof("%s", l.maskString(fmt.Sprintf(format, args...)))
}

func (l *secretMaskingLogger) Warnf(format string, args ...interface{}) {
	l.inner.Warnf("%s", l.maskString(fmt.Sprintf(format, args...)))
}

func (l *secretMaskingLogger) Errorf(format string, args ...interface{}) {
	l.inner.Errorf("%s", l.maskString(fmt.Sprintf(format, args...)))
}

func (l *secretMaskingLogger) Fatalf(format string, args ...interface{}) {
	l.inner.Fatalf("%s", l.maskString(fmt.Sprintf(format, args...)))
}

func (l *secretMaskingLogger) Trace(msg string) { l.inner.Trace(l.maskString(msg)) }
func (l *secretMaskingLogger) Debug(msg string) { l.inner.Debug(l.maskString(msg)) }
func (l *secretMaskingLogger) Info(msg string)  { l.inner.Info(l.maskString(msg)) }
func (l *secretMaskingLogger) Warn(msg string)  { l.inner.Warn(l.maskString(msg)) }
func (l *secretMaskingLogger) Error(msg string) { l.inner.Error(l.maskString(msg)) }
func (l *secretMaskingLogger) Fatal(msg string) { l.inner.Fatal(l.maskString(msg)) }

func (l *secretMaskingLogger) WithField(key string, value interface{}) LogEntry {
	return &secretMaskingEntry{inner: l.inner.WithField(key, l.maskValue(value)), parent: l}
}

func (l *secretMaskingLogger) WithFields(fields map[string]any) LogEntry {
	maskedFields := make(map[string]any, len(fields))
	for k, v := range fields {
		maskedFields[k] = l.maskValue(v)
	}
	return &secretMaskingEntry{inner: l.inner.WithFields(maskedFields), parent: l}
}

func (l *secretMaskingLogger) WithContext(ctx context.Context) LogEntry {
	return &secretMaskingEntry{inner: l.inner.WithContext(ctx), parent: l}
}

func (l *secretMaskingLogger) SetLogLevel(level string) error {
	return l.inner.SetLogLevel(level)
}

func (l *secretMaskingLogger) GetLogLevel() string {
	return l.inner.GetLogLevel()
}

func (l *secretMaskingLogger) SetOutput(output io.Writer) {
	l.inner.SetOutput(output)
}

// secretMaskingEntry wraps a log entry and masks all secrets.
type secretMaskingEntry struct {
	inner  LogEntry
	parent *secretMaskingLogger
}

var _ LogEntry = (*secretMaskingEntry)(nil)

func (e *secretMaskingEntry) Tracef(format string, args ...interface{}) {
	e.inner.Tracef("%s", e.parent.maskString(fmt.Sprintf(format, args...)))
}

func (e *secretMaskingEntry) Debugf(format string, args ...interface{}) {
	e.inner.Debugf("%s", e.parent.maskString(fmt.Sprintf(format, args...)))
}

func (e *secretMaskingEntry) Infof(format string, args ...interface{}) {
	e.inner.Infof("%s", e.parent.maskString(fmt.Sprintf(format, args...)))
}

func (e *secretMaskingEntry) Warnf(format string, args ...interface{}) {
	e.inner.Warnf("%s", e.parent.maskString(fmt.Sprintf(format, args...)))
}

func (e *secretMaskingEntry) Errorf(format string, args ...interface{}) {
	e.inner.Errorf("%s", e.parent.maskString(fmt.Sprintf(format, args...)))
}

func (e *secretMaskingEntry) Fatalf(format string, args ...interface{}) {
	e.inner.Fatalf("%s", e.parent.maskString(fmt.Sprintf(format, args...)))
}

func (e *secretMaskingEntry) Trace(msg string) { e.inner.Trace(e.parent.maskString(msg)) }
func (e *secretMaskingEntry) Debug(msg string) { e.inner.Debug(e.parent.maskString(msg)) }
func (e *secretMaskingEntry) Info(msg string)  { e.inner.Info(e.parent.maskString(msg)) }
func (e *secretMaskingEntry) Warn(msg string)  { e.inner.Warn(e.parent.maskString(msg)) }
func (e *secretMaskingEntry) Error(msg string) { e.inner.Error(e.parent.maskString(msg)) }
func (e *secretMaskingEntry) Fatal(msg string) { e.inner.Fatal(e.parent.maskString(msg)) }
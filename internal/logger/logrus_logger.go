package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// rawLogger implements HiveLogger on top of logrus.
type rawLogger struct {
	inner *logrus.Logger
	mu    sync.RWMutex
	off   bool
}

var _ HiveLogger = (*rawLogger)(nil)

func newRawLogger() *rawLogger {
	inner := logrus.New()
	inner.SetOutput(os.Stderr)
	inner.SetLevel(logrus.InfoLevel)
	inner.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return &rawLogger{inner: inner}
}

func (log *rawLogger) isEnabled() bool {
	log.mu.RLock()
	defer log.mu.RUnlock()
	return !log.off
}

// SetLogLevel sets the log level. "off" silences every message.
func (log *rawLogger) SetLogLevel(level string) error {
	lvl, off, err := parseLevel(level)
	if err != nil {
		return err
	}
	log.mu.Lock()
	defer log.mu.Unlock()
	log.off = off
	if !off {
		log.inner.SetLevel(lvl)
	}
	return nil
}

// GetLogLevel returns the current log level
func (log *rawLogger) GetLogLevel() string {
	if !log.isEnabled() {
		return levelOff
	}
	return log.inner.GetLevel().String()
}

func (log *rawLogger) SetOutput(output io.Writer) {
	log.inner.SetOutput(output)
}

func (log *rawLogger) entry() *logrusEntry {
	return &logrusEntry{inner: logrus.NewEntry(log.inner), parent: log}
}

func (log *rawLogger) WithField(key string, value interface{}) LogEntry {
	return &logrusEntry{inner: log.inner.WithField(key, value), parent: log}
}

func (log *rawLogger) WithFields(fields map[string]any) LogEntry {
	return &logrusEntry{inner: log.inner.WithFields(fields), parent: log}
}

// WithContext attaches the registered context keys and hook values as fields.
func (log *rawLogger) WithContext(ctx context.Context) LogEntry {
	return &logrusEntry{inner: log.inner.WithContext(ctx).WithFields(extractContextFields(ctx)), parent: log}
}

func (log *rawLogger) Tracef(format string, args ...interface{}) { log.entry().Tracef(format, args...) }
func (log *rawLogger) Debugf(format string, args ...interface{}) { log.entry().Debugf(format, args...) }
func (log *rawLogger) Infof(format string, args ...interface{})  { log.entry().Infof(format, args...) }
func (log *rawLogger) Warnf(format string, args ...interface{})  { log.entry().Warnf(format, args...) }
func (log *rawLogger) Errorf(format string, args ...interface{}) { log.entry().Errorf(format, args...) }
func (log *rawLogger) Fatalf(format string, args ...interface{}) { log.entry().Fatalf(format, args...) }

func (log *rawLogger) Trace(msg string) { log.entry().Trace(msg) }
func (log *rawLogger) Debug(msg string) { log.entry().Debug(msg) }
func (log *rawLogger) Info(msg string)  { log.entry().Info(msg) }
func (log *rawLogger) Warn(msg string)  { log.entry().Warn(msg) }
func (log *rawLogger) Error(msg string) { log.entry().Error(msg) }
func (log *rawLogger) Fatal(msg string) { log.entry().Fatal(msg) }

// logrusEntry is a LogEntry backed by a logrus entry. Fatal messages are logged at fatal level but never
// exit the process; the client is a library.
type logrusEntry struct {
	inner  *logrus.Entry
	parent *rawLogger
}

var _ LogEntry = (*logrusEntry)(nil)

func (e *logrusEntry) logf(level logrus.Level, format string, args ...interface{}) {
	if e.parent.isEnabled() {
		e.inner.Logf(level, format, args...)
	}
}

func (e *logrusEntry) log(level logrus.Level, msg string) {
	if e.parent.isEnabled() {
		e.inner.Log(level, msg)
	}
}

func (e *logrusEntry) Tracef(format string, args ...interface{}) {
	e.logf(logrus.TraceLevel, format, args...)
}

func (e *logrusEntry) Debugf(format string, args ...interface{}) {
	e.logf(logrus.DebugLevel, format, args...)
}

func (e *logrusEntry) Infof(format string, args ...interface{}) {
	e.logf(logrus.InfoLevel, format, args...)
}

func (e *logrusEntry) Warnf(format string, args ...interface{}) {
	e.logf(logrus.WarnLevel, format, args...)
}

func (e *logrusEntry) Errorf(format string, args ...interface{}) {
	e.logf(logrus.ErrorLevel, format, args...)
}

func (e *logrusEntry) Fatalf(format string, args ...interface{}) {
	e.logf(logrus.FatalLevel, format, args...)
}

func (e *logrusEntry) Trace(msg string) { e.log(logrus.TraceLevel, msg) }
func (e *logrusEntry) Debug(msg string) { e.log(logrus.DebugLevel, msg) }
func (e *logrusEntry) Info(msg string)  { e.log(logrus.InfoLevel, msg) }
func (e *logrusEntry) Warn(msg string)  { e.log(logrus.WarnLevel, msg) }
func (e *logrusEntry) Error(msg string) { e.log(logrus.ErrorLevel, msg) }
func (e *logrusEntry) Fatal(msg string) { e.log(logrus.FatalLevel, msg) }

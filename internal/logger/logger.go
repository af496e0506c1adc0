// Package logger is the diagnostic log of the donate CLI, backed by zap.
//
// Debug, Info and Warn reach stderr only with --verbose. Error is always
// printed. Lines look like "[WARN] tiktok: skipping step".
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	output io.Writer = os.Stderr
	sugar  = build(os.Stderr)
)

// build creates a console logger writing bare "[LEVEL] message" lines.
func build(w io.Writer) *zap.SugaredLogger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Sugar()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	if v {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.ErrorLevel)
}

// IsVerbose reports whether Debug messages are printed.
func IsVerbose() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// SetOutput redirects the log. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	sugar = build(w)
}

// Output returns the current log writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn prints a warning if verbose mode is enabled.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error prints an error regardless of verbose mode.
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}

// Sync flushes buffered entries.
func Sync() error {
	return current().Sync()
}

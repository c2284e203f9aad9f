// Package logger provides leveled logging for the server on top of op/go-logging.
package logger

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

const (
	module     = "clinica"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = logging.MustGetLogger(module)

// InitLogger sends log output to stderr, filtered at the given level.
func InitLogger(level logging.Level) {
	InitLoggerWithWriter(os.Stderr, level)
}

// InitLoggerWithWriter is InitLogger with an explicit destination.
func InitLoggerWithWriter(w io.Writer, level logging.Level) {
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.MustStringFormatter(`%{time:` + timeFormat + `} %{level} - %{message}`)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(level, module)
	logger.SetBackend(leveled)
}

// ParseLevel converts a level name such as "DEBUG" or "warning" into a
// logging.Level, falling back to INFO for unknown names.
func ParseLevel(name string) logging.Level {
	level, err := logging.LogLevel(name)
	if err != nil {
		return logging.INFO
	}
	return level
}

// Debug logs a debug message.
func Debug(args ...any) {
	logger.Debug(args...)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Info logs an info message.
func Info(args ...any) {
	logger.Info(args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Warning logs a warning message.
func Warning(args ...any) {
	logger.Warning(args...)
}

// Warningf logs a formatted warning message.
func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

// Error logs an error message.
func Error(args ...any) {
	logger.Error(args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Fatalf logs a formatted message and exits the process.
func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}

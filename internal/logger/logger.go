// Package logger wraps charmbracelet/log with convenience functions
// and a file-logging setup. Only internal/toolkit logs through this
// package; the other packages log via the charmbracelet/log default
// logger directly.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	Logger        *log.Logger
	currentWriter io.Writer = os.Stderr
)

func init() {
	Logger = log.New(os.Stderr)

	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch logLevel {
	case "DEBUG":
		Logger.SetLevel(log.DebugLevel)
	case "INFO":
		Logger.SetLevel(log.InfoLevel)
	case "WARN", "WARNING":
		Logger.SetLevel(log.WarnLevel)
	case "ERROR":
		Logger.SetLevel(log.ErrorLevel)
	case "FATAL":
		Logger.SetLevel(log.FatalLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}
}

func Info(msg interface{}, keyvals ...interface{})  { Logger.Info(msg, keyvals...) }
func Debug(msg interface{}, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { Logger.Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
func Fatal(msg interface{}, keyvals ...interface{}) { Logger.Fatal(msg, keyvals...) }

func Infof(format string, args ...interface{})  { Logger.Infof(format, args...) }
func Debugf(format string, args ...interface{}) { Logger.Debugf(format, args...) }
func Warnf(format string, args ...interface{})  { Logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { Logger.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { Logger.Fatalf(format, args...) }

// SetLevel sets the log level from a string; an unrecognized level is
// a no-op, leaving the current level in place.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		Logger.SetLevel(log.DebugLevel)
	case "INFO":
		Logger.SetLevel(log.InfoLevel)
	case "WARN", "WARNING":
		Logger.SetLevel(log.WarnLevel)
	case "ERROR":
		Logger.SetLevel(log.ErrorLevel)
	case "FATAL":
		Logger.SetLevel(log.FatalLevel)
	}
}

// SetOutput redirects the logger to a different writer, preserving
// the current level.
func SetOutput(w io.Writer) {
	currentWriter = w
	level := Logger.GetLevel()
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	Logger.SetLevel(level)
}

// SetPrefix sets a prefix on every subsequent log line, preserving the
// current level and output writer.
func SetPrefix(prefix string) {
	level := Logger.GetLevel()
	Logger = log.NewWithOptions(currentWriter, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	Logger.SetLevel(level)
}

// SetupFileLogging redirects both this package's logger and the
// charmbracelet/log default logger to a file under
// $XDG_STATE_HOME/swl (falling back to ~/.local/state/swl, then the
// current directory), returning the open file so the caller can close
// it on shutdown.
func SetupFileLogging(prefix string) (*os.File, error) {
	logDir := os.Getenv("XDG_STATE_HOME")
	if logDir != "" {
		logDir = filepath.Join(logDir, "swl")
	} else if home, err := os.UserHomeDir(); err == nil {
		logDir = filepath.Join(home, ".local", "state", "swl")
	} else {
		logDir = "."
	}

	if err := os.MkdirAll(logDir, 0o750); err != nil {
		logDir = "."
	}
	logPath := filepath.Join(logDir, "swl.log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	fmt.Fprintf(logFile, "\n%s %s: === New session started === (log: %s)\n",
		time.Now().Format("15:04:05"), prefix, logPath)

	fileLogger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	log.SetDefault(fileLogger)

	savedLevel := Logger.GetLevel()
	currentWriter = logFile
	Logger = log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
	})
	Logger.SetLevel(savedLevel)

	return logFile, nil
}

// Get returns the logger instance.
func Get() *log.Logger { return Logger }

// Package logger provides a simple level-based logging system with file output
// support. Every logger carries a run id so log lines from overlapping
// operator sessions appended to the same file can be told apart.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for detailed diagnostic information.
	LevelDebug LogLevel = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarning is for warning messages that may require attention.
	LevelWarning
	// LevelError is for error messages indicating problems.
	LevelError
)

// Logger provides level-filtered logging with optional file output.
type Logger struct {
	level  LogLevel
	writer io.Writer
	runID  string
	file   *os.File
}

// ParseLogLevel converts a string to a LogLevel.
// Accepts: "DEBUG", "INFO", "WARNING"/"WARN", "ERROR"
// Defaults to LevelInfo if the input is invalid.
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// New creates a logger writing to stderr and, when logFile is non-empty, to
// that file as well. If the file cannot be opened a warning goes to stderr
// and logging continues on stderr only.
func New(logFile string, level LogLevel) *Logger {
	l := &Logger{
		level:  level,
		writer: os.Stderr,
		runID:  shortRunID(),
	}
	if strings.TrimSpace(logFile) != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			l.file = file
			l.writer = io.MultiWriter(os.Stderr, file)
		} else {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logFile, err)
		}
	}
	return l
}

// NewWriter creates a logger that writes to the provided io.Writer directly.
func NewWriter(w io.Writer, level LogLevel) *Logger {
	return &Logger{level: level, writer: w, runID: shortRunID()}
}

// RunID returns the identifier stamped on every line of this logger.
func (l *Logger) RunID() string {
	return l.runID
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() {
	if l != nil && l.file != nil {
		_ = l.file.Close()
	}
}

func shortRunID() string {
	return uuid.NewString()[:8]
}

func (l *Logger) logf(level LogLevel, label string, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.writer, "%s [%s] [%s] %s\n", timestamp, l.runID, label, msg)
}

// Debugf logs a debug message with formatting.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, "DEBUG", format, args...)
}

// Infof logs an info message with formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, "INFO", format, args...)
}

// Warnf logs a warning message with formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarning, "WARNING", format, args...)
}

// Errorf logs an error message with formatting.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, "ERROR", format, args...)
}

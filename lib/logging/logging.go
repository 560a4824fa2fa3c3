package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel converts a string level to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger
// --------------------------------------------------------------------------

// Logger is a named, leveled logger with printf-style methods.
type Logger struct {
	name   string
	level  Level
	logger *log.Logger
}

// New creates a logger writing to stdout with the given name and level.
func New(name string, level Level) *Logger {
	return &Logger{
		name:   name,
		level:  level,
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
}

// SetLevel changes the logger's level.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level >= LevelDebug {
		l.log("DEBUG", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	if l.level >= LevelInfo {
		l.log("INFO", format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.level >= LevelWarn {
		l.log("WARN", format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.level >= LevelError {
		l.log("ERROR", format, args...)
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *Logger) log(levelStr string, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

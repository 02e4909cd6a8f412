// Package logger provides a leveled logging interface for the bot.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Logger defines the logging interface used across the bot.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type leveled struct {
	level int32
	out   *log.Logger
	err   *log.Logger
}

// New creates a logger whose level is taken from the LOG_LEVEL
// environment variable. Unknown values fall back to info.
func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithLevel creates a logger with an explicit level.
func NewWithLevel(level Level) Logger {
	return &leveled{
		level: int32(level),
		out:   log.New(os.Stdout, "", log.LstdFlags),
		err:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

// ParseLevel converts a string log level to a Level.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var prefixes = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelInfo:  "[INFO] ",
	LevelWarn:  "[WARN] ",
	LevelError: "[ERROR] ",
}

func (l *leveled) enabled(level Level) bool {
	return int32(level) >= atomic.LoadInt32(&l.level)
}

func (l *leveled) write(level Level, msg string) {
	target := l.out
	if level >= LevelError {
		target = l.err
	}
	target.Output(3, prefixes[level]+msg)
}

func (l *leveled) output(level Level, v ...interface{}) {
	if l.enabled(level) {
		l.write(level, fmt.Sprint(v...))
	}
}

func (l *leveled) outputf(level Level, format string, v ...interface{}) {
	if l.enabled(level) {
		l.write(level, fmt.Sprintf(format, v...))
	}
}

func (l *leveled) Debug(v ...interface{})                 { l.output(LevelDebug, v...) }
func (l *leveled) Debugf(format string, v ...interface{}) { l.outputf(LevelDebug, format, v...) }
func (l *leveled) Info(v ...interface{})                  { l.output(LevelInfo, v...) }
func (l *leveled) Infof(format string, v ...interface{})  { l.outputf(LevelInfo, format, v...) }
func (l *leveled) Warn(v ...interface{})                  { l.output(LevelWarn, v...) }
func (l *leveled) Warnf(format string, v ...interface{})  { l.outputf(LevelWarn, format, v...) }
func (l *leveled) Error(v ...interface{})                 { l.output(LevelError, v...) }
func (l *leveled) Errorf(format string, v ...interface{}) { l.outputf(LevelError, format, v...) }

func (l *leveled) Fatal(v ...interface{}) {
	l.write(LevelError, fmt.Sprint(v...))
	os.Exit(1)
}

func (l *leveled) Fatalf(format string, v ...interface{}) {
	l.write(LevelError, fmt.Sprintf(format, v...))
	os.Exit(1)
}

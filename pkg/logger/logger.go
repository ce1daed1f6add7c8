package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled process logger for the portal services. Package-level functions
// write without a component; Named returns a Logger that prefixes every
// line with its component so service logs can be told apart.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
	LevelFatal: "fatal",
}

var (
	mu     sync.RWMutex
	output *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
)

var exit = os.Exit

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

func ParseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// SetOutput redirects all loggers, returning the previous writer's logger
// so tests can restore it.
func SetOutput(w io.Writer) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = log.New(w, "", 0)
	return prev
}

func restore(l *log.Logger) {
	mu.Lock()
	output = l
	mu.Unlock()
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	return levelNames[level]
}

// Logger writes lines tagged with a component name.
type Logger struct {
	component string
}

// Named returns a logger for the given component.
func Named(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) write(lvl Level, format string, v ...interface{}) {
	mu.RLock()
	enabled := lvl >= level
	out := output
	mu.RUnlock()
	if !enabled && lvl != LevelFatal {
		return
	}
	var b strings.Builder
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(levelNames[lvl]))
	b.WriteString("] ")
	if l != nil && l.component != "" {
		b.WriteString(l.component)
		b.WriteString(": ")
	}
	b.WriteString(fmt.Sprintf(format, v...))
	out.Print(b.String())
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.write(LevelDebug, format, v...) }
func (l *Logger) Infof(format string, v ...interface{})  { l.write(LevelInfo, format, v...) }
func (l *Logger) Warnf(format string, v ...interface{})  { l.write(LevelWarn, format, v...) }
func (l *Logger) Errorf(format string, v ...interface{}) { l.write(LevelError, format, v...) }

func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.write(LevelFatal, format, v...)
	exit(1)
}

var root = &Logger{}

func Debugf(format string, v ...interface{}) { root.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { root.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { root.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { root.Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { root.Fatalf(format, v...) }

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

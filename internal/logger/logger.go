// Package logger writes one JSON object per line for diagnostics and keeps
// in-process metrics for the fetch path.
//
// Entries go to stderr unless another writer is configured, so they never mix
// with the prompts and listings on stdout. Only WARN and above are written by
// default; --verbose or NPS_LOG_LEVEL lowers the threshold.
//
//	logger.Warn("cache unreadable", logger.Fields{"path": path})
//	logger.IncrCounter("fetch.cache_hit")
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is a log severity.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(name string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := levelRank[level]; !ok {
		return "", fmt.Errorf("unknown log level: %q", name)
	}
	return level, nil
}

// Fields are the structured attributes of an entry.
type Fields map[string]interface{}

// LogEntry is the JSON shape of one line.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes entries at or above its threshold to a writer.
type Logger struct {
	mu        sync.Mutex
	threshold int
	w         io.Writer
}

// New returns a Logger that drops entries below level.
func New(level Level, w io.Writer) *Logger {
	return &Logger{threshold: levelRank[level], w: w}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(LevelWarn, os.Stderr)
)

// SetDefault replaces the logger behind the package-level functions.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if levelRank[level] < l.threshold {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	if marshalErr != nil {
		// Fields held something JSON cannot encode
		fmt.Fprintf(l.w, "%s %s %s (unencodable fields: %v)\n", entry.Timestamp, entry.Level, message, marshalErr)
		return
	}
	l.w.Write(append(data, '\n'))
}

func (l *Logger) Debug(message string, fields Fields) { l.log(LevelDebug, message, fields, nil) }
func (l *Logger) Info(message string, fields Fields)  { l.log(LevelInfo, message, fields, nil) }

// Warn records a recoverable fault. err may be nil.
func (l *Logger) Warn(message string, fields Fields, err error) {
	l.log(LevelWarn, message, fields, err)
}

// Error records a fault that ends the command.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

func Debug(message string, fields Fields)            { current().Debug(message, fields) }
func Info(message string, fields Fields)             { current().Info(message, fields) }
func Warn(message string, fields Fields, err error)  { current().Warn(message, fields, err) }
func Error(message string, fields Fields, err error) { current().Error(message, fields, err) }

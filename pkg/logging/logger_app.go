package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

var levelRank = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

// AppLogger is a leveled logfmt logger for application events
type AppLogger struct {
	level  LogLevel
	logger *log.Logger
	writer *RotatingWriter // nil if not logging to a file
	fields []interface{}
}

// NewAppLogger creates a new application logger. An empty logPath logs to
// stderr, leaving stdout to command output.
func NewAppLogger(logPath string, level LogLevel, maxSize int64, verifyInterval time.Duration) (*AppLogger, error) {
	if logPath == "" {
		return NewAppLoggerWriter(os.Stderr, level), nil
	}

	rw, err := NewRotatingWriter(logPath, maxSize, verifyInterval)
	if err != nil {
		return nil, fmt.Errorf("creating rotating writer: %w", err)
	}
	l := NewAppLoggerWriter(rw, level)
	l.writer = rw
	return l, nil
}

// NewAppLoggerWriter creates an application logger writing to w
func NewAppLoggerWriter(w io.Writer, level LogLevel) *AppLogger {
	return &AppLogger{
		level:  level,
		logger: log.New(w, "", 0),
	}
}

func (l *AppLogger) shouldLog(level LogLevel) bool {
	return levelRank[level] >= levelRank[l.level]
}

func (l *AppLogger) log(level LogLevel, message string, keyvals ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	pairs := formatPairs(l.fields)
	pairs = append(pairs, formatPairs(keyvals)...)

	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s: %s %s", timestamp, level, message, strings.Join(pairs, " "))
}

func toString(v interface{}) string {
	if v == nil {
		return ""
	}

	str := fmt.Sprintf("%v", v)
	str = strings.ReplaceAll(str, "\n", " ")
	str = strings.ReplaceAll(str, "\r", " ")
	str = strings.ReplaceAll(str, "\t", " ")
	return strings.Join(strings.Fields(str), " ")
}

// Debug logs at debug level
func (l *AppLogger) Debug(message string, keyvals ...interface{}) {
	l.log(LogLevelDebug, message, keyvals...)
}

// Info logs at info level
func (l *AppLogger) Info(message string, keyvals ...interface{}) {
	l.log(LogLevelInfo, message, keyvals...)
}

// Warn logs at warn level
func (l *AppLogger) Warn(message string, keyvals ...interface{}) {
	l.log(LogLevelWarn, message, keyvals...)
}

// Error logs at error level
func (l *AppLogger) Error(message string, keyvals ...interface{}) {
	l.log(LogLevelError, message, keyvals...)
}

// With returns a logger that adds keyvals to every message. The returned
// logger shares the output of its parent and must not be closed.
func (l *AppLogger) With(keyvals ...interface{}) *AppLogger {
	fields := make([]interface{}, 0, len(l.fields)+len(keyvals))
	fields = append(fields, l.fields...)
	fields = append(fields, keyvals...)
	return &AppLogger{
		level:  l.level,
		logger: l.logger,
		fields: fields,
	}
}

// Close closes the logger and stops background rotation
func (l *AppLogger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}

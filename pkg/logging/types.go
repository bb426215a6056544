package logging

import (
	"fmt"
	"strings"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel string

const (
	// LogLevelDebug is for debug messages
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is for informational messages
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is for warning messages
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is for error messages
	LogLevelError LogLevel = "error"
)

const (
	// DefaultMaxLogSize is the size at which the app log file is rotated
	DefaultMaxLogSize int64 = 10 * 1024 * 1024
	// DefaultVerifyInterval is how often the rotating writer checks that its
	// file has not been moved away
	DefaultVerifyInterval = time.Minute
)

var (
	// App is the global application logger
	App *AppLogger
	// Access is the global access logger for auth and navigation events
	Access AccessLogger
)

func init() {
	var err error

	// Default loggers: app to stderr at info, access discarded
	App, err = NewAppLogger("", LogLevelInfo, DefaultMaxLogSize, DefaultVerifyInterval)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default app logger: %v", err))
	}

	Access, err = NewAccessLogger("")
	if err != nil {
		panic(fmt.Sprintf("failed to initialize default access logger: %v", err))
	}
}

// ParseLevel converts a config string into a LogLevel
func ParseLevel(s string) (LogLevel, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return LogLevelInfo, nil
	case LogLevelDebug:
		return LogLevelDebug, nil
	case LogLevelInfo:
		return LogLevelInfo, nil
	case LogLevelWarn:
		return LogLevelWarn, nil
	case LogLevelError:
		return LogLevelError, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

// Initialize sets up the global loggers
func Initialize(accessLogPath, appLogPath string, level LogLevel) error {
	if level == "" {
		level = LogLevelInfo
	}

	newAccess, err := NewAccessLogger(accessLogPath)
	if err != nil {
		return fmt.Errorf("failed to initialize access logger: %w", err)
	}

	newApp, err := NewAppLogger(appLogPath, level, DefaultMaxLogSize, DefaultVerifyInterval)
	if err != nil {
		return fmt.Errorf("failed to initialize app logger: %w", err)
	}

	old := App
	Access = newAccess
	App = newApp
	if old != nil {
		_ = old.Close()
	}

	return nil
}

// formatValue formats a value for logfmt, quoting if necessary
func formatValue(v interface{}) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " =\"") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}

// formatPairs renders alternating key/value arguments as logfmt pairs
func formatPairs(keyvals []interface{}) []string {
	var parts []string
	for i := 0; i+1 < len(keyvals); i += 2 {
		parts = append(parts, fmt.Sprintf("%s=%s", toString(keyvals[i]), formatValue(toString(keyvals[i+1]))))
	}
	return parts
}

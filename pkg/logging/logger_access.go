package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// AccessLogger records who did what: sign-ins, sign-ups, sign-outs and
// screen navigation decisions
type AccessLogger interface {
	// LogAuth logs authentication and registration operations
	LogAuth(operation string, user string, status string, details ...interface{})
	// LogNavigation logs the authorizer's decision for a screen
	LogNavigation(screen string, user string, decision string, details ...interface{})
}

type accessLogger struct {
	logger *log.Logger
}

// NewAccessLogger creates a new access logger. An empty logPath discards output.
func NewAccessLogger(logPath string) (AccessLogger, error) {
	var writer io.Writer

	if logPath == "" {
		writer = io.Discard
	} else {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening access log file: %w", err)
		}
		writer = f
	}

	return NewAccessLoggerWriter(writer), nil
}

// NewAccessLoggerWriter creates an access logger writing to w
func NewAccessLoggerWriter(w io.Writer) AccessLogger {
	return &accessLogger{logger: log.New(w, "", 0)}
}

func (l *accessLogger) write(parts []string, details []interface{}) {
	parts = append(parts, formatPairs(details)...)
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 -0700")
	l.logger.Printf("%s %s", timestamp, strings.Join(parts, " "))
}

func (l *accessLogger) LogAuth(operation string, user string, status string, details ...interface{}) {
	parts := []string{fmt.Sprintf("op=%s", formatValue(operation))}
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("status=%s", formatValue(status)))
	l.write(parts, details)
}

func (l *accessLogger) LogNavigation(screen string, user string, decision string, details ...interface{}) {
	parts := []string{"op=NAVIGATE", fmt.Sprintf("screen=%s", formatValue(screen))}
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", formatValue(user)))
	}
	parts = append(parts, fmt.Sprintf("decision=%s", formatValue(decision)))
	l.write(parts, details)
}

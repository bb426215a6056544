package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the portal configuration
type Config struct {
	// Persistence context
	DataDir string `json:"data_dir"` // Directory holding session and account records

	// HTTP portal settings
	ListenAddr string `json:"listen_addr"` // Keep on loopback; all requests share one session
	Port       int    `json:"port"`

	// Account settings
	PasswordScheme    string `json:"password_scheme,omitempty"`     // plaintext, argon2id or unixcrypt
	MinPasswordLength int    `json:"min_password_length,omitempty"` // Signup minimum

	// Optional data files
	ScreensFile   string `json:"screens_file,omitempty"`   // Per-screen role overrides
	TimetableFile string `json:"timetable_file,omitempty"` // Replaces the built-in timetable

	// Status files
	StatusDir      string `json:"status_dir,omitempty"`
	StatusInterval int    `json:"status_interval,omitempty"` // Heartbeat interval in seconds

	// Logging settings
	AccessLogPath string `json:"access_log_path,omitempty"`
	AppLogPath    string `json:"app_log_path,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
}

const (
	defaultDataDir        = "transit-data"
	defaultListenAddr     = "127.0.0.1"
	defaultPort           = 8080
	defaultStatusInterval = 30
)

// LoadConfig loads configuration from a JSON file. Relative paths are
// resolved against the file's directory. Defaults are applied separately so
// command line overrides can land first.
func LoadConfig(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	configDir := filepath.Dir(path)
	for _, p := range []*string{
		&config.DataDir,
		&config.ScreensFile,
		&config.TimetableFile,
		&config.StatusDir,
		&config.AccessLogPath,
		&config.AppLogPath,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(configDir, *p)
		}
	}

	return nil
}

// applyDefaults fills unset optional settings
func applyDefaults(config *Config) {
	if config.DataDir == "" {
		config.DataDir = defaultDataDir
	}
	if config.ListenAddr == "" {
		config.ListenAddr = defaultListenAddr
	}
	if config.Port == 0 {
		config.Port = defaultPort
	}
	if config.StatusDir == "" {
		config.StatusDir = filepath.Join(config.DataDir, "status")
	}
	if config.StatusInterval == 0 {
		config.StatusInterval = defaultStatusInterval
	}
}

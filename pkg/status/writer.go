package status

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/spf13/afero"
)

// File names written under the status directory
const (
	StartFile   = "last_start"
	RunningFile = "running"
	StopFile    = "last_stop"
)

const humanTimeFormat = "Mon Jan 02 15:04:05 2006"

// MetricsProvider supplies the runtime numbers reported in the running file
type MetricsProvider interface {
	GetRequestCount() int64
	GetStartTime() time.Time
	GetSessionState() string
}

// Writer keeps status files up to date while the portal serves
type Writer struct {
	fs              afero.Fs
	dir             string
	updateInterval  time.Duration
	pid             int
	version         string
	metricsProvider MetricsProvider

	stopCh       chan struct{}
	wg           sync.WaitGroup
	heartbeating bool
	shutdownOnce sync.Once
}

// New creates a Writer on the OS filesystem
func New(dir string, updateInterval time.Duration, version string) (*Writer, error) {
	return NewWithFs(afero.NewOsFs(), dir, updateInterval, version)
}

// NewWithFs creates a Writer on fs, creating dir if needed
func NewWithFs(fs afero.Fs, dir string, updateInterval time.Duration, version string) (*Writer, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create status directory: %w", err)
	}

	return &Writer{
		fs:             fs,
		dir:            dir,
		updateInterval: updateInterval,
		pid:            os.Getpid(),
		version:        version,
		stopCh:         make(chan struct{}),
	}, nil
}

// SetMetricsProvider sets the provider for runtime metrics
func (w *Writer) SetMetricsProvider(provider MetricsProvider) {
	w.metricsProvider = provider
}

// WriteStartFile records when and as what this process started
func (w *Writer) WriteStartFile() error {
	now := time.Now()
	content := fmt.Sprintf("timestamp_unix: %d\ntimestamp_human: %s\npid: %d\nversion: %s\n",
		now.Unix(),
		now.Format(humanTimeFormat),
		w.pid,
		w.version,
	)

	if err := w.atomicWrite(StartFile, []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", StartFile, err)
	}

	logging.App.Info("Wrote status file", "file", StartFile)
	return nil
}

// WriteStopFile records why and after how long the process stopped
func (w *Writer) WriteStopFile(reason string, uptime time.Duration) error {
	now := time.Now()
	content := fmt.Sprintf("timestamp_unix: %d\ntimestamp_human: %s\nreason: %s\nuptime_seconds: %d\n",
		now.Unix(),
		now.Format(humanTimeFormat),
		reason,
		int64(uptime.Seconds()),
	)

	if err := w.atomicWrite(StopFile, []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", StopFile, err)
	}

	logging.App.Info("Wrote status file", "file", StopFile, "reason", reason)
	return nil
}

// StartHeartbeat rewrites the running file every update interval until
// Stop or Shutdown
func (w *Writer) StartHeartbeat() {
	w.heartbeating = true
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.updateInterval)
		defer ticker.Stop()

		if err := w.writeRunningFile(); err != nil {
			logging.App.Error("Failed to write running file", "error", err)
		}

		for {
			select {
			case <-ticker.C:
				if err := w.writeRunningFile(); err != nil {
					logging.App.Error("Failed to write running file", "error", err)
				}
			case <-w.stopCh:
				return
			}
		}
	}()

	logging.App.Info("Started status heartbeat", "interval", w.updateInterval)
}

// Stop ends the heartbeat
func (w *Writer) Stop() {
	select {
	case <-w.stopCh:
		return
	default:
		close(w.stopCh)
	}
	w.wg.Wait()
	if w.heartbeating {
		logging.App.Info("Stopped status heartbeat")
	}
}

// Shutdown stops the heartbeat and writes the stop file. Only the first
// call has an effect.
func (w *Writer) Shutdown(reason string) error {
	var err error
	w.shutdownOnce.Do(func() {
		w.Stop()

		var uptime time.Duration
		if w.metricsProvider != nil {
			if start := w.metricsProvider.GetStartTime(); !start.IsZero() {
				uptime = time.Since(start)
			}
		}
		err = w.WriteStopFile(reason, uptime)
	})
	return err
}

func (w *Writer) writeRunningFile() error {
	now := time.Now()

	var startTime time.Time
	var requests int64
	sessionState := "unknown"

	if w.metricsProvider != nil {
		startTime = w.metricsProvider.GetStartTime()
		requests = w.metricsProvider.GetRequestCount()
		sessionState = w.metricsProvider.GetSessionState()
	}

	uptime := int64(0)
	if !startTime.IsZero() {
		uptime = int64(now.Sub(startTime).Seconds())
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	content := fmt.Sprintf(`timestamp_unix: %d
uptime_seconds: %d
requests_served: %d
session_state: %s
memory_alloc_mb: %d
goroutines: %d
`,
		now.Unix(),
		uptime,
		requests,
		sessionState,
		memStats.Alloc/1024/1024,
		runtime.NumGoroutine(),
	)

	if err := w.atomicWrite(RunningFile, []byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", RunningFile, err)
	}

	logging.App.Debug("Updated running file", "requests_served", requests)
	return nil
}

// atomicWrite replaces name under the status directory via a temp file
func (w *Writer) atomicWrite(name string, content []byte) error {
	path := filepath.Join(w.dir, name)
	tmpPath := path + ".tmp"

	if err := afero.WriteFile(w.fs, tmpPath, content, 0644); err != nil {
		return err
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		w.fs.Remove(tmpPath)
		return err
	}

	return nil
}

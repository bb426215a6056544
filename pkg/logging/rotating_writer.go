package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// archiveDirName is the directory, next to the log file, that receives
// rotated logs named <basename>.YYYYMMDD-HHMMSS
const archiveDirName = "archive"

// RotatingWriter appends to a log file, moves it into archive/ once it grows
// past maxSize, and periodically reopens the path if the file was moved or
// deleted by someone else.
type RotatingWriter struct {
	mu      sync.Mutex
	f       *os.File
	path    string
	maxSize int64
	size    int64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewRotatingWriter opens path for appending and starts the background
// identity check. A file already larger than maxSize is archived first.
func NewRotatingWriter(path string, maxSize int64, verifyInterval time.Duration) (*RotatingWriter, error) {
	w := &RotatingWriter{
		path:    path,
		maxSize: maxSize,
		stopCh:  make(chan struct{}),
	}

	if err := w.open(); err != nil {
		return nil, err
	}
	if w.size >= w.maxSize {
		if err := w.rotate(); err != nil {
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.verifyLoop(verifyInterval)

	return w, nil
}

func (w *RotatingWriter) verifyLoop(interval time.Duration) {
	defer w.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.mu.Lock()
			_ = w.verify()
			w.mu.Unlock()
		case <-w.stopCh:
			return
		}
	}
}

// Write implements io.Writer
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) >= w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

// Close stops the background check and closes the file
func (w *RotatingWriter) Close() error {
	close(w.stopCh)
	w.wg.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.f != nil {
		err := w.f.Close()
		w.f = nil
		return err
	}
	return nil
}

// open must be called with mu held (or before the writer is shared)
func (w *RotatingWriter) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}

	w.f = f
	w.size = fi.Size()
	return nil
}

func (w *RotatingWriter) rotate() error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}

	archiveDir := filepath.Join(filepath.Dir(w.path), archiveDirName)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}

	name := fmt.Sprintf("%s.%s", filepath.Base(w.path), time.Now().Format("20060102-150405"))
	_ = os.Rename(w.path, filepath.Join(archiveDir, name))

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating new log file: %w", err)
	}

	w.f = f
	w.size = 0
	return nil
}

// verify reopens the path when the open descriptor no longer refers to it
func (w *RotatingWriter) verify() error {
	if w.f == nil {
		return w.open()
	}

	onDisk, err := os.Lstat(w.path)
	if err != nil {
		return w.reopen()
	}
	open, err := w.f.Stat()
	if err != nil || !os.SameFile(open, onDisk) {
		return w.reopen()
	}

	w.size = open.Size()
	return nil
}

func (w *RotatingWriter) reopen() error {
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	return w.open()
}

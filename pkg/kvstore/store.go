package kvstore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when a key has no record
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned by CompareAndSwap when the record changed
	// since it was read
	ErrVersionConflict = errors.New("record version conflict")

	// ErrLockTimeout is returned when the per-key lock could not be acquired
	ErrLockTimeout = errors.New("timed out waiting for record lock")
)

// Version identifies the content of a record. The zero value means the key
// is absent.
type Version string

// NoVersion is the version of an absent key
const NoVersion Version = ""

const (
	recordExt = ".json"
	lockExt   = ".lock"

	defaultLockWait  = 2 * time.Second
	defaultLockStale = 10 * time.Second
	lockRetryDelay   = 5 * time.Millisecond
)

// Store is a persistence context: one JSON record per key, stored as a file
// under a root directory. Writes are atomic and durable on return.
type Store struct {
	fs        afero.Fs
	root      string
	lockWait  time.Duration
	lockStale time.Duration

	mu sync.Mutex
}

// New creates a Store rooted at dir on the given filesystem
func New(fs afero.Fs, dir string) (*Store, error) {
	if fs == nil {
		return nil, fmt.Errorf("filesystem is required")
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{
		fs:        fs,
		root:      dir,
		lockWait:  defaultLockWait,
		lockStale: defaultLockStale,
	}, nil
}

// NewOS creates a Store on the operating system filesystem
func NewOS(dir string) (*Store, error) {
	return New(afero.NewOsFs(), dir)
}

// Dir returns the root directory of the store
func (s *Store) Dir() string {
	return s.root
}

func (s *Store) recordPath(key string) string {
	return filepath.Join(s.root, key+recordExt)
}

// VersionOf computes the version of a record's content
func VersionOf(value []byte) Version {
	sum := sha256.Sum256(value)
	return Version(hex.EncodeToString(sum[:]))
}

// Get returns the stored value for key together with its version
func (s *Store) Get(key string) ([]byte, Version, error) {
	data, err := afero.ReadFile(s.fs, s.recordPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NoVersion, ErrNotFound
		}
		return nil, NoVersion, fmt.Errorf("reading record %s: %w", key, err)
	}
	return data, VersionOf(data), nil
}

// Put unconditionally replaces the value for key
func (s *Store) Put(key string, value []byte) error {
	return s.withLock(key, func() error {
		return s.atomicWrite(s.recordPath(key), value)
	})
}

// CompareAndSwap replaces the value for key only if the current version
// equals expected. Use NoVersion to require that the key does not exist.
func (s *Store) CompareAndSwap(key string, expected Version, value []byte) error {
	return s.withLock(key, func() error {
		_, current, err := s.Get(key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if current != expected {
			logging.App.Debug("Record changed since read", "key", key)
			return ErrVersionConflict
		}
		return s.atomicWrite(s.recordPath(key), value)
	})
}

// Delete removes the record for key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	return s.withLock(key, func() error {
		err := s.fs.Remove(s.recordPath(key))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing record %s: %w", key, err)
		}
		return nil
	})
}

// withLock serialises writers to key, both inside this process and across
// processes sharing the directory
func (s *Store) withLock(key string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lockPath := filepath.Join(s.root, key+lockExt)
	deadline := time.Now().Add(s.lockWait)
	for {
		f, err := s.fs.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			f.Close()
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("creating lock for %s: %w", key, err)
		}
		s.breakStaleLock(lockPath)
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}
		time.Sleep(lockRetryDelay)
	}
	defer func() {
		if err := s.fs.Remove(lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.App.Warn("Failed to release record lock", "key", key, "error", err)
		}
	}()

	return fn()
}

// breakStaleLock removes a lock file left behind by a writer that died
func (s *Store) breakStaleLock(lockPath string) {
	fi, err := s.fs.Stat(lockPath)
	if err != nil {
		return
	}
	if time.Since(fi.ModTime()) > s.lockStale {
		logging.App.Warn("Removing stale record lock", "path", lockPath, "age", time.Since(fi.ModTime()))
		_ = s.fs.Remove(lockPath)
	}
}

// atomicWrite writes content to a temp file and renames it over path, so a
// reader never sees a partial record
func (s *Store) atomicWrite(path string, content []byte) error {
	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString()[:8])

	if err := afero.WriteFile(s.fs, tmpPath, content, 0644); err != nil {
		return fmt.Errorf("writing temp record: %w", err)
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		s.fs.Remove(tmpPath)
		return fmt.Errorf("renaming record: %w", err)
	}

	return nil
}

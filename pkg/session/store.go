package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mmcdole/campus-transit/pkg/kvstore"
	"github.com/mmcdole/campus-transit/pkg/logging"
)

// Store holds at most one session per persistence context and keeps the
// persisted record in step with memory
type Store struct {
	kv *kvstore.Store

	mu      sync.RWMutex
	current *Session
}

// NewStore creates an empty session store. Call Load to restore a
// previously persisted session.
func NewStore(kv *kvstore.Store) (*Store, error) {
	if kv == nil {
		return nil, fmt.Errorf("persistence context is required")
	}
	return &Store{kv: kv}, nil
}

// Load restores the persisted session. A missing or unreadable record
// leaves the store unauthenticated.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	data, _, err := s.kv.Get(Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		logging.App.Debug("Could not read session record", "error", err)
		return
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		logging.App.Debug("Ignoring malformed session record", "error", err)
		return
	}
	if sess.Username == "" {
		logging.App.Debug("Ignoring session record without username")
		return
	}

	s.current = &sess
	logging.App.Debug("Restored session", "username", sess.Username, "role", sess.Role)
}

// Get returns a copy of the current session, or nil when signed out
func (s *Store) Get() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Set replaces the current session and persists it before returning
func (s *Store) Set(sess *Session) error {
	if sess == nil {
		return s.Clear()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Put(Key, data); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	cp := *sess
	s.current = &cp
	return nil
}

// Clear removes the session from memory and from the persisted record
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.kv.Delete(Key); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// State reports whether a session is present
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Unauthenticated
	}
	return Authenticated
}

// Package session holds state that outlives a single flow, such as the last
// directory the user picked. One Session is created per process by the
// caller and passed explicitly to the flows that read or update it.
package session

import (
	"sync"
	"time"
)

// Session is safe for concurrent use. Writes are last-write-wins.
type Session struct {
	mu            sync.RWMutex
	lastDirectory string
	updatedAt     time.Time
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// LastDirectory returns the last selected source directory, or "".
func (s *Session) LastDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastDirectory
}

// SetLastDirectory records dir as the last selected source directory.
// An empty dir is ignored.
func (s *Session) SetLastDirectory(dir string) {
	if dir == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDirectory = dir
	s.updatedAt = time.Now()
}

// Snapshot is a point-in-time copy of the session.
type Snapshot struct {
	LastDirectory string    `json:"lastDirectory"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{LastDirectory: s.lastDirectory, UpdatedAt: s.updatedAt}
}

// Package memory contains in-memory storage of cached responses.
package memory

import (
	"sync"
	"time"
)

const (
	sweepInterval = time.Minute
	minSweepSize  = 1024
)

type item struct {
	content []byte
	expires time.Time
}

// Storage keeps content until its ttl is expired.
// Expired items are swept on Set, either once per sweepInterval or when storage doubles in size.
type Storage struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time

	nextSweep time.Time
	sweepSize int
}

// NewStorage returns new instance of Storage.
func NewStorage() *Storage {
	return &Storage{
		items:     map[string]item{},
		now:       time.Now,
		sweepSize: minSweepSize,
	}
}

// Get returns nil if key is missing or expired.
func (s *Storage) Get(key string) []byte {
	s.mu.RLock()
	v, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	if !s.now().Before(v.expires) {
		s.mu.Lock()
		if v, ok := s.items[key]; ok && !s.now().Before(v.expires) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil
	}

	return v.content
}

// Set ...
func (s *Storage) Set(key string, content []byte, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if !now.Before(s.nextSweep) || len(s.items) >= s.sweepSize {
		s.sweep(now)
	}

	s.items[key] = item{
		content: content,
		expires: now.Add(duration),
	}
}

// Len returns count of stored items, expired ones included.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// sweep must be called under write lock.
func (s *Storage) sweep(now time.Time) {
	for k, v := range s.items {
		if !now.Before(v.expires) {
			delete(s.items, k)
		}
	}

	s.nextSweep = now.Add(sweepInterval)
	s.sweepSize = 2 * len(s.items)
	if s.sweepSize < minSweepSize {
		s.sweepSize = minSweepSize
	}
}

package navstate

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a token is unknown or expired.
var ErrNotFound = errors.New("navstate: snapshot not found")

// Backend is the byte-level key/value store behind a Store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, exp time.Duration) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	val []byte
	exp time.Time
}

// MemoryBackend keeps snapshots in process memory.
type MemoryBackend struct {
	mu    sync.RWMutex
	store map[string]memoryEntry
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an in-memory backend. When prune is positive a
// goroutine evicts expired entries on that interval until Close is called.
func NewMemoryBackend(prune time.Duration) *MemoryBackend {
	m := &MemoryBackend{
		store: make(map[string]memoryEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if prune > 0 {
		go m.pruneLoop(prune)
	}
	return m
}

// Get returns a copy of the stored value.
func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.store[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if !entry.exp.IsZero() && m.now().After(entry.exp) {
		m.mu.Lock()
		delete(m.store, key)
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	return append([]byte(nil), entry.val...), nil
}

// Set stores a copy of val. A non-positive exp keeps the entry until deleted.
func (m *MemoryBackend) Set(_ context.Context, key string, val []byte, exp time.Duration) error {
	var expiresAt time.Time
	if exp > 0 {
		expiresAt = m.now().Add(exp)
	}
	m.mu.Lock()
	m.store[key] = memoryEntry{val: append([]byte(nil), val...), exp: expiresAt}
	m.mu.Unlock()
	return nil
}

// Delete removes key. Deleting an unknown key is not an error.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.store, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of entries, expired ones included.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// Close stops the prune goroutine.
func (m *MemoryBackend) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryBackend) prune() {
	now := m.now()
	m.mu.Lock()
	for key, entry := range m.store {
		if !entry.exp.IsZero() && now.After(entry.exp) {
			delete(m.store, key)
		}
	}
	m.mu.Unlock()
}

func (m *MemoryBackend) pruneLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.prune()
		}
	}
}

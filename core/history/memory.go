package history

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryBackend keeps the snapshot in memory as encoded JSON. MaxEntries
// limits the total number of predictions accepted by Write; zero means no
// limit.
type MemoryBackend struct {
	mu         sync.Mutex
	data       []byte
	MaxEntries int
	Writes     int
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend(maxEntries int) *MemoryBackend {
	return &MemoryBackend{MaxEntries: maxEntries}
}

// Read decodes the last written snapshot.
func (m *MemoryBackend) Read(context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{}
	if len(m.data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Write replaces the stored snapshot.
func (m *MemoryBackend) Write(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	if m.MaxEntries > 0 && snap.Len() > m.MaxEntries {
		return ErrQuotaExceeded
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.data = b
	return nil
}

// SetRaw replaces the stored bytes, e.g. to simulate corruption.
func (m *MemoryBackend) SetRaw(b []byte) {
	m.mu.Lock()
	m.data = b
	m.mu.Unlock()
}

func (m *MemoryBackend) Close() error { return nil }

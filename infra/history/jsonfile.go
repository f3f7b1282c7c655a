package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	corehistory "github.com/kilianp07/nhltiers/core/history"
)

// JSONFileBackend stores the whole history as one JSON document.
// MaxBytes limits the encoded size; zero disables the limit.
type JSONFileBackend struct {
	Path     string
	MaxBytes int
}

// NewJSONFileBackend returns a backend writing to path.
func NewJSONFileBackend(path string, maxBytes int) (*JSONFileBackend, error) {
	if path == "" {
		return nil, errors.New("jsonfile backend requires a path")
	}
	if maxBytes < 0 {
		return nil, fmt.Errorf("max_bytes must be >= 0, got %d", maxBytes)
	}
	return &JSONFileBackend{Path: path, MaxBytes: maxBytes}, nil
}

// Read decodes the document. A missing file is an empty history.
func (b *JSONFileBackend) Read(context.Context) (corehistory.Snapshot, error) {
	data, err := os.ReadFile(b.Path)
	if errors.Is(err, os.ErrNotExist) {
		return corehistory.Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	snap := corehistory.Snapshot{}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", b.Path, err)
	}
	return snap, nil
}

// Write replaces the document through a temporary file and a rename.
func (b *JSONFileBackend) Write(_ context.Context, snap corehistory.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if b.MaxBytes > 0 && len(data) > b.MaxBytes {
		return fmt.Errorf("%d bytes over limit %d: %w", len(data), b.MaxBytes, corehistory.ErrQuotaExceeded)
	}
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.Path)
}

func (b *JSONFileBackend) Close() error { return nil }

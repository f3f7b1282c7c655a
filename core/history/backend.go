package history

import (
	"context"
	"errors"

	"github.com/kilianp07/nhltiers/core/model"
)

// ErrQuotaExceeded is returned by a Backend when the write does not fit in the
// available storage.
var ErrQuotaExceeded = errors.New("history storage quota exceeded")

// ErrNotFound is returned when a player or prediction is unknown.
var ErrNotFound = errors.New("not found")

// Snapshot maps a stringified player id to its predictions, oldest first.
type Snapshot map[string][]model.Prediction

// Backend persists the whole prediction history as one snapshot.
type Backend interface {
	Read(ctx context.Context) (Snapshot, error)
	Write(ctx context.Context, snap Snapshot) error
	Close() error
}

// Len returns the total number of predictions in the snapshot.
func (s Snapshot) Len() int {
	n := 0
	for _, preds := range s {
		n += len(preds)
	}
	return n
}

func (s Snapshot) clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, preds := range s {
		cp := make([]model.Prediction, len(preds))
		copy(cp, preds)
		out[id] = cp
	}
	return out
}

package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kilianp07/nhltiers/core/logger"
	"github.com/kilianp07/nhltiers/core/metrics"
	"github.com/kilianp07/nhltiers/core/model"
	"github.com/kilianp07/nhltiers/core/monitoring"
)

const (
	// Retention is the maximum age of a prediction kept on load.
	Retention = 365 * 24 * time.Hour
	// MaxEntries is the number of most recent predictions kept per player on save.
	MaxEntries = 10
	// QuotaEntries is the reduced per-player cap applied when storage is full.
	QuotaEntries = 5
)

// Store is a bounded, time-windowed prediction history keyed by player id.
// All methods are safe for concurrent use; appends and saves are serialized.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	data     Snapshot
	log      logger.Logger
	recorder metrics.HistorySaveRecorder
	now      func() time.Time
}

// NewStore returns an empty Store over the backend. Call Load to read the
// persisted history. rec and log may be nil.
func NewStore(backend Backend, log logger.Logger, rec metrics.HistorySaveRecorder) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = metrics.NopSink{}
	}
	return &Store{
		backend:  backend,
		data:     Snapshot{},
		log:      log,
		recorder: rec,
		now:      time.Now,
	}
}

// SetClock overrides the clock used for retention pruning.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Load replaces the in-memory history with the persisted one, discarding
// predictions older than Retention and players left without predictions.
// Unreadable or corrupt storage yields an empty history.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.backend.Read(ctx)
	if err != nil {
		s.log.Warnf("load prediction history: %v", err)
		s.data = Snapshot{}
		return
	}
	now := s.now()
	pruned := Snapshot{}
	for id, preds := range snap {
		var kept []model.Prediction
		for _, p := range preds {
			if now.Sub(p.Timestamp) > Retention {
				continue
			}
			kept = append(kept, p)
		}
		if len(kept) > 0 {
			pruned[id] = kept
		}
	}
	s.data = pruned
	s.log.Infof("loaded prediction history for %d players", len(pruned))
}

// Append adds a prediction to the player's history without persisting it.
func (s *Store) Append(playerID model.PlayerID, p model.Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(playerID, p)
}

func (s *Store) appendLocked(playerID model.PlayerID, p model.Prediction) {
	id := string(playerID)
	s.data[id] = append(s.data[id], p)
}

// Save persists the history, keeping the MaxEntries most recent predictions
// per player. When the backend reports ErrQuotaExceeded the history is cut to
// QuotaEntries per player and written once more. Failures are logged.
func (s *Store) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(ctx)
}

// Record appends the prediction and saves the history as one operation.
func (s *Store) Record(ctx context.Context, playerID model.PlayerID, p model.Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(playerID, p)
	s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) {
	s.capLocked(MaxEntries)
	outcome := metrics.SaveOK
	err := s.backend.Write(ctx, s.data.clone())
	if errors.Is(err, ErrQuotaExceeded) {
		s.log.Warnf("prediction history quota exceeded, keeping %d entries per player", QuotaEntries)
		s.capLocked(QuotaEntries)
		outcome = metrics.SavePrunedRetry
		err = s.backend.Write(ctx, s.data.clone())
	}
	ev := metrics.HistorySaveEvent{
		Outcome: outcome,
		Players: len(s.data),
		Entries: s.data.Len(),
		Time:    s.now(),
	}
	if err != nil {
		s.log.Errorf("save prediction history: %v", err)
		monitoring.CaptureException(err, map[string]string{"module": "history"})
		ev.Outcome = metrics.SaveFailed
		ev.Error = err.Error()
	}
	if rerr := s.recorder.RecordHistorySave(ev); rerr != nil {
		s.log.Warnf("record history save: %v", rerr)
	}
}

func (s *Store) capLocked(n int) {
	for id, preds := range s.data {
		s.data[id] = keepRecent(preds, n)
	}
}

// keepRecent returns the n most recent predictions ordered oldest first.
func keepRecent(preds []model.Prediction, n int) []model.Prediction {
	sorted := make([]model.Prediction, len(preds))
	copy(sorted, preds)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// History returns a copy of the player's predictions, oldest first.
func (s *Store) History(playerID model.PlayerID) []model.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	preds := s.data[string(playerID)]
	out := make([]model.Prediction, len(preds))
	copy(out, preds)
	return out
}

// Players lists the ids with at least one prediction.
func (s *Store) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Accuracy returns the mean accuracy percentage of the player's predictions
// that have a recorded actual value. ok is false when none qualify.
func (s *Store) Accuracy(playerID model.PlayerID) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	n := 0
	for _, p := range s.data[string(playerID)] {
		if acc, ok := p.Accuracy(); ok {
			sum += acc
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// RecordActual attaches the points actually scored to a past prediction and
// persists the history.
func (s *Store) RecordActual(ctx context.Context, playerID model.PlayerID, predictionID string, actual int) error {
	if actual < 0 {
		return fmt.Errorf("actual points must be non-negative, got %d", actual)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	preds := s.data[string(playerID)]
	for i := range preds {
		if preds[i].ID == predictionID {
			v := actual
			preds[i].ActualPoints = &v
			s.saveLocked(ctx)
			return nil
		}
	}
	return fmt.Errorf("prediction %s for player %s: %w", predictionID, playerID, ErrNotFound)
}

// Close releases the backend.
func (s *Store) Close() error { return s.backend.Close() }

package metrics

import (
	"time"

	"github.com/kilianp07/nhltiers/core/model"
)

// PredictionEvent describes one computed next-season projection.
type PredictionEvent struct {
	PlayerID        string
	Position        string
	Team            string
	PredictedPoints int
	Low             int
	High            int
	Confidence      float64
	Factors         model.Factors
	Time            time.Time
}

// PredictionSink records predictions for observability purposes.
type PredictionSink interface {
	RecordPrediction(ev PredictionEvent) error
}

// HistorySaveOutcome classifies the result of persisting prediction history.
type HistorySaveOutcome string

const (
	// SaveOK means the history was written on the first attempt.
	SaveOK HistorySaveOutcome = "ok"
	// SavePrunedRetry means the first write hit the storage quota and the
	// reduced history was written on retry.
	SavePrunedRetry HistorySaveOutcome = "pruned_retry"
	// SaveFailed means the history could not be written.
	SaveFailed HistorySaveOutcome = "failed"
)

// HistorySaveEvent captures one history save attempt.
type HistorySaveEvent struct {
	Outcome HistorySaveOutcome
	Players int
	Entries int
	Error   string
	Time    time.Time
}

// HistorySaveRecorder records history persistence outcomes.
type HistorySaveRecorder interface {
	RecordHistorySave(ev HistorySaveEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPrediction(PredictionEvent) error   { return nil }
func (NopSink) RecordHistorySave(HistorySaveEvent) error { return nil }

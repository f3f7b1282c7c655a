package metrics

import "errors"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []PredictionSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...PredictionSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPrediction forwards the event to every sink and joins their errors.
func (m *MultiSink) RecordPrediction(ev PredictionEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordPrediction(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordHistorySave forwards the event to sinks implementing HistorySaveRecorder.
func (m *MultiSink) RecordHistorySave(ev HistorySaveEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(HistorySaveRecorder); ok {
			if err := rec.RecordHistorySave(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

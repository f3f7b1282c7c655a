package metrics

import (
	coremetrics "github.com/kilianp07/nhltiers/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records predictions in Prometheus metrics.
type PromSink struct {
	predictions *prometheus.CounterVec
	points      *prometheus.HistogramVec
	confidence  prometheus.Histogram
	saves       *prometheus.CounterVec
}

// NewPromSink registers prediction metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	predictions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "player_predictions_total",
		Help: "Total number of next-season predictions computed",
	}, []string{"position"})
	points := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "player_predicted_points",
		Help:    "Distribution of predicted next-season points",
		Buckets: prometheus.LinearBuckets(0, 10, 16),
	}, []string{"position"})
	confidence := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "player_prediction_confidence",
		Help:    "Distribution of prediction confidence scores",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	})
	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prediction_history_saves_total",
		Help: "Prediction history save attempts by outcome",
	}, []string{"outcome"})

	var err error
	if predictions, err = register(reg, predictions); err != nil {
		return nil, err
	}
	if points, err = register(reg, points); err != nil {
		return nil, err
	}
	if confidence, err = register(reg, confidence); err != nil {
		return nil, err
	}
	if saves, err = register(reg, saves); err != nil {
		return nil, err
	}
	return &PromSink{predictions: predictions, points: points, confidence: confidence, saves: saves}, nil
}

// register returns the already registered collector when metrics are
// registered twice on the same registerer.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPrediction counts the prediction and observes its points and confidence.
func (s *PromSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	pos := ev.Position
	if pos == "" {
		pos = "unknown"
	}
	s.predictions.WithLabelValues(pos).Inc()
	s.points.WithLabelValues(pos).Observe(float64(ev.PredictedPoints))
	s.confidence.Observe(ev.Confidence)
	return nil
}

// RecordHistorySave counts the save outcome.
func (s *PromSink) RecordHistorySave(ev coremetrics.HistorySaveEvent) error {
	s.saves.WithLabelValues(string(ev.Outcome)).Inc()
	return nil
}

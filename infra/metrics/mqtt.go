package metrics

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	coremetrics "github.com/kilianp07/nhltiers/core/metrics"
	"github.com/kilianp07/nhltiers/core/model"
	"github.com/kilianp07/nhltiers/infra/mqtt"
)

// DefaultTopicPrefix is used when the mqtt sink has no topic_prefix.
const DefaultTopicPrefix = "nhl"

// predictionMessage is the JSON document published for each prediction.
type predictionMessage struct {
	PlayerID        string        `json:"player_id"`
	Position        string        `json:"position"`
	Team            string        `json:"team,omitempty"`
	PredictedPoints int           `json:"predicted_points"`
	Range           model.Range   `json:"range"`
	Confidence      float64       `json:"confidence"`
	Factors         model.Factors `json:"factors"`
	Timestamp       time.Time     `json:"timestamp"`
}

// MQTTSink publishes every prediction to <prefix>/players/<id>/prediction.
type MQTTSink struct {
	pub    mqtt.Publisher
	prefix string
}

// NewMQTTSink wraps an MQTT publisher.
func NewMQTTSink(pub mqtt.Publisher, prefix string) *MQTTSink {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return &MQTTSink{pub: pub, prefix: prefix}
}

// Topic returns the topic used for a player's predictions.
func (s *MQTTSink) Topic(playerID string) string {
	return fmt.Sprintf("%s/players/%s/prediction", s.prefix, playerID)
}

// RecordPrediction publishes the prediction as JSON.
func (s *MQTTSink) RecordPrediction(ev coremetrics.PredictionEvent) error {
	payload, err := json.Marshal(predictionMessage{
		PlayerID:        ev.PlayerID,
		Position:        ev.Position,
		Team:            ev.Team,
		PredictedPoints: ev.PredictedPoints,
		Range:           model.Range{Low: ev.Low, High: ev.High},
		Confidence:      ev.Confidence,
		Factors:         ev.Factors,
		Timestamp:       ev.Time,
	})
	if err != nil {
		return err
	}
	return s.pub.Publish(s.Topic(ev.PlayerID), payload)
}

// Close disconnects the publisher when it supports it.
func (s *MQTTSink) Close() {
	if d, ok := s.pub.(interface{ Disconnect() }); ok {
		d.Disconnect()
	}
}

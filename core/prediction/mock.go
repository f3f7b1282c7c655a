package prediction

import (
	"context"
	"time"

	"github.com/kilianp07/nhltiers/core/model"
)

// MockPredictor returns configured predictions keyed by player id.
type MockPredictor struct {
	Points     map[model.PlayerID]int
	Confidence float64
}

// PredictNextSeason returns the configured points for the player or the
// player's current season points.
func (m MockPredictor) PredictNextSeason(_ context.Context, p model.Player) model.Prediction {
	pts := p.CurrentSeasonPoints
	if v, ok := m.Points[p.ID]; ok {
		pts = v
	}
	return model.Prediction{
		ID:              "mock-" + string(p.ID),
		PlayerID:        p.ID,
		PredictedPoints: pts,
		Confidence:      m.Confidence,
		Range:           model.Range{Low: pts, High: pts},
		Factors:         model.Factors{Age: 1, Position: 1, GamesPlayed: 1, Consistency: 1},
		Timestamp:       time.Now(),
	}
}

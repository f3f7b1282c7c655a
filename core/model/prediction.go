package model

import "time"

// Range bounds a prediction. Low is never negative and Low <= High.
type Range struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Factors reports the multipliers applied to a prediction. The trend
// multiplier is not part of the breakdown.
type Factors struct {
	Age         float64 `json:"age"`
	Position    float64 `json:"position"`
	GamesPlayed float64 `json:"gamesPlayed"`
	Consistency float64 `json:"consistency"`
}

// Prediction is a next-season point projection for one player.
type Prediction struct {
	ID              string    `json:"id"`
	PlayerID        PlayerID  `json:"player_id"`
	PredictedPoints int       `json:"predicted_points"`
	Confidence      float64   `json:"confidence"`
	Range           Range     `json:"range"`
	Factors         Factors   `json:"factors"`
	Timestamp       time.Time `json:"timestamp"`

	// ActualPoints is filled in once the predicted season has been played.
	ActualPoints *int `json:"actual_points,omitempty"`
}

// Accuracy returns the percentage accuracy of the prediction against the
// recorded actual points. ok is false when no actual value is known.
func (p Prediction) Accuracy() (float64, bool) {
	if p.ActualPoints == nil {
		return 0, false
	}
	actual := *p.ActualPoints
	if actual == 0 {
		if p.PredictedPoints == 0 {
			return 100, true
		}
		return 0, true
	}
	diff := actual - p.PredictedPoints
	if diff < 0 {
		diff = -diff
	}
	acc := 100 - float64(diff)/float64(actual)*100
	if acc < 0 {
		acc = 0
	}
	return acc, true
}

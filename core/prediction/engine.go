package prediction

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/nhltiers/core/logger"
	"github.com/kilianp07/nhltiers/core/metrics"
	"github.com/kilianp07/nhltiers/core/model"
)

const (
	maxTrendWeight       = 0.4
	trendWeightPerSeason = 0.1
	minCapIncrease       = 40
	capIncreaseRatio     = 0.5
)

// Predictor projects a player's points for the next season.
type Predictor interface {
	PredictNextSeason(ctx context.Context, p model.Player) model.Prediction
}

// HistoryRecorder appends a prediction to a player's history and persists it.
// It is implemented by history.Store.
type HistoryRecorder interface {
	Record(ctx context.Context, playerID model.PlayerID, p model.Prediction)
}

// Engine is the heuristic next-season predictor. History and metrics are
// optional collaborators.
type Engine struct {
	history HistoryRecorder
	sink    metrics.PredictionSink
	log     logger.Logger
	now     func() time.Time
	newID   func() string
}

// NewEngine returns an Engine. hist and sink may be nil.
func NewEngine(hist HistoryRecorder, sink metrics.PredictionSink, log logger.Logger) *Engine {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		history: hist,
		sink:    sink,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// SetClock overrides the clock used to timestamp predictions.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// PredictNextSeason computes the projection, records it in the player's
// history and reports it to the metrics sink. It never fails; persistence and
// metrics errors are logged.
func (e *Engine) PredictNextSeason(ctx context.Context, p model.Player) model.Prediction {
	pred := e.Compute(p)
	if e.history != nil {
		e.history.Record(ctx, p.ID, pred)
	}
	ev := metrics.PredictionEvent{
		PlayerID:        string(p.ID),
		Position:        p.PrimaryPosition(),
		Team:            p.Team,
		PredictedPoints: pred.PredictedPoints,
		Low:             pred.Range.Low,
		High:            pred.Range.High,
		Confidence:      pred.Confidence,
		Factors:         pred.Factors,
		Time:            pred.Timestamp,
	}
	if err := e.sink.RecordPrediction(ev); err != nil {
		e.log.Warnf("record prediction metrics for %s: %v", p.ID, err)
	}
	e.log.Debugw("prediction computed", map[string]any{
		"player_id":  string(p.ID),
		"points":     pred.PredictedPoints,
		"confidence": pred.Confidence,
	})
	return pred
}

// Compute builds a prediction without side effects other than reading the
// clock and generating an id.
func (e *Engine) Compute(p model.Player) model.Prediction {
	base := float64(max(0, p.CurrentSeasonPoints))
	gp := max(0, p.GamesPlayed)

	trend, trendOK := WeightedTrend(p.Seasons)
	ageF := AgeFactor(p.Age.OrDefault())
	posF := PositionFactor(p.Position)
	gpF := GamesPlayedFactor(gp)
	consF := ConsistencyFactor(p.Seasons)
	trendF := TrendFactor(trend, trendOK, p.CurrentSeasonPoints, gp)

	adjusted := base * gpF
	if trendOK && len(p.Seasons) >= 2 {
		trendPoints := math.Round(trend * FullSeasonGames)
		w := math.Min(maxTrendWeight, float64(len(p.Seasons))*trendWeightPerSeason)
		adjusted = base*gpF*(1-w) + trendPoints*w
	}

	points := math.Round(adjusted * ageF * posF * consF * trendF)
	limit := math.Floor(base + math.Max(base*capIncreaseRatio, minCapIncrease))
	points = math.Max(0, math.Min(points, limit))
	predicted := int(points)

	conf := confidence(p, consF, trend, trendOK)
	spread := int(math.Round(float64(predicted) * (1 - conf)))

	return model.Prediction{
		ID:              e.newID(),
		PlayerID:        p.ID,
		PredictedPoints: predicted,
		Confidence:      conf,
		Range: model.Range{
			Low:  max(0, predicted-spread),
			High: predicted + spread,
		},
		Factors: model.Factors{
			Age:         ageF,
			Position:    posF,
			GamesPlayed: gpF,
			Consistency: consF,
		},
		Timestamp: e.now(),
	}
}

package prediction

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/nhltiers/core/model"
)

const (
	// FullSeasonGames is the length of a regular season.
	FullSeasonGames = 82
	// MinRegularGames is the minimum games for a regular-season ppg sample.
	MinRegularGames = 20
	// MinPlayoffGames is the minimum games for a playoff ppg sample.
	MinPlayoffGames = 5

	trendSeasons       = 3
	maxGamesFactor     = 1.25
	maxTrendAdjustment = 0.15
	playoffBonusWeight = 0.1
	minPpgDenominator  = 0.5
)

type ageBand struct {
	min, max int
	factor   float64
}

// Inclusive, ascending and non-overlapping.
var ageBands = []ageBand{
	{18, 23, 1.10},
	{24, 28, 1.05},
	{29, 31, 1.00},
	{32, 35, 0.95},
	{36, 99, 0.90},
}

var positionFactors = map[string]float64{
	"C":  1.10,
	"LW": 1.00,
	"RW": 1.00,
	"D":  0.80,
	"G":  0.00,
}

// AgeFactor returns the age-curve multiplier. Ages outside every band are
// treated as prime age.
func AgeFactor(age int) float64 {
	for _, b := range ageBands {
		if age >= b.min && age <= b.max {
			return b.factor
		}
	}
	return 1.05
}

// PositionFactor weights scoring expectations by primary position. Only the
// token before the first slash is considered.
func PositionFactor(position string) float64 {
	pos, _, _ := strings.Cut(position, "/")
	if f, ok := positionFactors[strings.TrimSpace(pos)]; ok {
		return f
	}
	return 1.0
}

// GamesPlayedFactor extrapolates shortened seasons to a full season, capped at
// a 25% upside.
func GamesPlayedFactor(gamesPlayed int) float64 {
	if gamesPlayed >= FullSeasonGames {
		return 1.0
	}
	return math.Min(maxGamesFactor, float64(FullSeasonGames)/float64(max(1, gamesPlayed)))
}

// PointsPerGame returns points/gp, or false when the sample is smaller than
// minGames.
func PointsPerGame(points, gp, minGames int) (float64, bool) {
	if gp < minGames || gp <= 0 {
		return 0, false
	}
	return float64(points) / float64(gp), true
}

// recentSeasons returns up to n most recent seasons ordered oldest first.
// The input slice is not modified.
func recentSeasons(seasons []model.SeasonRecord, n int) []model.SeasonRecord {
	sorted := make([]model.SeasonRecord, len(seasons))
	copy(sorted, seasons)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Season < sorted[j].Season })
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}

// WeightedTrend estimates recent points per game from the last three seasons,
// weighting later seasons more heavily and rewarding playoff overperformance.
// ok is false when no season has enough regular-season games.
func WeightedTrend(seasons []model.SeasonRecord) (trend float64, ok bool) {
	recent := recentSeasons(seasons, trendSeasons)
	count := float64(len(recent))
	var ppgs, weights []float64
	bonus := 0.0
	for i, s := range recent {
		weight := float64(i+1) / count
		ppg, regular := PointsPerGame(s.Points, s.GP, MinRegularGames)
		if !regular {
			continue
		}
		ppgs = append(ppgs, ppg)
		weights = append(weights, weight)
		if playoffPpg, playoff := PointsPerGame(s.PlayoffPoints, s.PlayoffGP, MinPlayoffGames); playoff && playoffPpg > ppg {
			bonus += playoffBonusWeight * (playoffPpg - ppg)
		}
	}
	if len(weights) == 0 {
		return 0, false
	}
	return stat.Mean(ppgs, weights) + bonus, true
}

// currentPpg returns the active season's points per game, 0 without games.
func currentPpg(points, gamesPlayed int) float64 {
	if gamesPlayed <= 0 {
		return 0
	}
	return float64(points) / float64(gamesPlayed)
}

// trendStrength is the relative gap between the trend and the current pace.
func trendStrength(trend float64, points, gamesPlayed int) (strength, diff float64) {
	cur := currentPpg(points, gamesPlayed)
	diff = trend - cur
	return math.Abs(diff) / math.Max(minPpgDenominator, cur), diff
}

// TrendFactor nudges the projection towards the historical trend by at most
// 15% in either direction. Without a trend it is neutral.
func TrendFactor(trend float64, ok bool, points, gamesPlayed int) float64 {
	if !ok {
		return 1.0
	}
	strength, diff := trendStrength(trend, points, gamesPlayed)
	adj := strength
	if diff < 0 {
		adj = -strength
	} else if diff == 0 {
		adj = 0
	}
	adj = math.Max(-maxTrendAdjustment, math.Min(maxTrendAdjustment, adj))
	return 1 + adj
}

// ConsistencyFactor rewards stable scoring backed by enough games, up to 1.15.
// Fewer than two seasons is neutral.
func ConsistencyFactor(seasons []model.SeasonRecord) float64 {
	if len(seasons) < 2 {
		return 1.0
	}
	recent := recentSeasons(seasons, trendSeasons)
	ppgs := make([]float64, len(recent))
	totalGP := 0
	for i, s := range recent {
		ppgs[i] = float64(s.Points) / float64(max(1, s.GP))
		totalGP += s.GP
	}
	_, variance := stat.PopMeanVariance(ppgs, nil)
	score := math.Max(0, 1-math.Min(1, variance*2))
	experience := math.Min(1, float64(totalGP)/200)
	return 1 + 0.15*score*experience
}

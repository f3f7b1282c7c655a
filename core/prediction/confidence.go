package prediction

import (
	"math"

	"github.com/kilianp07/nhltiers/core/model"
)

const (
	baseConfidence     = 0.40
	maxGamesBonus      = 0.15
	gamesBonusDivisor  = 550.0
	maxHistorySeasons  = 5
	perSeasonBonus     = 0.03
	maxTrendConfidence = 0.10
)

// ageConfidence rewards prime-age players. An unknown age adds nothing, unlike
// AgeFactor which assumes DefaultAge.
func ageConfidence(age model.Age) float64 {
	if !age.Known {
		return 0
	}
	switch y := age.Years; {
	case y >= 23 && y <= 32:
		return 0.15
	case y >= 21 && y <= 34:
		return 0.10
	default:
		return 0.05
	}
}

// Confidence scores how much historical signal backs a prediction, in [0,1].
func Confidence(p model.Player) float64 {
	trend, ok := WeightedTrend(p.Seasons)
	return confidence(p, ConsistencyFactor(p.Seasons), trend, ok)
}

func confidence(p model.Player, consistency, trend float64, trendOK bool) float64 {
	c := baseConfidence
	c += ageConfidence(p.Age)
	c += math.Min(maxGamesBonus, float64(max(0, p.GamesPlayed))/gamesBonusDivisor)
	c += float64(min(maxHistorySeasons, len(p.Seasons))) * perSeasonBonus
	c += consistency - 1
	if trendOK {
		strength, _ := trendStrength(trend, p.CurrentSeasonPoints, p.GamesPlayed)
		c += math.Max(0, maxTrendConfidence-strength*maxTrendConfidence)
	}
	return math.Max(0, math.Min(1, c))
}

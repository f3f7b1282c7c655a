package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/nhltiers/core/model"
)

func TestAgeFactor(t *testing.T) {
	cases := []struct {
		age  int
		want float64
	}{
		{18, 1.10}, {23, 1.10},
		{24, 1.05}, {25, 1.05}, {28, 1.05},
		{29, 1.00}, {31, 1.00},
		{32, 0.95}, {35, 0.95},
		{36, 0.90}, {99, 0.90},
		{17, 1.05}, {0, 1.05}, {100, 1.05},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AgeFactor(c.age), "age %d", c.age)
	}
}

func TestAgeFactor_BandsContiguous(t *testing.T) {
	allowed := map[float64]bool{1.10: true, 1.05: true, 1.00: true, 0.95: true, 0.90: true}
	for age := 18; age <= 99; age++ {
		matches := 0
		for _, b := range ageBands {
			if age >= b.min && age <= b.max {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "age %d", age)
		assert.True(t, allowed[AgeFactor(age)])
	}
}

func TestPositionFactor(t *testing.T) {
	assert.Equal(t, 1.10, PositionFactor("C/LW"))
	assert.Equal(t, PositionFactor("C"), PositionFactor("C/LW"))
	assert.Equal(t, 1.00, PositionFactor("LW"))
	assert.Equal(t, 1.00, PositionFactor(" RW /LW"))
	assert.Equal(t, 0.80, PositionFactor("D"))
	assert.Equal(t, 0.0, PositionFactor("G"))
	assert.Equal(t, 1.0, PositionFactor("X"))
	assert.Equal(t, 1.0, PositionFactor(""))
}

func TestGamesPlayedFactor(t *testing.T) {
	assert.Equal(t, 1.0, GamesPlayedFactor(82))
	assert.Equal(t, 1.0, GamesPlayedFactor(164))
	assert.Equal(t, 1.25, GamesPlayedFactor(41))
	assert.Equal(t, 1.25, GamesPlayedFactor(0))
	assert.InDelta(t, 82.0/70.0, GamesPlayedFactor(70), 1e-12)
}

func TestPointsPerGame(t *testing.T) {
	_, ok := PointsPerGame(30, 19, MinRegularGames)
	assert.False(t, ok)
	ppg, ok := PointsPerGame(30, 20, MinRegularGames)
	assert.True(t, ok)
	assert.Equal(t, 1.5, ppg)
	_, ok = PointsPerGame(3, 4, MinPlayoffGames)
	assert.False(t, ok)
}

func TestWeightedTrend(t *testing.T) {
	seasons := []model.SeasonRecord{
		{Season: 2023, GP: 82, Points: 123, PlayoffGP: 10, PlayoffPoints: 20},
		{Season: 2021, GP: 82, Points: 41},
		{Season: 2022, GP: 82, Points: 82},
		{Season: 2019, GP: 82, Points: 200},
	}
	trend, ok := WeightedTrend(seasons)
	assert.True(t, ok)
	// ppg 0.5, 1.0, 1.5 weighted 1/3, 2/3, 1 plus 0.1*(2.0-1.5) playoff bonus.
	assert.InDelta(t, 7.0/6.0+0.05, trend, 1e-9)
	assert.Equal(t, 2023, seasons[0].Season, "input must not be reordered")
}

func TestWeightedTrend_GatesSmallSamples(t *testing.T) {
	seasons := []model.SeasonRecord{
		{Season: 2022, GP: 80, Points: 40},
		{Season: 2023, GP: 10, Points: 30, PlayoffGP: 3, PlayoffPoints: 9},
	}
	trend, ok := WeightedTrend(seasons)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, trend, 1e-9)

	_, ok = WeightedTrend([]model.SeasonRecord{{Season: 2023, GP: 5, Points: 5}})
	assert.False(t, ok)
	_, ok = WeightedTrend(nil)
	assert.False(t, ok)
}

func TestTrendFactor(t *testing.T) {
	assert.Equal(t, 1.0, TrendFactor(3, false, 10, 10))
	assert.InDelta(t, 1.15, TrendFactor(1.0, true, 41, 82), 1e-12)
	assert.InDelta(t, 0.9, TrendFactor(0.45, true, 41, 82), 1e-12)
	assert.InDelta(t, 0.85, TrendFactor(0.0, true, 82, 82), 1e-12)
	assert.Equal(t, 1.0, TrendFactor(0.5, true, 41, 82))
	// No games: current pace is 0 and the denominator floors at 0.5.
	assert.InDelta(t, 1.15, TrendFactor(0.2, true, 0, 0), 1e-12)
}

func TestConsistencyFactor(t *testing.T) {
	assert.Equal(t, 1.0, ConsistencyFactor(nil))
	assert.Equal(t, 1.0, ConsistencyFactor([]model.SeasonRecord{{Season: 2023, GP: 82, Points: 82}}))

	steady := []model.SeasonRecord{
		{Season: 2022, GP: 82, Points: 82},
		{Season: 2023, GP: 82, Points: 82},
	}
	assert.InDelta(t, 1+0.15*0.82, ConsistencyFactor(steady), 1e-12)

	veteran := []model.SeasonRecord{
		{Season: 2021, GP: 82, Points: 82},
		{Season: 2022, GP: 82, Points: 82},
		{Season: 2023, GP: 82, Points: 82},
	}
	assert.InDelta(t, 1.15, ConsistencyFactor(veteran), 1e-12)

	// ppg 0 and 2: population variance 1, so no consistency credit.
	erratic := []model.SeasonRecord{
		{Season: 2022, GP: 100, Points: 0},
		{Season: 2023, GP: 100, Points: 200},
	}
	assert.Equal(t, 1.0, ConsistencyFactor(erratic))
}

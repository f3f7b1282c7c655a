package roster

import (
	"math"
	"math/rand/v2"

	"github.com/kilianp07/nhltiers/core/model"
)

const defaultBaseSalary = 2_000_000

var baseSalaries = map[string]float64{
	"Goalie":     3_000_000,
	"Defenseman": 2_500_000,
	"Left Wing":  2_000_000,
	"Right Wing": 2_000_000,
	"Center":     2_500_000,
}

// MockSalary fabricates a plausible salary from position and points with a
// ±20% random variation. Positions are matched on their full name.
func MockSalary(position string, points int, rng *rand.Rand) int {
	base, ok := baseSalaries[position]
	if !ok {
		base = defaultBaseSalary
	}
	perf := math.Max(0.5, math.Min(2.0, float64(points)/50+1))
	variation := 0.8 + rng.Float64()*0.4
	return int(math.Round(base * perf * variation))
}

// AssignMockSalaries fills the salary of every player in place.
func AssignMockSalaries(players []model.Player, rng *rand.Rand) {
	for i := range players {
		players[i].Salary = MockSalary(players[i].Position, players[i].Points, rng)
	}
}

package history

import (
	"fmt"
	"time"

	corehistory "github.com/kilianp07/nhltiers/core/history"
	"github.com/kilianp07/nhltiers/core/model"
)

var baseTime = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

// snapshot builds players×perPlayer predictions an hour apart.
func snapshot(players, perPlayer int) corehistory.Snapshot {
	snap := corehistory.Snapshot{}
	for p := 0; p < players; p++ {
		id := fmt.Sprintf("%d", 8470000+p)
		for i := 0; i < perPlayer; i++ {
			snap[id] = append(snap[id], model.Prediction{
				ID:              fmt.Sprintf("%s-%02d", id, i),
				PlayerID:        model.PlayerID(id),
				PredictedPoints: 40 + i,
				Confidence:      0.75,
				Range:           model.Range{Low: 30 + i, High: 50 + i},
				Factors:         model.Factors{Age: 1, Position: 1.05, GamesPlayed: 1, Consistency: 1},
				Timestamp:       baseTime.Add(time.Duration(i) * time.Hour),
			})
		}
	}
	return snap
}

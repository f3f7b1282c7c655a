package roster

import (
	"strings"

	"github.com/kilianp07/nhltiers/core/model"
)

// Search returns players whose name, team or position contains the query,
// ignoring case. A blank query matches everyone.
func Search(players []model.Player, query string) []model.Player {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]model.Player, len(players))
		copy(out, players)
		return out
	}
	var out []model.Player
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Team), q) ||
			strings.Contains(strings.ToLower(p.Position), q) {
			out = append(out, p)
		}
	}
	return out
}

package roster

import "github.com/kilianp07/nhltiers/core/model"

// Tier is a coarse scoring bucket, 1 being the best.
type Tier int

const (
	TierElite Tier = iota + 1
	TierHigh
	TierModerate
	TierRole
	TierDeveloping
)

// Tiers lists every tier from best to worst.
var Tiers = []Tier{TierElite, TierHigh, TierModerate, TierRole, TierDeveloping}

// Point thresholds for the first four tiers.
const (
	ElitePoints    = 80
	HighPoints     = 60
	ModeratePoints = 40
	RolePoints     = 20
)

// TierFor buckets current season points.
func TierFor(points int) Tier {
	switch {
	case points >= ElitePoints:
		return TierElite
	case points >= HighPoints:
		return TierHigh
	case points >= ModeratePoints:
		return TierModerate
	case points >= RolePoints:
		return TierRole
	default:
		return TierDeveloping
	}
}

func (t Tier) String() string {
	switch t {
	case TierElite:
		return "elite"
	case TierHigh:
		return "high"
	case TierModerate:
		return "moderate"
	case TierRole:
		return "role"
	case TierDeveloping:
		return "developing"
	default:
		return "unknown"
	}
}

// Label is the display title of the tier.
func (t Tier) Label() string {
	switch t {
	case TierElite:
		return "Elite"
	case TierHigh:
		return "High Performers"
	case TierModerate:
		return "Solid Contributors"
	case TierRole:
		return "Role Players"
	case TierDeveloping:
		return "Developing Talent"
	default:
		return ""
	}
}

// Categorize groups players by tier, keeping roster order within a tier.
func Categorize(players []model.Player) map[Tier][]model.Player {
	out := make(map[Tier][]model.Player, len(Tiers))
	for _, p := range players {
		t := TierFor(p.CurrentSeasonPoints)
		out[t] = append(out[t], p)
	}
	return out
}

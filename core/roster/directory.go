package roster

import "github.com/kilianp07/nhltiers/core/model"

// Directory is a read-only, id-indexed roster.
type Directory struct {
	players []model.Player
	byID    map[model.PlayerID]int
}

// NewDirectory indexes the players. Later duplicates of an id are ignored.
func NewDirectory(players []model.Player) *Directory {
	d := &Directory{byID: make(map[model.PlayerID]int, len(players))}
	for _, p := range players {
		if _, dup := d.byID[p.ID]; dup {
			continue
		}
		d.byID[p.ID] = len(d.players)
		d.players = append(d.players, p)
	}
	return d
}

// Get returns the player with the given id.
func (d *Directory) Get(id model.PlayerID) (model.Player, bool) {
	i, ok := d.byID[id]
	if !ok {
		return model.Player{}, false
	}
	return d.players[i], true
}

// List returns all players in roster order.
func (d *Directory) List() []model.Player { return Search(d.players, "") }

// Search filters the roster, see Search.
func (d *Directory) Search(query string) []model.Player { return Search(d.players, query) }

// Tiers groups the roster by tier.
func (d *Directory) Tiers() map[Tier][]model.Player { return Categorize(d.players) }

// Len returns the number of players.
func (d *Directory) Len() int { return len(d.players) }

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultAge is used by the age curve when a player's age is unknown.
const DefaultAge = 25

const maxAge = 150

// PlayerID identifies a player. Rosters use numeric ranks as ids, so the JSON
// form accepts both strings and integers; the value is always kept stringified.
type PlayerID string

// UnmarshalJSON accepts a JSON string or number.
func (id *PlayerID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = PlayerID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("player id: %w", err)
	}
	*id = PlayerID(n.String())
	return nil
}

func (id PlayerID) String() string { return string(id) }

// Age is a player's age in years. Known is false when the source did not
// provide a parseable value.
type Age struct {
	Years int
	Known bool
}

// AgeOf returns a known age.
func AgeOf(years int) Age { return Age{Years: years, Known: true} }

// ParseAge parses a textual age. Placeholders like "-" and values outside
// [0, 150] yield an unknown age.
func ParseAge(s string) Age {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > maxAge {
			return Age{}
		}
		return AgeOf(int(f))
	}
	if n < 0 || n > maxAge {
		return Age{}
	}
	return AgeOf(n)
}

// OrDefault returns the age in years, or DefaultAge when unknown.
func (a Age) OrDefault() int {
	if !a.Known {
		return DefaultAge
	}
	return a.Years
}

// MarshalJSON writes the age as a number, or null when unknown.
func (a Age) MarshalJSON() ([]byte, error) {
	if !a.Known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(a.Years)), nil
}

// UnmarshalJSON accepts numbers, numeric strings, placeholders and null.
func (a *Age) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Age{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = ParseAge(s)
		return nil
	}
	*a = ParseAge(string(b))
	return nil
}

// SeasonRecord is a snapshot of one completed season. It is never mutated by
// the prediction code.
type SeasonRecord struct {
	Season        int `json:"season"`
	GP            int `json:"gp"`
	Points        int `json:"p"`
	PlayoffGP     int `json:"playoffGP,omitempty"`
	PlayoffPoints int `json:"playoffP,omitempty"`
}

// Player holds roster and statistical data for a skater or goalie.
type Player struct {
	ID        PlayerID `json:"id"`
	Name      string   `json:"name"`
	Team      string   `json:"team"`
	Position  string   `json:"position"`
	Age       Age      `json:"age"`
	Salary    int      `json:"salary"`
	PlusMinus int      `json:"plusMinus"`

	GamesPlayed         int `json:"gamesPlayed"`
	Goals               int `json:"goals"`
	Assists             int `json:"assists"`
	Points              int `json:"points"`
	CurrentSeasonPoints int `json:"currentSeasonPoints"`

	// Seasons lists completed seasons, oldest first. May be empty.
	Seasons []SeasonRecord `json:"seasons,omitempty"`
}

// PrimaryPosition returns the first slash-delimited token of the position,
// e.g. "C" for "C/LW".
func (p Player) PrimaryPosition() string {
	pos, _, _ := strings.Cut(p.Position, "/")
	return strings.TrimSpace(pos)
}

package roster

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/nhltiers/core/model"
)

const sampleCSV = `Rank,Name,Team,Position,GP,G,A,Pts,PlusMinus
1,Nikita Kucherov,TBL,RW,78,37,84,121,22

2,Nathan MacKinnon,COL,C/RW,79,32,84,116,25 :contentReference[oaicite:0]
3,Leon Draisaitl,EDM,C/W,71,52,54,106,32
4,Leon Draisaitl,EDM,C/W,71,52,54,106,32
5,William Nylander,TOR,W/C, duplicate entry skip
6,Martin Necas,C/RW,79,27,56,83,5
x,Sebastian Aho,  CAR,C/W,79,29,45,74,7
8,Ryan Donato, CHI, C/W,80,31,31,n/a,-15
12a,Jack Hughes,NJD,C,62,27,47,74,-10
`

func TestParseCSV(t *testing.T) {
	players, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, players, 6)

	assert.Equal(t, model.PlayerID("1"), players[0].ID)
	assert.Equal(t, 121, players[0].CurrentSeasonPoints)
	assert.Equal(t, 84, players[0].Assists)
	assert.False(t, players[0].Age.Known)

	assert.Equal(t, 25, players[1].PlusMinus, "annotation must be stripped")

	aho := players[3]
	assert.Equal(t, model.PlayerID("4"), aho.ID, "non-numeric rank falls back to position")
	assert.Equal(t, "CAR", aho.Team)

	donato := players[4]
	assert.Equal(t, 0, donato.Points)
	assert.Equal(t, -15, donato.PlusMinus)

	assert.Equal(t, model.PlayerID("12"), players[5].ID, "rank keeps its leading digits")
}

func TestDefaultRoster(t *testing.T) {
	players, err := Default()
	require.NoError(t, err)
	assert.Len(t, players, 95)

	d := NewDirectory(players)
	kuch, ok := d.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Nikita Kucherov", kuch.Name)
	assert.Equal(t, TierElite, TierFor(kuch.CurrentSeasonPoints))

	tiers := d.Tiers()
	assert.Len(t, tiers[TierElite], 25)
	assert.Len(t, tiers[TierDeveloping], 1)
	_, ok = d.Get("50")
	assert.False(t, ok, "annotated duplicate row must be skipped")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "players.json")
	data := `[{"id": 8, "name": "Jack Eichel", "team": "VGK", "position": "C", "age": 28,
		"gamesPlayed": 77, "currentSeasonPoints": 94,
		"seasons": [{"season": 2023, "gp": 63, "p": 68}]}]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(data), 0o644))
	players, err := Load(jsonPath)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, model.AgeOf(28), players[0].Age)
	assert.Len(t, players[0].Seasons, 1)

	csvPath := filepath.Join(dir, "players.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))
	players, err = Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, players, 5)

	_, err = Load(filepath.Join(dir, "players.xml"))
	assert.Error(t, err)
	txt := filepath.Join(dir, "players.txt")
	require.NoError(t, os.WriteFile(txt, nil, 0o644))
	_, err = Load(txt)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	players, err = Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, players)
}

func TestTierFor(t *testing.T) {
	cases := map[int]Tier{
		121: TierElite, 80: TierElite,
		79: TierHigh, 60: TierHigh,
		59: TierModerate, 40: TierModerate,
		39: TierRole, 20: TierRole,
		19: TierDeveloping, 0: TierDeveloping,
	}
	for pts, want := range cases {
		assert.Equal(t, want, TierFor(pts), "points %d", pts)
	}
	assert.Equal(t, "elite", TierElite.String())
	assert.Equal(t, "Developing Talent", TierDeveloping.Label())
}

func TestSearch(t *testing.T) {
	players := []model.Player{
		{ID: "1", Name: "Auston Matthews", Team: "TOR", Position: "C/LW"},
		{ID: "2", Name: "Victor Hedman", Team: "TBL", Position: "D"},
		{ID: "3", Name: "Cale Makar", Team: "COL", Position: "D"},
	}
	assert.Len(t, Search(players, "tor"), 2)
	assert.Len(t, Search(players, " d "), 2)
	assert.Len(t, Search(players, "  "), 3)
	assert.Empty(t, Search(players, "zzz"))
}

func TestMockSalary(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 200; i++ {
		s := MockSalary("Center", 100, rng)
		// 2.5M * 2.0 (capped performance) * [0.8, 1.2)
		assert.GreaterOrEqual(t, s, 4_000_000)
		assert.LessOrEqual(t, s, 6_000_000)
	}
	s := MockSalary("LW", 0, rng)
	assert.GreaterOrEqual(t, s, 1_600_000)
	assert.LessOrEqual(t, s, 2_400_000)

	players := []model.Player{{Position: "Goalie"}, {Position: "D", Points: 50}}
	AssignMockSalaries(players, rng)
	assert.Positive(t, players[0].Salary)
	assert.Positive(t, players[1].Salary)
}

func TestDirectory_IgnoresDuplicateIDs(t *testing.T) {
	d := NewDirectory([]model.Player{{ID: "1", Name: "a"}, {ID: "1", Name: "b"}, {ID: "2"}})
	assert.Equal(t, 2, d.Len())
	p, _ := d.Get("1")
	assert.Equal(t, "a", p.Name)
	assert.Len(t, d.Search("b"), 0)
}

package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/kilianp07/nhltiers/core/model"
)

const (
	csvFields       = 9
	annotationToken = " :contentReference"
)

var (
	skipMarker    = regexp.MustCompile(`(?i)duplicate\s+entry\s+skip|duplicate\s+skip`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// ParseCSV reads a roster in the Rank,Name,Team,Position,GP,G,A,Pts,PlusMinus
// layout. Annotated duplicate rows, rows with missing columns and repeated
// name/team pairs are skipped. Unparseable numbers read as zero.
func ParseCSV(r io.Reader) ([]model.Player, error) {
	var buf bytes.Buffer
	sc := bufio.NewScanner(r)
	header := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if i := strings.Index(line, annotationToken); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		if skipMarker.MatchString(line) {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	cr := csv.NewReader(&buf)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var players []model.Player
	seen := map[string]bool{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse roster: %w", err)
		}
		if len(rec) < csvFields {
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		name, team, position := rec[1], rec[2], rec[3]
		key := name + "|" + team
		if seen[key] {
			continue
		}
		seen[key] = true

		rank := atoi(rec[0])
		if rank <= 0 {
			rank = len(players) + 1
		}
		points := atoi(rec[7])
		players = append(players, model.Player{
			ID:                  model.PlayerID(strconv.Itoa(rank)),
			Name:                name,
			Team:                whitespaceRun.ReplaceAllString(team, " "),
			Position:            position,
			GamesPlayed:         atoi(rec[4]),
			Goals:               atoi(rec[5]),
			Assists:             atoi(rec[6]),
			Points:              points,
			PlusMinus:           atoi(rec[8]),
			CurrentSeasonPoints: points,
		})
	}
	return players, nil
}

// atoi parses the leading integer of s, returning 0 when there is none.
func atoi(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

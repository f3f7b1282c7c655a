package roster

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianp07/nhltiers/core/model"
)

//go:embed data/players.csv
var defaultData embed.FS

// ErrUnsupportedFormat is returned for roster files that are neither CSV nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// ParseJSON reads an array of players, including optional season history.
func ParseJSON(r io.Reader) ([]model.Player, error) {
	var players []model.Player
	if err := json.NewDecoder(r).Decode(&players); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return players, nil
}

// Load reads a roster file, choosing the parser from the extension. An empty
// path loads the built-in dataset.
func Load(path string) ([]model.Player, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// Default parses the embedded league scoring leaders dataset.
func Default() ([]model.Player, error) {
	f, err := defaultData.Open("data/players.csv")
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseCSV(f)
}

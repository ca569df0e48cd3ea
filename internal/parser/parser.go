// Package parser loads ball-by-ball match files into model.Match records and
// orders them chronologically.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ErrNoDate is returned for match files that carry no info.dates entry.
var ErrNoDate = errors.New("match has no date")

// Match file extensions. Compressed files are decoded transparently.
const (
	extJSON = ".json"
	extZstd = ".json.zst"
)

// ParseMatch reads and decodes the match file at path. The match ID is the
// file name without its extension.
func ParseMatch(path string) (*model.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open match: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, extZstd) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	m, err := DecodeMatch(r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	m.ID = MatchID(path)
	return m, nil
}

// DecodeMatch decodes one match document. Missing extras and wickets decode
// to their zero values.
func DecodeMatch(r io.Reader) (*model.Match, error) {
	var m model.Match
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MatchID derives a match identifier from a file path.
func MatchID(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{extZstd, extJSON} {
		if strings.HasSuffix(base, ext) {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

// matchFiles lists candidate match files in dir in name order.
func matchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read matches dir: %w", err)
	}
	var out []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, extJSON) && !strings.HasSuffix(name, extZstd) {
			continue
		}
		// A plain and a compressed copy of the same match count once.
		id := MatchID(name)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

// LoadCorpus parses every match file in dir and returns the matches sorted
// by first date ascending. Files that fail to parse or carry no date are
// skipped, never fatal.
func LoadCorpus(dir string, logger *slog.Logger) ([]model.Match, error) {
	paths, err := matchFiles(dir)
	if err != nil {
		return nil, err
	}

	matches := make([]model.Match, 0, len(paths))
	for _, path := range paths {
		m, err := ParseMatch(path)
		if err == nil && m.Date() == "" {
			err = ErrNoDate
		}
		if err != nil {
			logger.Debug("skipping match file", "path", path, "err", err)
			continue
		}
		matches = append(matches, *m)
	}

	// Stable on name order, so equal dates keep a fixed order across runs.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date() < matches[j].Date()
	})
	return matches, nil
}

// SortedMatchFiles returns references to the dated match files in dir,
// ordered by first date ascending.
func SortedMatchFiles(dir string, logger *slog.Logger) ([]model.MatchRef, error) {
	paths, err := matchFiles(dir)
	if err != nil {
		return nil, err
	}
	var refs []model.MatchRef
	for _, path := range paths {
		m, err := ParseMatch(path)
		if err == nil && m.Date() == "" {
			err = ErrNoDate
		}
		if err != nil {
			logger.Debug("skipping match file", "path", path, "err", err)
			continue
		}
		refs = append(refs, Ref(m, path))
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Date < refs[j].Date
	})
	return refs, nil
}

// Ref builds the lightweight reference for a parsed match.
func Ref(m *model.Match, path string) model.MatchRef {
	return model.MatchRef{
		ID:      m.ID,
		Path:    path,
		Date:    m.Date(),
		Venue:   m.Info.Venue,
		Teams:   m.Info.Teams,
		Innings: len(m.Innings),
	}
}

// Players returns the sorted union of every team sheet in matches.
func Players(matches []model.Match) []string {
	set := make(map[string]struct{})
	for i := range matches {
		for _, names := range matches[i].Info.Players {
			for _, n := range names {
				set[n] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ExtractPlayers returns the sorted union of team sheets across every
// parseable match file in dir, dated or not.
func ExtractPlayers(dir string, logger *slog.Logger) ([]string, error) {
	paths, err := matchFiles(dir)
	if err != nil {
		return nil, err
	}
	var matches []model.Match
	for _, path := range paths {
		m, err := ParseMatch(path)
		if err != nil {
			logger.Debug("skipping match file", "path", path, "err", err)
			continue
		}
		matches = append(matches, model.Match{Info: model.MatchInfo{Players: m.Info.Players}})
	}
	return Players(matches), nil
}

// Package features turns batting careers into regression rows and fits the
// next-match runs model over them.
package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-cricket-metrics/internal/model"
)

const (
	colPlayer = "player"
	colTarget = "next_match_runs"
)

// BuildRows derives one feature row per career with at least one innings,
// sorted by player.
func BuildRows(careers []model.BattingCareer) []model.FeatureRow {
	rows := make([]model.FeatureRow, 0, len(careers))
	for i := range careers {
		c := &careers[i]
		if c.Innings == 0 {
			continue
		}
		rows = append(rows, Row(c))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Player < rows[j].Player })
	return rows
}

// Row derives the feature row for a single career. The target is the most
// recent innings score.
func Row(c *model.BattingCareer) model.FeatureRow {
	mean, std := popMeanStd(c.RecentScores)
	var next float64
	if n := len(c.RecentScores); n > 0 {
		next = float64(c.RecentScores[n-1])
	}
	return model.FeatureRow{
		Player:             c.Player,
		Average:            c.Average,
		StrikeRate:         c.StrikeRate,
		BallsPerBoundary:   c.BallsPerBoundary,
		BoundaryToDotRatio: c.BoundaryToDotRatio,
		BallsPerDismissal:  c.BallsPerDismissal,
		FormIndex:          c.FormIndex,
		Consistency:        c.Consistency,
		RecentMean:         mean,
		RecentStd:          std,
		NextMatchRuns:      next,
	}
}

// Find returns the row for player, if present.
func Find(rows []model.FeatureRow, player string) (model.FeatureRow, bool) {
	for _, r := range rows {
		if r.Player == player {
			return r, true
		}
	}
	return model.FeatureRow{}, false
}

// popMeanStd returns the mean and population standard deviation of v.
func popMeanStd(v []int) (float64, float64) {
	switch len(v) {
	case 0:
		return 0, 0
	case 1:
		return float64(v[0]), 0
	}
	x := make([]float64, len(v))
	for i, n := range v {
		x[i] = float64(n)
	}
	mean, variance := stat.MeanVariance(x, nil)
	n := float64(len(x))
	return mean, math.Sqrt(variance * (n - 1) / n)
}

func header() []string {
	h := make([]string, 0, len(model.FeatureNames)+2)
	h = append(h, colPlayer)
	h = append(h, model.FeatureNames...)
	return append(h, colTarget)
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// WriteCSV writes rows with a header line, player first and target last.
func WriteCSV(w io.Writer, rows []model.FeatureRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		rec := []string{rows[i].Player}
		for _, v := range rows[i].Vector() {
			rec = append(rec, fmtFloat(v))
		}
		rec = append(rec, fmtFloat(rows[i].NextMatchRuns))
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %s: %w", rows[i].Player, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. Columns are matched by name,
// so their order may differ.
func ReadCSV(r io.Reader) ([]model.FeatureRow, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(head))
	for i, name := range head {
		index[name] = i
	}
	for _, name := range header() {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	numeric := append(append([]string(nil), model.FeatureNames...), colTarget)

	var rows []model.FeatureRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		vals := make([]float64, len(numeric))
		for i, name := range numeric {
			if vals[i], err = strconv.ParseFloat(rec[index[name]], 64); err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, name, err)
			}
		}
		rows = append(rows, model.FeatureRow{
			Player:             rec[index[colPlayer]],
			Average:            vals[0],
			StrikeRate:         vals[1],
			BallsPerBoundary:   vals[2],
			BoundaryToDotRatio: vals[3],
			BallsPerDismissal:  vals[4],
			FormIndex:          vals[5],
			Consistency:        vals[6],
			RecentMean:         vals[7],
			RecentStd:          vals[8],
			NextMatchRuns:      vals[9],
		})
	}
	return rows, nil
}

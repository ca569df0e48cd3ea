package storage

import (
	"database/sql"
	"fmt"
)

// Overview is the high-level shape of the store for the summary command.
type Overview struct {
	TotalMatches   int
	EarliestMatch  string
	LatestMatch    string
	UniqueVenues   int
	Batters        int
	Bowlers        int
	InningsRows    int
	ModelTrainedAt string // empty when no model is stored
}

// LeaderRow is one line of a leaderboard.
type LeaderRow struct {
	Player  string
	Matches int
	Value   int
	Rate    float64
}

// GetDBOverview returns counts and the date range of the stored run.
func (db *DB) GetDBOverview() (Overview, error) {
	var ov Overview
	var earliest, latest sql.NullString
	err := db.conn.QueryRow(`
		SELECT COUNT(*), MIN(match_date), MAX(match_date), COUNT(DISTINCT venue)
		FROM matches`).Scan(&ov.TotalMatches, &earliest, &latest, &ov.UniqueVenues)
	if err != nil {
		return ov, fmt.Errorf("match overview: %w", err)
	}
	ov.EarliestMatch, ov.LatestMatch = earliest.String, latest.String

	counts := []struct {
		query string
		dst   *int
	}{
		{`SELECT COUNT(*) FROM batting_careers WHERE innings > 0`, &ov.Batters},
		{`SELECT COUNT(*) FROM bowling_careers`, &ov.Bowlers},
		{`SELECT COUNT(*) FROM innings_history`, &ov.InningsRows},
	}
	for _, c := range counts {
		if err := db.conn.QueryRow(c.query).Scan(c.dst); err != nil {
			return ov, fmt.Errorf("count overview: %w", err)
		}
	}

	var trainedAt sql.NullString
	err = db.conn.QueryRow(`SELECT MAX(trained_at) FROM models`).Scan(&trainedAt)
	if err != nil {
		return ov, fmt.Errorf("model overview: %w", err)
	}
	ov.ModelTrainedAt = trainedAt.String
	return ov, nil
}

// TopRunScorers returns the n batters with the most runs; Rate is strike rate.
func (db *DB) TopRunScorers(n int) ([]LeaderRow, error) {
	return db.leaders(`
		SELECT player, matches, runs, strike_rate FROM batting_careers
		WHERE innings > 0
		ORDER BY runs DESC, player LIMIT ?`, n)
}

// TopWicketTakers returns the n bowlers with the most wickets; Rate is economy.
func (db *DB) TopWicketTakers(n int) ([]LeaderRow, error) {
	return db.leaders(`
		SELECT player, matches, wickets, economy FROM bowling_careers
		ORDER BY wickets DESC, economy, player LIMIT ?`, n)
}

func (db *DB) leaders(query string, n int) ([]LeaderRow, error) {
	rows, err := db.conn.Query(query, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderRow
	for rows.Next() {
		var r LeaderRow
		if err := rows.Scan(&r.Player, &r.Matches, &r.Value, &r.Rate); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ResetStats clears every per-run table so a fresh stats run replaces,
// rather than merges with, the previous one. Trained models are kept.
func (db *DB) ResetStats() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, table := range []string{"innings_history", "batting_careers", "bowling_careers", "matches"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// InsertMatches bulk-inserts match references in a transaction.
func (db *DB) InsertMatches(refs []model.MatchRef) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(id, match_date, venue, teams, innings)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range refs {
		if _, err := stmt.Exec(r.ID, r.Date, r.Venue, strings.Join(r.Teams, " v "), r.Innings); err != nil {
			return fmt.Errorf("insert match %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// InsertBattingCareers bulk-inserts batting careers in a transaction.
// Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertBattingCareers(careers []model.BattingCareer) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO batting_careers(
			player, matches, innings, not_outs, outs, runs,
			average, strike_rate, balls_faced, fours, sixes,
			dot_balls, boundary_balls, highest_score,
			dot_ball_pct, boundary_pct, balls_per_boundary,
			boundary_to_dot_ratio, balls_per_dismissal,
			fifties, hundreds, consistency, recent_scores, form_index
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range careers {
		recent, err := encodeInts(c.RecentScores)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(
			c.Player, c.Matches, c.Innings, c.NotOuts, c.Outs, c.Runs,
			c.Average, c.StrikeRate, c.BallsFaced, c.Fours, c.Sixes,
			c.DotBalls, c.BoundaryBalls, c.HighestScore,
			c.DotBallPercentage, c.BoundaryPercentage, c.BallsPerBoundary,
			c.BoundaryToDotRatio, c.BallsPerDismissal,
			c.Fifties, c.Hundreds, c.Consistency, recent, c.FormIndex,
		)
		if err != nil {
			return fmt.Errorf("insert batting_careers for %s: %w", c.Player, err)
		}
	}
	return tx.Commit()
}

// InsertBowlingCareers bulk-inserts bowling careers in a transaction.
func (db *DB) InsertBowlingCareers(careers []model.BowlingCareer) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO bowling_careers(
			player, matches, innings, overs, balls, runs_conceded, wickets,
			average, economy, strike_rate, dot_ball_pct, boundary_pct,
			extras, wides, no_balls, extras_pct, balls_per_wicket,
			three_wicket_hauls, five_wicket_hauls, recent_wickets, form_index
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range careers {
		recent, err := encodeInts(c.RecentWickets)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(
			c.Player, c.Matches, c.Innings, c.Overs, c.Balls, c.RunsConceded, c.Wickets,
			c.Average, c.Economy, c.StrikeRate, c.DotBallPercentage, c.BoundaryPercentage,
			c.Extras, c.Wides, c.NoBalls, c.ExtrasPercentage, c.BallsPerWicket,
			c.ThreeWicketHauls, c.FiveWicketHauls, recent, c.FormIndex,
		)
		if err != nil {
			return fmt.Errorf("insert bowling_careers for %s: %w", c.Player, err)
		}
	}
	return tx.Commit()
}

// InsertInningsHistory bulk-inserts per-innings rows in a transaction.
func (db *DB) InsertInningsHistory(records []model.InningsRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO innings_history(
			player, discipline, match_id, match_date, innings_index,
			runs, balls, wickets, is_out
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.Exec(
			r.Player, r.Kind.String(), r.MatchID, r.MatchDate, r.InningsIndex,
			r.Runs, r.Balls, r.Wickets, boolInt(r.Out),
		)
		if err != nil {
			return fmt.Errorf("insert innings_history for %s/%s: %w", r.Player, r.MatchID, err)
		}
	}
	return tx.Commit()
}

const battingColumns = `
	player, matches, innings, not_outs, outs, runs,
	average, strike_rate, balls_faced, fours, sixes,
	dot_balls, boundary_balls, highest_score,
	dot_ball_pct, boundary_pct, balls_per_boundary,
	boundary_to_dot_ratio, balls_per_dismissal,
	fifties, hundreds, consistency, recent_scores, form_index`

func scanBatting(row interface{ Scan(...any) error }) (model.BattingCareer, error) {
	var c model.BattingCareer
	var recent string
	err := row.Scan(
		&c.Player, &c.Matches, &c.Innings, &c.NotOuts, &c.Outs, &c.Runs,
		&c.Average, &c.StrikeRate, &c.BallsFaced, &c.Fours, &c.Sixes,
		&c.DotBalls, &c.BoundaryBalls, &c.HighestScore,
		&c.DotBallPercentage, &c.BoundaryPercentage, &c.BallsPerBoundary,
		&c.BoundaryToDotRatio, &c.BallsPerDismissal,
		&c.Fifties, &c.Hundreds, &c.Consistency, &recent, &c.FormIndex,
	)
	if err != nil {
		return c, err
	}
	c.RecentScores, err = decodeInts(recent)
	return c, err
}

// ListBattingCareers returns all stored batting careers ordered by runs desc, then player.
func (db *DB) ListBattingCareers() ([]model.BattingCareer, error) {
	rows, err := db.conn.Query(`SELECT ` + battingColumns + ` FROM batting_careers ORDER BY runs DESC, player`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BattingCareer
	for rows.Next() {
		c, err := scanBatting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetBattingCareer returns the stored batting career for player, or nil if none.
func (db *DB) GetBattingCareer(player string) (*model.BattingCareer, error) {
	c, err := scanBatting(db.conn.QueryRow(`SELECT `+battingColumns+` FROM batting_careers WHERE player = ?`, player))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const bowlingColumns = `
	player, matches, innings, overs, balls, runs_conceded, wickets,
	average, economy, strike_rate, dot_ball_pct, boundary_pct,
	extras, wides, no_balls, extras_pct, balls_per_wicket,
	three_wicket_hauls, five_wicket_hauls, recent_wickets, form_index`

func scanBowling(row interface{ Scan(...any) error }) (model.BowlingCareer, error) {
	var c model.BowlingCareer
	var recent string
	err := row.Scan(
		&c.Player, &c.Matches, &c.Innings, &c.Overs, &c.Balls, &c.RunsConceded, &c.Wickets,
		&c.Average, &c.Economy, &c.StrikeRate, &c.DotBallPercentage, &c.BoundaryPercentage,
		&c.Extras, &c.Wides, &c.NoBalls, &c.ExtrasPercentage, &c.BallsPerWicket,
		&c.ThreeWicketHauls, &c.FiveWicketHauls, &recent, &c.FormIndex,
	)
	if err != nil {
		return c, err
	}
	c.RecentWickets, err = decodeInts(recent)
	return c, err
}

// ListBowlingCareers returns all stored bowling careers ordered by wickets desc, then player.
func (db *DB) ListBowlingCareers() ([]model.BowlingCareer, error) {
	rows, err := db.conn.Query(`SELECT ` + bowlingColumns + ` FROM bowling_careers ORDER BY wickets DESC, player`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BowlingCareer
	for rows.Next() {
		c, err := scanBowling(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetBowlingCareer returns the stored bowling career for player, or nil if
// the player has never bowled a legal ball.
func (db *DB) GetBowlingCareer(player string) (*model.BowlingCareer, error) {
	c, err := scanBowling(db.conn.QueryRow(`SELECT `+bowlingColumns+` FROM bowling_careers WHERE player = ?`, player))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetInningsHistory returns a player's stored innings for one discipline,
// oldest first.
func (db *DB) GetInningsHistory(player string, kind model.Discipline) ([]model.InningsRecord, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, match_date, innings_index, runs, balls, wickets, is_out
		FROM innings_history
		WHERE player = ? AND discipline = ?
		ORDER BY match_date, match_id, innings_index`, player, kind.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.InningsRecord
	for rows.Next() {
		r := model.InningsRecord{Player: player, Kind: kind}
		var isOut int
		if err := rows.Scan(&r.MatchID, &r.MatchDate, &r.InningsIndex, &r.Runs, &r.Balls, &r.Wickets, &isOut); err != nil {
			return nil, err
		}
		r.Out = isOut != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveModel stores a fitted regression under its name, replacing any previous fit.
func (db *DB) SaveModel(m *model.Regression) error {
	features, err := json.Marshal(m.Features)
	if err != nil {
		return fmt.Errorf("encode features: %w", err)
	}
	coefs, err := json.Marshal(m.Coefficients)
	if err != nil {
		return fmt.Errorf("encode coefficients: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO models(name, trained_at, features, coefficients, intercept, mae, train_rows, test_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Name, m.TrainedAt.UTC().Format(time.RFC3339), string(features), string(coefs),
		m.Intercept, m.MAE, m.TrainRows, m.TestRows,
	)
	if err != nil {
		return fmt.Errorf("save model %s: %w", m.Name, err)
	}
	return nil
}

// LoadModel returns the stored regression with the given name, or nil if none.
func (db *DB) LoadModel(name string) (*model.Regression, error) {
	m := model.Regression{Name: name}
	var trainedAt, features, coefs string
	err := db.conn.QueryRow(`
		SELECT trained_at, features, coefficients, intercept, mae, train_rows, test_rows
		FROM models WHERE name = ?`, name).
		Scan(&trainedAt, &features, &coefs, &m.Intercept, &m.MAE, &m.TrainRows, &m.TestRows)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if m.TrainedAt, err = time.Parse(time.RFC3339, trainedAt); err != nil {
		return nil, fmt.Errorf("parse trained_at: %w", err)
	}
	if err := json.Unmarshal([]byte(features), &m.Features); err != nil {
		return nil, fmt.Errorf("decode features: %w", err)
	}
	if err := json.Unmarshal([]byte(coefs), &m.Coefficients); err != nil {
		return nil, fmt.Errorf("decode coefficients: %w", err)
	}
	return &m, nil
}

// QueryRaw runs an arbitrary query and returns column names and every row
// rendered as text. NULL renders as "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch v := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(v)
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func encodeInts(v []int) (string, error) {
	if v == nil {
		v = []int{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode recent: %w", err)
	}
	return string(b), nil
}

func decodeInts(s string) ([]int, error) {
	out := []int{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decode recent: %w", err)
	}
	return out, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

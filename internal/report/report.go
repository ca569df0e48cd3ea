package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cricket-metrics/internal/model"
)

const none = "—"

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

func marker(player, focus string) string {
	if focus != "" && player == focus {
		return ">"
	}
	return " "
}

func f2(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func ints(v []int) string {
	if len(v) == 0 {
		return none
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// PrintBattingTable writes one row per batting career.
// If focus is non-empty, that player's row is marked with ">".
func PrintBattingTable(w io.Writer, careers []model.BattingCareer, focus string) {
	table := newTable(w)
	table.Header(
		" ", "PLAYER", "M", "INN", "NO", "RUNS", "HS", "AVG", "SR",
		"4s", "6s", "DOT%", "BND%", "B/BND", "50", "100", "CONS%", "RECENT", "FORM",
	)
	for _, c := range careers {
		table.Append(
			marker(c.Player, focus),
			c.Player,
			strconv.Itoa(c.Matches),
			strconv.Itoa(c.Innings),
			strconv.Itoa(c.NotOuts),
			strconv.Itoa(c.Runs),
			strconv.Itoa(c.HighestScore),
			f2(c.Average),
			f2(c.StrikeRate),
			strconv.Itoa(c.Fours),
			strconv.Itoa(c.Sixes),
			f2(c.DotBallPercentage),
			f2(c.BoundaryPercentage),
			f2(c.BallsPerBoundary),
			strconv.Itoa(c.Fifties),
			strconv.Itoa(c.Hundreds),
			f2(c.Consistency),
			ints(c.RecentScores),
			f2(c.FormIndex),
		)
	}
	table.Render()
}

// PrintBowlingTable writes one row per bowling career.
func PrintBowlingTable(w io.Writer, careers []model.BowlingCareer, focus string) {
	table := newTable(w)
	table.Header(
		" ", "PLAYER", "M", "INN", "OVERS", "RUNS", "WKTS", "AVG", "ECON", "SR",
		"DOT%", "BND%", "WD", "NB", "EXT%", "3W", "5W", "RECENT", "FORM",
	)
	for _, c := range careers {
		table.Append(
			marker(c.Player, focus),
			c.Player,
			strconv.Itoa(c.Matches),
			strconv.Itoa(c.Innings),
			strconv.FormatFloat(c.Overs, 'f', 1, 64),
			strconv.Itoa(c.RunsConceded),
			strconv.Itoa(c.Wickets),
			f2(c.Average),
			f2(c.Economy),
			f2(c.StrikeRate),
			f2(c.DotBallPercentage),
			f2(c.BoundaryPercentage),
			strconv.Itoa(c.Wides),
			strconv.Itoa(c.NoBalls),
			f2(c.ExtrasPercentage),
			strconv.Itoa(c.ThreeWicketHauls),
			strconv.Itoa(c.FiveWicketHauls),
			ints(c.RecentWickets),
			f2(c.FormIndex),
		)
	}
	table.Render()
}

// PrintPlayerProfile prints a player's batting and bowling records.
// A nil bowling career prints a "no bowling data" line instead of a table.
func PrintPlayerProfile(w io.Writer, bat model.BattingCareer, bowl *model.BowlingCareer) {
	fmt.Fprintf(w, "\n=== %s ===\n\n--- Batting ---\n\n", bat.Player)
	if bat.Innings == 0 {
		fmt.Fprintln(w, "No batting innings recorded.")
	} else {
		PrintBattingTable(w, []model.BattingCareer{bat}, "")
	}

	fmt.Fprintf(w, "\n--- Bowling ---\n\n")
	if bowl == nil {
		fmt.Fprintln(w, "No bowling data.")
		return
	}
	PrintBowlingTable(w, []model.BowlingCareer{*bowl}, "")
}

// PrintInningsHistory prints stored innings, one row each, in the given order.
func PrintInningsHistory(w io.Writer, records []model.InningsRecord) {
	if len(records) == 0 {
		return
	}
	kind := records[0].Kind
	table := newTable(w)
	if kind == model.DisciplineBowling {
		table.Header("DATE", "MATCH", "INN", "BALLS", "RUNS", "WKTS")
	} else {
		table.Header("DATE", "MATCH", "INN", "RUNS", "BALLS", "OUT")
	}
	for _, r := range records {
		if kind == model.DisciplineBowling {
			table.Append(r.MatchDate, r.MatchID, strconv.Itoa(r.InningsIndex+1),
				strconv.Itoa(r.Balls), strconv.Itoa(r.Runs), strconv.Itoa(r.Wickets))
			continue
		}
		score := strconv.Itoa(r.Runs)
		if !r.Out {
			score += "*"
		}
		out := "no"
		if r.Out {
			out = "yes"
		}
		table.Append(r.MatchDate, r.MatchID, strconv.Itoa(r.InningsIndex+1),
			score, strconv.Itoa(r.Balls), out)
	}
	table.Render()
}

// PrintFeatureTable prints feature rows with their target column.
func PrintFeatureTable(w io.Writer, rows []model.FeatureRow) {
	table := newTable(w)
	header := []any{"PLAYER"}
	for _, n := range model.FeatureNames {
		header = append(header, strings.ToUpper(n))
	}
	header = append(header, "NEXT_RUNS")
	table.Header(header...)

	for i := range rows {
		cells := []any{rows[i].Player}
		for _, v := range rows[i].Vector() {
			cells = append(cells, f2(v))
		}
		cells = append(cells, f2(rows[i].NextMatchRuns))
		table.Append(cells...)
	}
	table.Render()
}

// PrintModel prints a fitted regression's coefficients and its test error.
func PrintModel(w io.Writer, m *model.Regression) {
	fmt.Fprintf(w, "\nModel: %s  |  Trained: %s  |  Train rows: %d  |  Test rows: %d  |  MAE: %.2f\n\n",
		m.Name, m.TrainedAt.Format("2006-01-02 15:04"), m.TrainRows, m.TestRows, m.MAE)

	table := newTable(w)
	table.Header("FEATURE", "COEFFICIENT")
	table.Append("(intercept)", strconv.FormatFloat(m.Intercept, 'f', 4, 64))
	for i, name := range m.Features {
		coef := none
		if i < len(m.Coefficients) {
			coef = strconv.FormatFloat(m.Coefficients[i], 'f', 4, 64)
		}
		table.Append(name, coef)
	}
	table.Render()
}

package model

// Discipline tags which side of the game an innings record describes.
type Discipline int

const (
	DisciplineBatting Discipline = iota + 1
	DisciplineBowling
)

func (d Discipline) String() string {
	switch d {
	case DisciplineBatting:
		return "batting"
	case DisciplineBowling:
		return "bowling"
	default:
		return "?"
	}
}

// ---- Per-delivery and per-innings tallies ----

// BattingStats is a batting tally for one delivery or one innings.
type BattingStats struct {
	BallsFaced    int
	Runs          int
	Fours         int
	Sixes         int
	DotBalls      int
	BoundaryBalls int
	Out           bool
}

// Add returns the sum of s and o; Out is OR-reduced.
func (s BattingStats) Add(o BattingStats) BattingStats {
	return BattingStats{
		BallsFaced:    s.BallsFaced + o.BallsFaced,
		Runs:          s.Runs + o.Runs,
		Fours:         s.Fours + o.Fours,
		Sixes:         s.Sixes + o.Sixes,
		DotBalls:      s.DotBalls + o.DotBalls,
		BoundaryBalls: s.BoundaryBalls + o.BoundaryBalls,
		Out:           s.Out || o.Out,
	}
}

// BowlingStats is a bowling tally for one delivery, over or innings.
// Balls counts legal deliveries only.
type BowlingStats struct {
	Balls         int
	RunsConceded  int
	Wickets       int
	DotBalls      int
	BoundaryBalls int
	Extras        int
	Wides         int
	NoBalls       int
}

// Add returns the field-wise sum of s and o.
func (s BowlingStats) Add(o BowlingStats) BowlingStats {
	return BowlingStats{
		Balls:         s.Balls + o.Balls,
		RunsConceded:  s.RunsConceded + o.RunsConceded,
		Wickets:       s.Wickets + o.Wickets,
		DotBalls:      s.DotBalls + o.DotBalls,
		BoundaryBalls: s.BoundaryBalls + o.BoundaryBalls,
		Extras:        s.Extras + o.Extras,
		Wides:         s.Wides + o.Wides,
		NoBalls:       s.NoBalls + o.NoBalls,
	}
}

// InningsResult is one player's innings in one discipline. Exactly one of
// Batting/Bowling is meaningful, selected by Kind.
type InningsResult struct {
	MatchID      string
	MatchDate    string
	InningsIndex int
	Kind         Discipline
	Batting      BattingStats
	Bowling      BowlingStats
}

// Balls returns the participation ball count for the result's discipline:
// balls faced when batting, legal balls when bowling.
func (r InningsResult) Balls() int {
	switch r.Kind {
	case DisciplineBatting:
		return r.Batting.BallsFaced
	case DisciplineBowling:
		return r.Bowling.Balls
	default:
		return 0
	}
}

// Participated reports whether the player faced or bowled a ball.
func (r InningsResult) Participated() bool {
	return r.Balls() > 0
}

// Record flattens the result into a storable history row for player.
func (r InningsResult) Record(player string) InningsRecord {
	rec := InningsRecord{
		Player:       player,
		Kind:         r.Kind,
		MatchID:      r.MatchID,
		MatchDate:    r.MatchDate,
		InningsIndex: r.InningsIndex,
	}
	switch r.Kind {
	case DisciplineBatting:
		rec.Runs, rec.Balls, rec.Out = r.Batting.Runs, r.Batting.BallsFaced, r.Batting.Out
	case DisciplineBowling:
		rec.Runs, rec.Balls, rec.Wickets = r.Bowling.RunsConceded, r.Bowling.Balls, r.Bowling.Wickets
	}
	return rec
}

// ---- Career aggregates ----

// BattingCareer is a player's batting record across the whole corpus.
type BattingCareer struct {
	Player             string  `json:"-"`
	Matches            int     `json:"matches"`
	Innings            int     `json:"innings"`
	NotOuts            int     `json:"not_outs"`
	Outs               int     `json:"outs"`
	Runs               int     `json:"runs"`
	Average            float64 `json:"average"`
	StrikeRate         float64 `json:"strike_rate"`
	BallsFaced         int     `json:"balls_faced"`
	Fours              int     `json:"fours"`
	Sixes              int     `json:"sixes"`
	DotBalls           int     `json:"dot_balls"`
	BoundaryBalls      int     `json:"boundary_balls"`
	HighestScore       int     `json:"highest_score"`
	DotBallPercentage  float64 `json:"dot_ball_percentage"`
	BoundaryPercentage float64 `json:"boundary_percentage"`
	BallsPerBoundary   float64 `json:"balls_per_boundary"`
	BoundaryToDotRatio float64 `json:"boundary_to_dot_ratio"`
	BallsPerDismissal  float64 `json:"balls_per_dismissal"`
	Fifties            int     `json:"fifties"`
	Hundreds           int     `json:"hundreds"`
	Consistency        float64 `json:"consistency"`
	RecentScores       []int   `json:"recent_scores"`
	FormIndex          float64 `json:"form_index"`
}

// BowlingCareer is a player's bowling record across the whole corpus.
// Overs uses cricket notation: 3.5 means three overs and five balls.
type BowlingCareer struct {
	Player             string  `json:"-"`
	Matches            int     `json:"matches"`
	Innings            int     `json:"innings"`
	Overs              float64 `json:"overs"`
	Balls              int     `json:"balls"`
	RunsConceded       int     `json:"runs_conceded"`
	Wickets            int     `json:"wickets"`
	Average            float64 `json:"average"`
	Economy            float64 `json:"economy"`
	StrikeRate         float64 `json:"strike_rate"`
	DotBallPercentage  float64 `json:"dot_ball_percentage"`
	BoundaryPercentage float64 `json:"boundary_percentage"`
	Extras             int     `json:"extras"`
	Wides              int     `json:"wides"`
	NoBalls            int     `json:"no_balls"`
	ExtrasPercentage   float64 `json:"extras_percentage"`
	BallsPerWicket     float64 `json:"balls_per_wicket"`
	ThreeWicketHauls   int     `json:"three_wicket_hauls"`
	FiveWicketHauls    int     `json:"five_wicket_hauls"`
	RecentWickets      []int   `json:"recent_wickets"`
	FormIndex          float64 `json:"form_index"`
}

// InningsRecord is a stored row of a player's innings history.
type InningsRecord struct {
	Player       string
	Kind         Discipline
	MatchID      string
	MatchDate    string
	InningsIndex int
	Runs         int // scored when batting, conceded when bowling
	Balls        int
	Wickets      int
	Out          bool
}

// ---- Model features ----

// FeatureNames lists the regression inputs in column order.
var FeatureNames = []string{
	"average", "strike_rate", "balls_per_boundary", "boundary_to_dot_ratio",
	"balls_per_dismissal", "form_index", "consistency", "recent_mean", "recent_std",
}

// FeatureRow is one training/prediction row derived from a batting career.
type FeatureRow struct {
	Player             string
	Average            float64
	StrikeRate         float64
	BallsPerBoundary   float64
	BoundaryToDotRatio float64
	BallsPerDismissal  float64
	FormIndex          float64
	Consistency        float64
	RecentMean         float64
	RecentStd          float64
	NextMatchRuns      float64
}

// Vector returns the feature values in FeatureNames order.
func (r *FeatureRow) Vector() []float64 {
	return []float64{
		r.Average, r.StrikeRate, r.BallsPerBoundary, r.BoundaryToDotRatio,
		r.BallsPerDismissal, r.FormIndex, r.Consistency, r.RecentMean, r.RecentStd,
	}
}

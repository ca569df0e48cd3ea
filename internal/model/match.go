package model

// ---- Raw match records (cricsheet JSON) ----

// Extras kinds as they appear in a delivery's extras mapping.
const (
	ExtraWides   = "wides"
	ExtraNoBalls = "noballs"
	ExtraByes    = "byes"
	ExtraLegByes = "legbyes"
)

// WicketRunOut is the dismissal kind that is never credited to the bowler.
const WicketRunOut = "run out"

// Runs is the run breakdown of a single delivery.
type Runs struct {
	Batter int `json:"batter"`
	Extras int `json:"extras"`
	Total  int `json:"total"`
}

// Wicket is one dismissal recorded on a delivery.
type Wicket struct {
	PlayerOut string `json:"player_out"`
	Kind      string `json:"kind"`
}

// Delivery is one ball bowled. Extras is nil when the record carries no
// extras entry at all; an empty non-nil map still counts as "has extras".
type Delivery struct {
	Batter  string         `json:"batter"`
	Bowler  string         `json:"bowler"`
	Runs    Runs           `json:"runs"`
	Extras  map[string]int `json:"extras,omitempty"`
	Wickets []Wicket       `json:"wickets,omitempty"`
}

// IsWide reports whether the extras mapping carries a wides amount.
func (d *Delivery) IsWide() bool {
	_, ok := d.Extras[ExtraWides]
	return ok
}

// IsNoBall reports whether the extras mapping carries a no-ball amount.
func (d *Delivery) IsNoBall() bool {
	_, ok := d.Extras[ExtraNoBalls]
	return ok
}

// HasExtras reports whether the delivery has an extras entry of any kind.
func (d *Delivery) HasExtras() bool {
	return d.Extras != nil
}

// Over is the ordered deliveries of one over, legal and illegal interleaved.
type Over struct {
	Over       int        `json:"over"`
	Deliveries []Delivery `json:"deliveries"`
}

// Innings is the ordered overs of one innings.
type Innings struct {
	Team  string `json:"team"`
	Overs []Over `json:"overs"`
}

// MatchInfo holds the match metadata block.
type MatchInfo struct {
	Dates   []string            `json:"dates"`
	Teams   []string            `json:"teams"`
	Venue   string              `json:"venue"`
	Players map[string][]string `json:"players"`
}

// Match is one ball-by-ball match record. ID is derived from the file name.
type Match struct {
	ID      string    `json:"-"`
	Info    MatchInfo `json:"info"`
	Innings []Innings `json:"innings"`
}

// Date returns the first listed match date, or "" if none is recorded.
func (m *Match) Date() string {
	if len(m.Info.Dates) == 0 {
		return ""
	}
	return m.Info.Dates[0]
}

// MatchRef is a lightweight record for list/summary commands.
type MatchRef struct {
	ID      string
	Path    string
	Date    string
	Venue   string
	Teams   []string
	Innings int
}

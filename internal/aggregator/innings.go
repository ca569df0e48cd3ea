package aggregator

import "github.com/pable/go-cricket-metrics/internal/model"

// BattingInnings folds every delivery of an innings into one batting tally
// for player.
func BattingInnings(overs []model.Over, player string) model.BattingStats {
	var total model.BattingStats
	for _, over := range overs {
		for i := range over.Deliveries {
			total = total.Add(ClassifyBatting(&over.Deliveries[i], player))
		}
	}
	return total
}

// BowlingInnings folds an innings into one bowling tally for player, one over
// at a time. An over only contributes if player bowled at least one legal
// ball in it; runs and extras from an over of only illegal deliveries are
// dropped.
func BowlingInnings(overs []model.Over, player string) model.BowlingStats {
	var total model.BowlingStats
	for _, over := range overs {
		total = total.Add(bowlingOver(over, player))
	}
	return total
}

// bowlingOver returns player's tally for one over, already gated: the zero
// value is returned when no legal ball was bowled.
func bowlingOver(over model.Over, player string) model.BowlingStats {
	var sub model.BowlingStats
	for i := range over.Deliveries {
		sub = sub.Add(ClassifyBowling(&over.Deliveries[i], player))
	}
	if sub.Balls == 0 {
		return model.BowlingStats{}
	}
	return sub
}

// Innings returns player's result for one innings in the given discipline.
func Innings(match *model.Match, idx int, player string, kind model.Discipline) model.InningsResult {
	r := model.InningsResult{
		MatchID:      match.ID,
		MatchDate:    match.Date(),
		InningsIndex: idx,
		Kind:         kind,
	}
	overs := match.Innings[idx].Overs
	switch kind {
	case model.DisciplineBatting:
		r.Batting = BattingInnings(overs, player)
	case model.DisciplineBowling:
		r.Bowling = BowlingInnings(overs, player)
	}
	return r
}

// Participation returns, in corpus order, every innings in which player
// faced (batting) or bowled (bowling) at least one legal ball. matches must
// already be sorted by date ascending.
func Participation(matches []model.Match, player string, kind model.Discipline) []model.InningsResult {
	var out []model.InningsResult
	for mi := range matches {
		m := &matches[mi]
		for idx := range m.Innings {
			r := Innings(m, idx, player, kind)
			if r.Participated() {
				out = append(out, r)
			}
		}
	}
	return out
}

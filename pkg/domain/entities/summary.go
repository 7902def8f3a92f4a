package entities

// MatchSummary tallies terminal labels and winning strategies across a demand
// batch. The label counts always sum to Total.
type MatchSummary struct {
	LabelCounts    map[Label]int
	StrategyCounts map[Strategy]int
	Total          int
}

// NewMatchSummary creates an empty summary.
func NewMatchSummary() *MatchSummary {
	return &MatchSummary{
		LabelCounts:    make(map[Label]int),
		StrategyCounts: make(map[Strategy]int),
	}
}

// Add tallies one resolved outcome.
func (s *MatchSummary) Add(outcome Outcome) {
	s.LabelCounts[outcome.Label]++
	if outcome.Classified() {
		s.StrategyCounts[outcome.Strategy]++
	}
	s.Total++
}

// PerfectMatches returns the number of records whose quantities agreed
// exactly, regardless of strategy.
func (s *MatchSummary) PerfectMatches() int {
	return s.LabelCounts[LabelOk]
}

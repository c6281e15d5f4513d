package scoringdomain

// DefaultPar is used when a hole's par is unknown.
const DefaultPar = 4

// HoleScore is a played hole as it feeds the scorecard.
type HoleScore struct {
	HoleNumber int `json:"hole_number"`
	Gross      int `json:"gross"`
	Putts      int `json:"putts"`
	Penalties  int `json:"penalties"`
	Shots      int `json:"shots"`
}

// ScorecardLine is one row of the scorecard.
type ScorecardLine struct {
	HoleNumber       int  `json:"hole_number"`
	Par              int  `json:"par"`
	StrokeIndex      int  `json:"stroke_index"`
	Gross            int  `json:"gross"`
	Putts            int  `json:"putts"`
	Shots            int  `json:"shots"`
	ToPar            int  `json:"to_par"`
	StablefordPoints *int `json:"stableford_points,omitempty"`
}

// Scorecard summarises a round.
type Scorecard struct {
	Lines           []ScorecardLine `json:"lines"`
	HolesPlayed     int             `json:"holes_played"`
	TotalScore      int             `json:"total_score"`
	TotalPar        int             `json:"total_par"`
	TotalPutts      int             `json:"total_putts"`
	TotalPenalties  int             `json:"total_penalties"`
	ToPar           int             `json:"to_par"`
	Stableford      int             `json:"stableford"`
	HasStableford   bool            `json:"has_stableford"`
	PlayingHandicap *int            `json:"playing_handicap,omitempty"`
}

// ScorecardInput bundles what BuildScorecard needs beyond the holes.
type ScorecardInput struct {
	StrokeIndexes []StrokeIndexEntry
	Rating        *Rating
	HandicapIndex *float64
	Gender        Gender
}

// BuildScorecard totals a round. Holes without a positive gross score are skipped.
// Par comes from the stroke index table and falls back to DefaultPar.
func BuildScorecard(holes []HoleScore, in ScorecardInput) Scorecard {
	var card Scorecard
	if ph, ok := PlayingHandicap(in.HandicapIndex, in.Rating); ok {
		card.PlayingHandicap = &ph
	}

	for _, h := range holes {
		if h.Gross < 1 {
			continue
		}

		par := DefaultPar
		for _, e := range in.StrokeIndexes {
			if e.HoleNumber == h.HoleNumber && e.Par > 0 {
				par = e.Par
				break
			}
		}
		si := StrokeIndex(in.StrokeIndexes, h.HoleNumber, in.Gender)

		line := ScorecardLine{
			HoleNumber:  h.HoleNumber,
			Par:         par,
			StrokeIndex: si,
			Gross:       h.Gross,
			Putts:       h.Putts,
			Shots:       h.Shots,
			ToPar:       h.Gross - par,
		}
		if pts, ok := StablefordForHole(h.Gross, par, si, in.Rating, in.HandicapIndex); ok {
			line.StablefordPoints = &pts
			card.Stableford += pts
			card.HasStableford = true
		}

		card.Lines = append(card.Lines, line)
		card.HolesPlayed++
		card.TotalScore += h.Gross
		card.TotalPar += par
		card.TotalPutts += h.Putts
		card.TotalPenalties += h.Penalties
	}

	card.ToPar = card.TotalScore - card.TotalPar
	return card
}

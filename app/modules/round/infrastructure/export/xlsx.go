// Package roundexport renders saved rounds as spreadsheets and charts.
package roundexport

import (
	"bytes"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/golf-stats/app/modules/round/domain"
	"github.com/xuri/excelize/v2"
)

const (
	scorecardSheet = "Scorecard"
	shotsSheet     = "Shots"
)

var (
	scorecardHeader = []any{"Hole", "Par", "SI", "Score", "+/-", "Putts", "Penalties", "Stableford"}
	shotsHeader     = []any{"Hole", "Shot", "Club", "To green", "Played", "Lie", "Putts", "Penalty strokes"}
)

// ScorecardXLSX writes the round's scorecard and shot ledger as a workbook.
func ScorecardXLSX(round rounddomain.Round) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), scorecardSheet); err != nil {
		return nil, fmt.Errorf("failed to name scorecard sheet: %w", err)
	}
	if _, err := f.NewSheet(shotsSheet); err != nil {
		return nil, fmt.Errorf("failed to add shots sheet: %w", err)
	}

	card := round.Scorecard()
	handicap := any("")
	if card.PlayingHandicap != nil {
		handicap = *card.PlayingHandicap
	}

	rows := [][]any{
		{"Course", round.CourseName},
		{"Loop", round.Loop.Name},
		{"Tee", round.TeeColor},
		{"Date", round.Date},
		{"Start time", round.StartTime},
		{"Playing handicap", handicap},
		{},
		scorecardHeader,
	}
	for _, line := range card.Lines {
		var points any = "-"
		if line.StablefordPoints != nil {
			points = *line.StablefordPoints
		}
		rows = append(rows, []any{
			line.HoleNumber, line.Par, line.StrokeIndex, line.Gross, line.ToPar, line.Putts, penaltiesFor(round, line.HoleNumber), points,
		})
	}
	var total any = "-"
	if card.HasStableford {
		total = card.Stableford
	}
	rows = append(rows, []any{"Total", card.TotalPar, "", card.TotalScore, card.ToPar, card.TotalPutts, card.TotalPenalties, total})

	if err := writeRows(f, scorecardSheet, rows); err != nil {
		return nil, err
	}

	shotRows := [][]any{shotsHeader}
	for _, h := range round.Holes {
		for _, s := range h.Shots {
			shotRows = append(shotRows, []any{
				h.HoleNumber, s.Number, s.Club, s.DistanceToGreen, s.DistancePlayed, string(s.Lie), s.Putts, s.PenaltyStrokes,
			})
		}
	}
	if err := writeRows(f, shotsSheet, shotRows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for idx, row := range rows {
		if len(row) == 0 {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, idx+1, err)
		}
	}
	return nil
}

func penaltiesFor(round rounddomain.Round, hole int) int {
	for _, h := range round.Holes {
		if h.HoleNumber == hole {
			return h.Penalties
		}
	}
	return 0
}

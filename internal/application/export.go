package application

import (
	"github.com/xuri/excelize/v2"

	"georeview/internal/models"
)

const (
	roundsSheet = "Rounds"
	tipsSheet   = "Tips"
)

var (
	roundsHeader = []string{"Match", "Round", "Actual region", "My guess", "Opponent guess", "General review", "Location review"}
	tipsHeader   = []string{"Round", "#", "Title", "Tip"}
)

func roundRows(matchID MatchID, report models.ReviewReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Rounds))
	for _, rr := range report.Rounds {
		rows = append(rows, []interface{}{
			string(matchID), rr.Round, rr.ActualRegion, rr.MyGuessRegion, rr.OpponentGuessRegion, rr.GeneralReview, rr.LocationReview,
		})
	}
	return rows
}

func tipRows(report models.ReviewReport) [][]interface{} {
	var rows [][]interface{}
	for _, rr := range report.Rounds {
		for i, tip := range rr.Tips {
			rows = append(rows, []interface{}{rr.Round, i + 1, tip.Title, tip.Body})
		}
	}
	return rows
}

// ExportReport renders a review as an xlsx workbook with one row per round
// and one row per tip.
func ExportReport(matchID MatchID, report models.ReviewReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(roundsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(tipsSheet); err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	if err := writeRows(f, roundsSheet, roundsHeader, roundRows(matchID, report)); err != nil {
		return nil, err
	}
	if err := writeRows(f, tipsSheet, tipsHeader, tipRows(report)); err != nil {
		return nil, err
	}

	f.SetColWidth(roundsSheet, "A", "A", 28)
	f.SetColWidth(roundsSheet, "B", "B", 8)
	f.SetColWidth(roundsSheet, "C", "E", 24)
	f.SetColWidth(roundsSheet, "F", "G", 80)
	f.SetColWidth(tipsSheet, "A", "B", 8)
	f.SetColWidth(tipsSheet, "C", "C", 30)
	f.SetColWidth(tipsSheet, "D", "D", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

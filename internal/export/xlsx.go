// Package export renders journal readings and assessment results as xlsx
// workbooks for download.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vital-check/vitalcheck-api/internal/journal"
	"github.com/vital-check/vitalcheck-api/internal/session"
)

var readingsHeader = []string{
	"Date",
	"Kind",
	"Systolic",
	"Diastolic",
	"Value",
	"Context",
	"Source",
	"Note",
}

// Readings builds a workbook with one row per journal reading, newest first.
// The caller owns the file and must Close it.
func Readings(rows []journal.Reading) (*excelize.File, error) {
	f, sheet, err := newSheet("Readings", readingsHeader)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		rowIdx := i + 2
		values := []interface{}{
			time.Unix(r.TakenAt, 0).Format("2006-01-02 15:04"),
			string(r.Kind),
			zeroBlank(r.Systolic),
			zeroBlank(r.Diastolic),
			zeroBlankF(r.Value),
			r.Context,
			string(r.Source),
			r.Note,
		}
		if err := setRow(f, sheet, rowIdx, values); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Result builds a one-result summary workbook: score, tier, timeframe,
// recommendations and suggested retest dates.
func Result(rec session.Record) (*excelize.File, error) {
	f, sheet, err := newSheet("Assessment Result", []string{"Field", "Value"})
	if err != nil {
		return nil, err
	}
	completed := time.Unix(rec.CompletedAt, 0)
	retests := make([]string, 0, len(rec.RetestOffsets))
	for _, d := range rec.RetestOffsets {
		retests = append(retests, completed.AddDate(0, 0, d).Format("2006-01-02"))
	}
	pairs := [][2]string{
		{"Questionnaire", rec.QuestionnaireID},
		{"Completed", completed.Format("2006-01-02 15:04")},
		{"Total score", fmt.Sprintf("%d", rec.TotalScore)},
		{"Tier", rec.TierTitle},
		{"Timeframe", string(rec.Timeframe)},
		{"Recommendations", strings.Join(rec.Recommendations, "\n")},
		{"Suggested retest dates", strings.Join(retests, ", ")},
	}
	for i, p := range pairs {
		if err := setRow(f, sheet, i+2, []interface{}{p[0], p[1]}); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func newSheet(name string, header []string) (*excelize.File, string, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(name)
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(idx)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, "", fmt.Errorf("create header style: %w", err)
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, "", err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			f.Close()
			return nil, "", err
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, "", err
		}
	}
	return f, name, nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func zeroBlank(v int) interface{} {
	if v == 0 {
		return ""
	}
	return v
}

func zeroBlankF(v float64) interface{} {
	if v == 0 {
		return ""
	}
	return v
}

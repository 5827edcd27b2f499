package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	models "student-performance-dashboard/app/models/analytics"
	"student-performance-dashboard/app/view"
)

const (
	ContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetPerformance = "Performance"
	SheetPredictions = "Predictions"
)

var tableHeaders = []interface{}{
	"Subject", "PAT T1", "SAT T1", "Term 1 Avg", "PAT T2", "SAT T2", "Term 2 Avg", "Overall", "Status",
}

// FileName is the download name for a student's workbook.
func FileName(studentID string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, studentID)
	return "student-" + clean + ".xlsx"
}

// WriteStudentTable writes the performance table (and the predictions, when
// present) of one student as an XLSX workbook.
func WriteStudentTable(w io.Writer, perf *models.StudentPerformance) error {
	if perf == nil {
		return view.ErrMissingPerformance
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetPerformance)

	// 1. Identitas siswa
	info := [][]interface{}{
		{"Name", perf.Name},
		{"Class", perf.Class.String()},
		{"Attendance (%)", perf.Attendance},
	}
	for i, row := range info {
		if err := setRow(f, SheetPerformance, 1, i+1, row); err != nil {
			return err
		}
	}

	// 2. Tabel nilai per mata pelajaran
	const headerRow = 5
	if err := setRow(f, SheetPerformance, 1, headerRow, tableHeaders); err != nil {
		return err
	}
	for i, r := range view.BuildTable(perf.Subjects) {
		row := []interface{}{
			r.Subject,
			number(r.PatT1), number(r.SatT1), number(r.Term1Avg),
			number(r.PatT2), number(r.SatT2), number(r.Term2Avg),
			number(r.Overall),
			r.StatusText,
		}
		if err := setRow(f, SheetPerformance, 1, headerRow+1+i, row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetPerformance, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetPerformance, "B", "I", 14); err != nil {
		return err
	}

	// 3. Prediksi (opsional)
	if p := view.BuildPredictions(perf.Predictions); p != nil {
		if err := writePredictions(f, p); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writePredictions(f *excelize.File, p *view.PredictionsView) error {
	if _, err := f.NewSheet(SheetPredictions); err != nil {
		return err
	}

	row := 1
	if err := setRow(f, SheetPredictions, 1, row, []interface{}{"Subject", "Predicted (%)", "Confidence (%)", "Trend", "Key Factors"}); err != nil {
		return err
	}
	for _, m := range p.Marks {
		row++
		factors := make([]string, 0, len(m.Factors))
		for _, fc := range m.Factors {
			factors = append(factors, fc.Factor+" ("+fc.Label+"%)")
		}
		values := []interface{}{m.Subject, number(m.Predicted), number(m.Confidence), m.TrendLabel, strings.Join(factors, ", ")}
		if err := setRow(f, SheetPredictions, 1, row, values); err != nil {
			return err
		}
	}

	if a := p.Attendance; a != nil {
		row += 2
		rows := [][]interface{}{
			{"Current Attendance (%)", number(a.Current)},
			{"Predicted Attendance (%)", number(a.Predicted)},
			{"Risk Level", a.RiskLabel},
			{"Trend", a.TrendLabel},
		}
		if a.Correlation != "" {
			rows = append(rows, []interface{}{"Performance Correlation", number(a.Correlation)})
		}
		for _, r := range rows {
			if err := setRow(f, SheetPredictions, 1, row, r); err != nil {
				return err
			}
			row++
		}
	}

	return f.SetColWidth(SheetPredictions, "A", "E", 24)
}

func setRow(f *excelize.File, sheet string, col, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// number keeps formatted figures numeric in the sheet.
func number(s string) interface{} {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

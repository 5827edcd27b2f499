package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"student-performance-dashboard/app/view"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	section = color.New(color.FgYellow)
	good    = color.New(color.FgGreen)
	bad     = color.New(color.FgRed)
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	return table
}

func printNotice(w io.Writer, n *view.Notice) {
	if n == nil {
		return
	}
	if n.Level == view.NoticeError {
		bad.Fprintln(w, n.Message)
		return
	}
	good.Fprintln(w, n.Message)
}

func printStats(w io.Writer, items []view.StatItem) {
	table := newTable(w, "Item", "Value")
	for _, it := range items {
		table.Append([]string{it.Label, it.Value})
	}
	table.Render()
}

func printClass(w io.Writer, classID string, v *view.ClassView) {
	heading.Fprintf(w, "\n=== Class %s ===\n", classID)
	printStats(w, v.Stats)

	section.Fprintln(w, "\nAreas of Concern")
	if len(v.Concerns) == 0 {
		fmt.Fprintln(w, v.NoConcerns)
		return
	}
	table := newTable(w, "Subject", "Class Average", "Student")
	for _, area := range v.Concerns {
		for _, s := range area.Students {
			table.Append([]string{area.Subject, area.ClassAverage + "%", s})
		}
	}
	table.Render()
}

func printStudent(w io.Writer, studentID string, v *view.StudentView) {
	heading.Fprintf(w, "\n=== Student %s ===\n", studentID)
	printStats(w, v.Info)

	// 1. Tabel nilai
	section.Fprintln(w, "\nSubject Performance")
	table := newTable(w, "Subject", "PAT T1", "SAT T1", "Term 1 Avg", "PAT T2", "SAT T2", "Term 2 Avg", "Overall", "Status")
	for _, r := range v.Table {
		table.Append([]string{r.Subject, r.PatT1, r.SatT1, r.Term1Avg, r.PatT2, r.SatT2, r.Term2Avg, r.Overall, r.StatusText})
	}
	table.Render()

	// 2. Prediksi
	if p := v.Predictions; p != nil {
		printPredictions(w, p)
	}

	// 3. Kekuatan, kelemahan, rekomendasi
	printStandings(w, "Strengths", v.Strengths)
	printStandings(w, "Weaknesses", v.Weaknesses)

	section.Fprintln(w, "\nRecommendations")
	if len(v.Recommendations) == 0 {
		fmt.Fprintln(w, v.NoRecommend)
	}
	for _, r := range v.Recommendations {
		fmt.Fprintf(w, "- %s\n", r)
	}
}

func printPredictions(w io.Writer, p *view.PredictionsView) {
	if len(p.Marks) > 0 {
		section.Fprintln(w, "\nPredicted Final Marks")
		table := newTable(w, "Subject", "Predicted", "Confidence", "Trend", "Key Factors")
		for _, m := range p.Marks {
			factors := ""
			for i, f := range m.Factors {
				if i > 0 {
					factors += ", "
				}
				factors += f.Factor + " " + f.Label + "%"
			}
			table.Append([]string{m.Subject, m.Predicted + "%", m.Confidence + "%", m.TrendLabel, factors})
		}
		table.Render()
	}

	if a := p.Attendance; a != nil {
		section.Fprintln(w, "\nAttendance Forecast")
		fmt.Fprintf(w, "Current: %s%%  Predicted: %s%%\n", a.Current, a.Predicted)
		fmt.Fprintf(w, "Risk Level: %s\n", a.RiskLabel)
		fmt.Fprintf(w, "Trend: %s\n", a.TrendLabel)
		if a.Correlation != "" {
			fmt.Fprintf(w, "Performance correlation: %s\n", a.Correlation)
		}
	}
}

func printStandings(w io.Writer, title string, items []view.Standing) {
	if len(items) == 0 {
		return
	}
	section.Fprintf(w, "\n%s\n", title)
	table := newTable(w, "Subject", "Score", "Improvement", "Trend")
	for _, s := range items {
		table.Append([]string{s.Subject, s.Score, s.Improvement, s.Trend})
	}
	table.Render()
}

func printPrediction(w io.Writer, r *view.PredictionResult) {
	heading.Fprintf(w, "\nPredicted Performance: %s\n", r.BadgeText)
	for _, rec := range r.Recommendations {
		fmt.Fprintf(w, "- %s\n", rec)
	}
}

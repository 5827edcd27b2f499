package view

import (
	"errors"
	"log"
	"math"

	"student-performance-dashboard/app/chart"
	models "student-performance-dashboard/app/models/analytics"
)

var ErrMissingPerformance = errors.New("no performance data provided")

const NoRecommendationsText = "No specific recommendations at this time."

// TableRow is one line of performanceTableBody. Score columns are already
// formatted with one decimal.
type TableRow struct {
	Subject     string       `json:"subject"`
	PatT1       string       `json:"pat_t1"`
	SatT1       string       `json:"sat_t1"`
	Term1Avg    string       `json:"term1_average"`
	PatT2       string       `json:"pat_t2"`
	SatT2       string       `json:"sat_t2"`
	Term2Avg    string       `json:"term2_average"`
	Overall     string       `json:"overall_average"`
	Improvement float64      `json:"improvement"`
	Trend       models.Trend `json:"trend"`
	StatusClass string       `json:"status_class"`
	StatusText  string       `json:"status_text"`
}

// Standing is a strong or weak subject line.
type Standing struct {
	Subject     string `json:"subject"`
	Score       string `json:"score"`
	Improvement string `json:"improvement"`
	Trend       string `json:"trend"`
}

type StudentView struct {
	Info            []StatItem       `json:"info"`
	Table           []TableRow       `json:"table"`
	Predictions     *PredictionsView `json:"predictions,omitempty"`
	Strengths       []Standing       `json:"strengths"`
	Weaknesses      []Standing       `json:"weaknesses"`
	Recommendations []string         `json:"recommendations"`
	NoRecommend     string           `json:"no_recommendations,omitempty"`
	Charts          []SlotChart      `json:"charts"`
}

// BuildStudentAnalysis builds every block of the student section. analysis
// and suggestions are optional.
func BuildStudentAnalysis(perf *models.StudentPerformance, analysis *models.SubjectAnalysis, suggestions []string) (*StudentView, error) {
	if perf == nil {
		log.Println("view: no performance data provided")
		return nil, ErrMissingPerformance
	}

	v := &StudentView{
		Info: []StatItem{
			{Label: "Name", Value: perf.Name},
			{Label: "Class", Value: perf.Class.String()},
			{Label: "Attendance", Value: Number(perf.Attendance) + "%"},
		},
		Table: BuildTable(perf.Subjects),
		Charts: []SlotChart{
			{Slot: chart.SlotStudentSubjects, Config: StudentSubjectsChart(perf.Subjects)},
			{Slot: chart.SlotProgress, Config: ProgressChart(perf.Subjects)},
		},
		Strengths:       []Standing{},
		Weaknesses:      []Standing{},
		Recommendations: []string{},
	}

	if perf.Predictions != nil {
		v.Predictions = BuildPredictions(perf.Predictions)
	}

	if analysis != nil {
		v.Strengths = standings(analysis.StrongSubjects)
		v.Weaknesses = standings(analysis.WeakSubjects)
	}

	v.Recommendations = append(v.Recommendations, suggestions...)
	if len(v.Recommendations) == 0 {
		v.NoRecommend = NoRecommendationsText
	}

	return v, nil
}

// BuildTable reproduces the table arithmetic: every input is rounded to one
// decimal before it is used, and every derived value is rounded again.
func BuildTable(subjects models.Ordered[models.SubjectScores]) []TableRow {
	rows := make([]TableRow, 0, len(subjects))
	for _, e := range subjects {
		s := e.Value

		// 1. Skor mentah dibulatkan satu desimal
		patT1, satT1 := Fixed1(s.PatT1), Fixed1(s.SatT1)
		patT2, satT2 := Fixed1(s.PatT2), Fixed1(s.SatT2)

		// 2. Rata-rata per term dan keseluruhan
		term1 := Fixed1((patT1 + satT1) / 2)
		term2 := Fixed1((patT2 + satT2) / 2)
		overall := Fixed1((term1 + term2) / 2)

		// 3. Perubahan antar term
		improvement := Fixed1(term2 - term1)
		trend := models.ClassifyTrend(improvement)

		rows = append(rows, TableRow{
			Subject:     Capitalize(e.Key),
			PatT1:       ToFixed(patT1, 1),
			SatT1:       ToFixed(satT1, 1),
			Term1Avg:    ToFixed(term1, 1),
			PatT2:       ToFixed(patT2, 1),
			SatT2:       ToFixed(satT2, 1),
			Term2Avg:    ToFixed(term2, 1),
			Overall:     ToFixed(overall, 1),
			Improvement: improvement,
			Trend:       trend,
			StatusClass: "status-" + string(trend),
			StatusText:  Capitalize(string(trend)) + " (" + Number(math.Abs(improvement)) + "%)",
		})
	}
	return rows
}

func standings(in []models.SubjectStanding) []Standing {
	out := make([]Standing, 0, len(in))
	for _, s := range in {
		out = append(out, Standing{
			Subject:     Capitalize(s.Subject),
			Score:       ToFixed(s.Score, 1),
			Improvement: ToFixed(s.Improvement, 1),
			Trend:       string(models.ClassifyTrend(s.Improvement)),
		})
	}
	return out
}

func subjectLabels(subjects models.Ordered[models.SubjectScores]) []string {
	labels := make([]string, 0, len(subjects))
	for _, e := range subjects {
		labels = append(labels, Capitalize(e.Key))
	}
	return labels
}

func StudentSubjectsChart(subjects models.Ordered[models.SubjectScores]) chart.Config {
	data := make([]float64, 0, len(subjects))
	for _, e := range subjects {
		data = append(data, e.Value.AverageScore)
	}
	return chart.Config{
		Kind:   chart.KindRadar,
		Labels: subjectLabels(subjects),
		Datasets: []chart.Dataset{{
			Label:       "Current Performance",
			Data:        data,
			Colors:      []string{colorBlueLight},
			BorderColor: colorBlue,
		}},
		ScaleMax: 100,
	}
}

func ProgressChart(subjects models.Ordered[models.SubjectScores]) chart.Config {
	term1 := make([]float64, 0, len(subjects))
	term2 := make([]float64, 0, len(subjects))
	for _, e := range subjects {
		term1 = append(term1, e.Value.Term1Average)
		term2 = append(term2, e.Value.Term2Average)
	}
	return chart.Config{
		Kind:   chart.KindLine,
		Labels: subjectLabels(subjects),
		Datasets: []chart.Dataset{
			{Label: "Term 1", Data: term1, BorderColor: colorOrange},
			{Label: "Term 2", Data: term2, BorderColor: colorGreen},
		},
		ScaleMax: 100,
	}
}

package view

import (
	"strings"

	models "student-performance-dashboard/app/models/analytics"
)

// FactorThreshold is the importance a contributing factor must exceed to be
// listed.
const FactorThreshold = 10.0

type FactorItem struct {
	Factor     string  `json:"factor"`
	Importance float64 `json:"importance"`
	Label      string  `json:"label"`
}

type MarkItem struct {
	Subject    string       `json:"subject"`
	Predicted  string       `json:"predicted"`
	Confidence string       `json:"confidence"`
	Trend      string       `json:"trend"`
	TrendLabel string       `json:"trend_label"`
	Factors    []FactorItem `json:"factors"`
}

type AttendanceItem struct {
	Current     string `json:"current"`
	Predicted   string `json:"predicted"`
	RiskLabel   string `json:"risk_label"`
	RiskClass   string `json:"risk_class"`
	Trend       string `json:"trend"`
	TrendLabel  string `json:"trend_label"`
	Correlation string `json:"correlation,omitempty"`
}

// PredictionsView feeds the predictionsSection block.
type PredictionsView struct {
	Marks      []MarkItem      `json:"marks"`
	Attendance *AttendanceItem `json:"attendance,omitempty"`
}

func BuildPredictions(p *models.Predictions) *PredictionsView {
	if p == nil {
		return nil
	}

	v := &PredictionsView{Marks: []MarkItem{}}
	for _, e := range p.FinalMarks {
		m := e.Value
		if m == nil {
			continue
		}

		item := MarkItem{
			Subject:    Capitalize(e.Key),
			Predicted:  Number(m.PredictedScore),
			Confidence: Number(m.Confidence),
			Trend:      string(m.Trend),
			TrendLabel: Capitalize(string(m.Trend)),
			Factors:    []FactorItem{},
		}
		for _, f := range m.ContributingFactors {
			if f.Importance > FactorThreshold {
				item.Factors = append(item.Factors, FactorItem{
					Factor:     f.Factor,
					Importance: f.Importance,
					Label:      Number(f.Importance),
				})
			}
		}
		v.Marks = append(v.Marks, item)
	}

	if a := p.Attendance; a != nil {
		item := &AttendanceItem{
			Current:    Number(a.CurrentAttendance),
			Predicted:  Number(a.PredictedAttendance),
			RiskLabel:  strings.ToUpper(a.RiskLevel),
			RiskClass:  "risk-" + a.RiskLevel,
			Trend:      string(a.Trend),
			TrendLabel: Capitalize(string(a.Trend)),
		}
		if a.PerformanceCorrelation > 0 {
			item.Correlation = Number(a.PerformanceCorrelation)
		}
		v.Attendance = item
	}

	return v
}

// PredictionResult feeds the results, performanceLevel and
// recommendationsList slots after a form submission.
type PredictionResult struct {
	Level           string   `json:"level"`
	BadgeText       string   `json:"badge_text"`
	BadgeClass      string   `json:"badge_class"`
	Recommendations []string `json:"recommendations"`
}

func BuildPredictionResult(level string, recommendations []string) *PredictionResult {
	r := &PredictionResult{
		Level:           level,
		BadgeText:       strings.ToUpper(level),
		BadgeClass:      "performance-badge performance-" + strings.ToLower(level),
		Recommendations: []string{},
	}
	r.Recommendations = append(r.Recommendations, recommendations...)
	return r
}

package view

import (
	"errors"
	"log"
	"strconv"

	"student-performance-dashboard/app/chart"
	models "student-performance-dashboard/app/models/analytics"
)

var ErrMissingInsights = errors.New("no insights data provided")

const NoConcernsText = "No major concerns identified"

// Distribution buckets in display order, with their chart colors.
var (
	DistributionLabels = []string{"Excellent", "Good", "Average", "Needs Improvement"}
	DistributionColors = []string{"#27ae60", "#4a90e2", "#f39c12", "#e74c3c"}
)

const (
	colorBlue      = "#4a90e2"
	colorOrange    = "#f39c12"
	colorGreen     = "#27ae60"
	colorBlueLight = "rgba(74, 144, 226, 0.2)"
)

// SlotChart pairs a chart config with the slot it is drawn into.
type SlotChart struct {
	Slot   string       `json:"slot"`
	Config chart.Config `json:"config"`
}

// ConcernArea is a subject with at least one student below the threshold.
type ConcernArea struct {
	Subject      string   `json:"subject"`
	ClassAverage string   `json:"class_average"`
	Students     []string `json:"students"`
}

type ClassView struct {
	Stats      []StatItem    `json:"stats"`
	Concerns   []ConcernArea `json:"concerns"`
	NoConcerns string        `json:"no_concerns,omitempty"`
	Charts     []SlotChart   `json:"charts"`
}

// BuildClassInsights turns the class payload into the classStats and
// concernAreas blocks plus the performance and subjects chart configs.
func BuildClassInsights(insights *models.ClassInsights) (*ClassView, error) {
	if insights == nil {
		log.Println("view: no insights data provided")
		return nil, ErrMissingInsights
	}

	v := &ClassView{
		Stats: []StatItem{
			{Label: "Total Students", Value: strconv.Itoa(insights.TotalStudents)},
			{Label: "Average Attendance", Value: ToFixed(insights.AverageAttendance, 1) + "%"},
		},
		Concerns: []ConcernArea{},
		Charts:   []SlotChart{},
	}

	if d := insights.PerformanceDistribution; d != nil {
		v.Charts = append(v.Charts, SlotChart{Slot: chart.SlotPerformance, Config: DistributionChart(d)})
	}
	if insights.SubjectPerformance != nil {
		v.Charts = append(v.Charts, SlotChart{Slot: chart.SlotSubjects, Config: SubjectAverageChart(insights.SubjectPerformance)})
	}

	for _, e := range insights.SubjectPerformance {
		if len(e.Value.WeakStudents) == 0 {
			continue
		}
		area := ConcernArea{
			Subject:      Capitalize(e.Key),
			ClassAverage: ToFixed(e.Value.AverageScore, 1),
			Students:     make([]string, 0, len(e.Value.WeakStudents)),
		}
		for _, s := range e.Value.WeakStudents {
			area.Students = append(area.Students, s.Name+" ("+Number(s.Score)+"%)")
		}
		v.Concerns = append(v.Concerns, area)
	}
	if len(v.Concerns) == 0 {
		v.NoConcerns = NoConcernsText
	}

	return v, nil
}

func DistributionChart(d *models.PerformanceDistribution) chart.Config {
	return chart.Config{
		Kind:   chart.KindDoughnut,
		Labels: DistributionLabels,
		Datasets: []chart.Dataset{{
			Data:   []float64{float64(d.Excellent), float64(d.Good), float64(d.Average), float64(d.NeedsImprovement)},
			Colors: DistributionColors,
		}},
		LegendBottom: true,
	}
}

func SubjectAverageChart(subjects models.Ordered[models.SubjectSummary]) chart.Config {
	labels := make([]string, 0, len(subjects))
	data := make([]float64, 0, len(subjects))
	for _, e := range subjects {
		labels = append(labels, Capitalize(e.Key))
		data = append(data, e.Value.AverageScore)
	}
	return chart.Config{
		Kind:     chart.KindBar,
		Labels:   labels,
		Datasets: []chart.Dataset{{Label: "Average Score", Data: data, Colors: []string{colorBlue}}},
		ScaleMax: 100,
	}
}

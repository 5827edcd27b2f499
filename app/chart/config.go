package chart

import (
	"encoding/json"
)

// Slot names used by the dashboard page. Each holds at most one live chart.
const (
	SlotPerformance     = "performance"
	SlotSubjects        = "subjects"
	SlotStudentSubjects = "studentSubjects"
	SlotProgress        = "progress"
)

type Kind string

const (
	KindDoughnut Kind = "doughnut"
	KindBar      Kind = "bar"
	KindRadar    Kind = "radar"
	KindLine     Kind = "line"
)

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	// Colors holds one fill color per point, or a single color for the series.
	Colors      []string `json:"backgroundColor,omitempty"`
	BorderColor string   `json:"borderColor,omitempty"`
	Fill        bool     `json:"fill"`
}

// Config describes a chart independently of how it is drawn.
type Config struct {
	Kind     Kind      `json:"type"`
	Title    string    `json:"title,omitempty"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	// ScaleMax fixes the value axis to 0..ScaleMax; 0 leaves it automatic.
	ScaleMax     float64 `json:"scaleMax,omitempty"`
	LegendBottom bool    `json:"legendBottom,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
}

func (c Config) size() (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 400
	}
	return w, h
}

// ChartJS returns the Chart.js configuration equivalent to cfg, for pages
// that draw charts in the browser.
func ChartJS(cfg Config) ([]byte, error) {
	datasets := make([]map[string]interface{}, 0, len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		item := map[string]interface{}{
			"label": ds.Label,
			"data":  nonNil(ds.Data),
		}
		switch len(ds.Colors) {
		case 0:
		case 1:
			item["backgroundColor"] = ds.Colors[0]
		default:
			item["backgroundColor"] = ds.Colors
		}
		if ds.BorderColor != "" {
			item["borderColor"] = ds.BorderColor
			if cfg.Kind == KindRadar {
				item["pointBackgroundColor"] = ds.BorderColor
			}
		}
		if cfg.Kind == KindLine {
			item["fill"] = ds.Fill
		}
		datasets = append(datasets, item)
	}

	options := map[string]interface{}{}
	if cfg.Kind != KindRadar {
		options["responsive"] = true
	}
	if cfg.LegendBottom {
		options["plugins"] = map[string]interface{}{
			"legend": map[string]interface{}{"position": "bottom"},
		}
	}
	if cfg.ScaleMax > 0 {
		axis := "y"
		if cfg.Kind == KindRadar {
			axis = "r"
		}
		options["scales"] = map[string]interface{}{
			axis: map[string]interface{}{"beginAtZero": true, "max": cfg.ScaleMax},
		}
	}

	labels := cfg.Labels
	if labels == nil {
		labels = []string{}
	}

	return json.Marshal(map[string]interface{}{
		"type": string(cfg.Kind),
		"data": map[string]interface{}{
			"labels":   labels,
			"datasets": datasets,
		},
		"options": options,
	})
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

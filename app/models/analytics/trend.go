package models

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// ClassifyTrend maps a signed delta to its direction label.
func ClassifyTrend(delta float64) Trend {
	switch {
	case delta > 0:
		return TrendImproving
	case delta < 0:
		return TrendDeclining
	default:
		return TrendStable
	}
}

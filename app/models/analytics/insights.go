package models

// Payload GET /class/{classId}
type ClassResponse struct {
	Success  bool           `json:"success"`
	Insights *ClassInsights `json:"insights"`
	Error    string         `json:"error,omitempty"`
}

type ClassInsights struct {
	TotalStudents           int                      `json:"total_students"`
	AverageAttendance       float64                  `json:"average_attendance"`
	PerformanceDistribution *PerformanceDistribution `json:"performance_distribution"`
	SubjectPerformance      Ordered[SubjectSummary]  `json:"subject_performance"`
}

// PerformanceDistribution counts students per overall-average bucket.
type PerformanceDistribution struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	Average          int `json:"average"`
	NeedsImprovement int `json:"needs_improvement"`
}

type SubjectSummary struct {
	AverageScore float64       `json:"average_score"`
	WeakStudents []WeakStudent `json:"weak_students"`
}

// WeakStudent is flagged by the backend when the subject score falls below
// its threshold.
type WeakStudent struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Payload GET /student/{studentId}
type StudentResponse struct {
	Success     bool                `json:"success"`
	Performance *StudentPerformance `json:"performance"`
	Analysis    *SubjectAnalysis    `json:"analysis,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Error       string              `json:"error,omitempty"`
}

type StudentPerformance struct {
	Name        string                 `json:"name"`
	Class       Scalar                 `json:"class"`
	Attendance  float64                `json:"attendance"`
	Subjects    Ordered[SubjectScores] `json:"subjects"`
	Predictions *Predictions           `json:"predictions,omitempty"`
}

// SubjectScores holds the four assessments of one subject. Missing scores
// decode as 0.
type SubjectScores struct {
	PatT1        float64 `json:"pat_t1"`
	SatT1        float64 `json:"sat_t1"`
	PatT2        float64 `json:"pat_t2"`
	SatT2        float64 `json:"sat_t2"`
	Term1Average float64 `json:"term1_average"`
	Term2Average float64 `json:"term2_average"`
	AverageScore float64 `json:"average_score"`
	Improvement  float64 `json:"improvement"`
}

type SubjectAnalysis struct {
	WeakSubjects   []SubjectStanding `json:"weak_subjects"`
	StrongSubjects []SubjectStanding `json:"strong_subjects"`
}

type SubjectStanding struct {
	Subject     string  `json:"subject"`
	Score       float64 `json:"score"`
	Improvement float64 `json:"improvement"`
}

// Scalar is text that may arrive as a JSON string or a JSON number (class
// names such as 10 or "10A" come out of the backend in both forms, and API
// clients post form fields either way).
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = Scalar(text)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Scalar(strings.TrimSpace(n.String()))
	return nil
}

func (s Scalar) String() string { return string(s) }

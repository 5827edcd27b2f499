package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-performance-dashboard/app/chart"
	models "student-performance-dashboard/app/models/analytics"
)

func decodeInsights(t *testing.T, raw string) *models.ClassInsights {
	t.Helper()
	var in models.ClassInsights
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return &in
}

func TestBuildClassInsights(t *testing.T) {
	t.Run("Success: concern areas only list subjects with weak students", func(t *testing.T) {
		in := decodeInsights(t, `{
			"total_students": 30,
			"average_attendance": 91.25,
			"performance_distribution": {"excellent": 4, "good": 10, "average": 12, "needs_improvement": 4},
			"subject_performance": {
				"english": {"average_score": 78.4, "weak_students": []},
				"mathematics": {"average_score": 61.05, "weak_students": [
					{"name": "Budi", "score": 38},
					{"name": "Sari", "score": 42.5}
				]}
			}
		}`)

		v, err := BuildClassInsights(in)
		require.NoError(t, err)

		assert.Equal(t, []StatItem{
			{Label: "Total Students", Value: "30"},
			{Label: "Average Attendance", Value: "91.3%"},
		}, v.Stats)

		require.Len(t, v.Concerns, 1)
		assert.Equal(t, "Mathematics", v.Concerns[0].Subject)
		assert.Equal(t, "61.0", v.Concerns[0].ClassAverage)
		assert.Equal(t, []string{"Budi (38%)", "Sari (42.5%)"}, v.Concerns[0].Students)
		assert.Empty(t, v.NoConcerns)

		require.Len(t, v.Charts, 2)
		assert.Equal(t, chart.SlotPerformance, v.Charts[0].Slot)
		assert.Equal(t, []float64{4, 10, 12, 4}, v.Charts[0].Config.Datasets[0].Data)
		assert.Equal(t, chart.SlotSubjects, v.Charts[1].Slot)
		assert.Equal(t, []string{"English", "Mathematics"}, v.Charts[1].Config.Labels)
		assert.Equal(t, 100.0, v.Charts[1].Config.ScaleMax)
	})

	t.Run("Success: placeholder when nothing needs attention", func(t *testing.T) {
		v, err := BuildClassInsights(decodeInsights(t, `{
			"total_students": 2,
			"average_attendance": 80,
			"subject_performance": {"science": {"average_score": 90, "weak_students": []}}
		}`))
		require.NoError(t, err)

		assert.Empty(t, v.Concerns)
		assert.Equal(t, NoConcernsText, v.NoConcerns)
		assert.Equal(t, "80.0%", v.Stats[1].Value)
	})

	t.Run("Success: charts are skipped for absent sections", func(t *testing.T) {
		v, err := BuildClassInsights(&models.ClassInsights{TotalStudents: 1})
		require.NoError(t, err)
		assert.Empty(t, v.Charts)
	})

	t.Run("Error: missing insights", func(t *testing.T) {
		v, err := BuildClassInsights(nil)
		assert.ErrorIs(t, err, ErrMissingInsights)
		assert.Nil(t, v)
	})
}

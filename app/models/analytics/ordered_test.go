package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered(t *testing.T) {
	t.Run("Success: keys keep document order", func(t *testing.T) {
		var o Ordered[SubjectSummary]
		require.NoError(t, json.Unmarshal([]byte(`{"zoology": {"average_score": 1}, "art": {"average_score": 2}, "maths": {"average_score": 3}}`), &o))

		assert.Equal(t, []string{"zoology", "art", "maths"}, o.Keys())
		v, ok := o.Get("art")
		require.True(t, ok)
		assert.Equal(t, 2.0, v.AverageScore)

		_, ok = o.Get("music")
		assert.False(t, ok)
	})

	t.Run("Success: null stays nil and round trips", func(t *testing.T) {
		var o Ordered[int]
		require.NoError(t, json.Unmarshal([]byte(`null`), &o))
		assert.Nil(t, o)

		raw, err := json.Marshal(Ordered[int]{{Key: "b", Value: 2}, {Key: "a", Value: 1}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"b":2,"a":1}`, string(raw))
		assert.Equal(t, `{"b":2,"a":1}`, string(raw))
	})

	t.Run("Error: not an object", func(t *testing.T) {
		var o Ordered[int]
		assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &o))
		assert.Error(t, json.Unmarshal([]byte(`{"a": "x"}`), &o))
	})
}

func TestScalar(t *testing.T) {
	var p StudentPerformance
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Ayu", "class": 10}`), &p))
	assert.Equal(t, "10", p.Class.String())

	require.NoError(t, json.Unmarshal([]byte(`{"class": "10A"}`), &p))
	assert.Equal(t, Scalar("10A"), p.Class)

	require.NoError(t, json.Unmarshal([]byte(`{"class": null}`), &p))
	assert.Equal(t, Scalar(""), p.Class)

	assert.Error(t, json.Unmarshal([]byte(`{"class": true}`), &p))
}

func TestClassifyTrend(t *testing.T) {
	assert.Equal(t, TrendImproving, ClassifyTrend(0.1))
	assert.Equal(t, TrendDeclining, ClassifyTrend(-0.1))
	assert.Equal(t, TrendStable, ClassifyTrend(0))
}

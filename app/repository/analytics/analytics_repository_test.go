package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "student-performance-dashboard/app/models/analytics"
	"student-performance-dashboard/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBackend(t *testing.T, handler http.HandlerFunc) (AnalyticsRepository, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAnalyticsRepository(Options{BaseURL: srv.URL}), srv
}

func TestFetchClassInsights(t *testing.T) {
	t.Run("Success: subjects keep backend order", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/class/10A", r.URL.Path)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"success":true,"insights":{
				"total_students":3,"average_attendance":91.25,
				"performance_distribution":{"excellent":1,"good":1,"average":0,"needs_improvement":1},
				"subject_performance":{
					"science":{"average_score":70.5,"weak_students":[]},
					"english":{"average_score":55,"weak_students":[{"name":"Ana","score":48.5}]}
				}}}`)
		})

		resp, err := repo.FetchClassInsights(context.Background(), "10A")
		require.NoError(t, err)
		require.NotNil(t, resp.Insights)
		assert.Equal(t, 3, resp.Insights.TotalStudents)
		assert.Equal(t, []string{"science", "english"}, resp.Insights.SubjectPerformance.Keys())
		english, ok := resp.Insights.SubjectPerformance.Get("english")
		require.True(t, ok)
		assert.Equal(t, "Ana", english.WeakStudents[0].Name)
	})

	t.Run("Error: status with error body", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"error":"Class not found"}`)
		})

		_, err := repo.FetchClassInsights(context.Background(), "99")
		require.Error(t, err)
		assert.Equal(t, "Class not found", err.Error())
		assert.Equal(t, KindStatus, KindOf(err))
	})

	t.Run("Error: success false without message", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false}`)
		})

		_, err := repo.FetchClassInsights(context.Background(), "10A")
		require.Error(t, err)
		assert.Equal(t, MsgClassUnsuccessful, err.Error())
		assert.Equal(t, KindUnsuccessful, KindOf(err))
	})

	t.Run("Error: malformed 200 body", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>oops</html>`)
		})

		_, err := repo.FetchClassInsights(context.Background(), "10A")
		require.Error(t, err)
		assert.Equal(t, KindMalformed, KindOf(err))
	})
}

func TestFetchStudentPerformance(t *testing.T) {
	t.Run("Error: unparseable status body falls back to status message", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "Internal Server Error")
		})

		_, err := repo.FetchStudentPerformance(context.Background(), "S001")
		require.Error(t, err)
		assert.Equal(t, "Failed to load student data (500)", err.Error())
		assert.Equal(t, KindStatusUnparseable, KindOf(err))
	})

	t.Run("Error: empty error field falls back to status message", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, `{"error":""}`)
		})

		_, err := repo.FetchStudentPerformance(context.Background(), "S001")
		require.Error(t, err)
		assert.Equal(t, "Failed to load student data (502)", err.Error())
	})

	t.Run("Success: numeric class and null predictions", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/student/S 001", r.URL.Path)
			_, _ = io.WriteString(w, `{"success":true,"performance":{
				"name":"Budi","class":10,"attendance":88.5,
				"subjects":{"maths":{"pat_t1":80,"sat_t1":90,"pat_t2":85,"sat_t2":95}},
				"predictions":{"final_marks":{"maths":null},"attendance":null}},
				"suggestions":["Keep going"]}`)
		})

		resp, err := repo.FetchStudentPerformance(context.Background(), "S 001")
		require.NoError(t, err)
		assert.Equal(t, models.Scalar("10"), resp.Performance.Class)
		maths, ok := resp.Performance.Predictions.FinalMarks.Get("maths")
		assert.True(t, ok)
		assert.Nil(t, maths)
		assert.Equal(t, []string{"Keep going"}, resp.Suggestions)
	})

	t.Run("Error: success without performance payload", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":true,"performance":null}`)
		})

		_, err := repo.FetchStudentPerformance(context.Background(), "S001")
		require.Error(t, err)
		assert.Equal(t, MsgStudentInvalid, err.Error())
		assert.Equal(t, KindUnsuccessful, KindOf(err))
	})

	t.Run("Error: transport failure surfaces underlying error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		repo := NewAnalyticsRepository(Options{BaseURL: srv.URL, Timeout: time.Second})
		srv.Close()

		_, err := repo.FetchStudentPerformance(context.Background(), "S001")
		require.Error(t, err)
		assert.True(t, IsTransport(err))
		assert.NotEmpty(t, err.Error())
	})

	t.Run("Error: cancelled context", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("backend must not be called")
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.FetchStudentPerformance(ctx, "S001")
		assert.True(t, IsTransport(err))
	})
}

func TestSubmitPrediction(t *testing.T) {
	t.Run("Success: sends JSON body", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]float64
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, 75.5, body["pat_score"])
			assert.Equal(t, 120.0, body["sat_score"])
			assert.Equal(t, 90.0, body["attendance_percentage"])

			_, _ = io.WriteString(w, `{"success":true,"prediction":"Good","recommendations":["Revise weekly"]}`)
		})

		resp, err := repo.SubmitPrediction(context.Background(), models.PredictionRequest{
			PatScore: 75.5, SatScore: 120, AttendancePercentage: 90,
		})
		require.NoError(t, err)
		assert.Equal(t, "Good", resp.Prediction)
		assert.Equal(t, []string{"Revise weekly"}, resp.Recommendations)
	})

	t.Run("Error: HTTP 200 but logically unsuccessful", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"error":"model not trained"}`)
		})

		_, err := repo.SubmitPrediction(context.Background(), models.PredictionRequest{})
		require.Error(t, err)
		assert.Equal(t, "model not trained", err.Error())
		assert.Equal(t, KindUnsuccessful, KindOf(err))
	})

	t.Run("Success: service token attached when configured", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			assert.True(t, strings.HasPrefix(auth, "Bearer "))
			claims, err := utils.ValidateServiceToken("s3cret", strings.TrimPrefix(auth, "Bearer "))
			if assert.NoError(t, err) {
				assert.Equal(t, "predict", claims.Endpoint)
			}
			_, _ = io.WriteString(w, `{"success":true,"prediction":"Excellent","recommendations":[]}`)
		}))
		defer srv.Close()

		repo := NewAnalyticsRepository(Options{BaseURL: srv.URL + "/", TokenSecret: "s3cret"})
		_, err := repo.SubmitPrediction(context.Background(), models.PredictionRequest{PatScore: 1})
		assert.NoError(t, err)
	})
}

func TestUploadFile(t *testing.T) {
	t.Run("Success: multipart field file", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/upload", r.URL.Path)
			file, header, err := r.FormFile("file")
			if !assert.NoError(t, err) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			defer file.Close()
			content, _ := io.ReadAll(file)
			assert.Equal(t, "students.csv", header.Filename)
			assert.Equal(t, "student_id,student_name\n", string(content))
			_, _ = io.WriteString(w, `{"success":true,"message":"Data uploaded successfully"}`)
		})

		err := repo.UploadFile(context.Background(), "students.csv", strings.NewReader("student_id,student_name\n"))
		assert.NoError(t, err)
	})

	t.Run("Error: no file", func(t *testing.T) {
		repo := NewAnalyticsRepository(Options{BaseURL: "http://127.0.0.1:1"})
		err := repo.UploadFile(context.Background(), "", nil)
		assert.ErrorIs(t, err, ErrNoFile)
	})

	t.Run("Error: backend rejects content", func(t *testing.T) {
		repo, _ := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"success":false,"error":"Error tokenizing data"}`)
		})

		err := repo.UploadFile(context.Background(), "bad.csv", strings.NewReader("x"))
		require.Error(t, err)
		assert.Equal(t, "Error tokenizing data", err.Error())
	})
}

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	models "student-performance-dashboard/app/models/analytics"
	repoAnalytics "student-performance-dashboard/app/repository/analytics"
	"student-performance-dashboard/app/repository/mocks"
)

func setupCLI(t *testing.T, args ...string) (*bytes.Buffer, *mocks.MockAnalyticsRepo, *repoAnalytics.Options, func() error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("HOME", t.TempDir())

	mockRepo := new(mocks.MockAnalyticsRepo)
	opts := &repoAnalytics.Options{}
	out := &bytes.Buffer{}

	root := newRootCmd(out, func(o repoAnalytics.Options) repoAnalytics.AnalyticsRepository {
		*opts = o
		return mockRepo
	})
	root.SetArgs(args)

	return out, mockRepo, opts, root.Execute
}

func TestClassCommand(t *testing.T) {
	t.Run("Success: stats and concern table", func(t *testing.T) {
		out, mockRepo, _, run := setupCLI(t, "class", "10A")

		var resp models.ClassResponse
		require.NoError(t, json.Unmarshal([]byte(`{"success": true, "insights": {
			"total_students": 2, "average_attendance": 90,
			"subject_performance": {"maths": {"average_score": 58, "weak_students": [{"name": "Budi", "score": 38}]}}
		}}`), &resp))
		mockRepo.On("FetchClassInsights", mock.Anything, "10A").Return(&resp, nil)

		require.NoError(t, run())

		text := out.String()
		assert.Contains(t, text, "=== Class 10A ===")
		assert.Contains(t, text, "90.0%")
		assert.Contains(t, text, "Budi (38%)")
		assert.Contains(t, text, "58.0%")
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error: backend message returned", func(t *testing.T) {
		_, mockRepo, _, run := setupCLI(t, "class", "99")

		mockRepo.On("FetchClassInsights", mock.Anything, "99").Return(nil, &repoAnalytics.APIError{
			Kind: repoAnalytics.KindStatus, Status: 404, Message: "Class not found",
		})

		err := run()
		require.Error(t, err)
		assert.Equal(t, "Error loading class analysis: Class not found", err.Error())
	})

	t.Run("Error: missing argument", func(t *testing.T) {
		_, _, _, run := setupCLI(t, "class")
		assert.Error(t, run())
	})
}

func TestStudentCommand(t *testing.T) {
	t.Run("Success: table and XLSX export", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "ayu.xlsx")
		out, mockRepo, _, run := setupCLI(t, "student", "S001", "--xlsx", target)

		var resp models.StudentResponse
		require.NoError(t, json.Unmarshal([]byte(`{"success": true, "performance": {
			"name": "Ayu", "class": "10A", "attendance": 92,
			"subjects": {"maths": {"pat_t1": 80, "sat_t1": 90, "pat_t2": 85, "sat_t2": 95}}
		}}`), &resp))
		mockRepo.On("FetchStudentPerformance", mock.Anything, "S001").Return(&resp, nil)

		require.NoError(t, run())

		text := out.String()
		assert.Contains(t, text, "Ayu")
		assert.Contains(t, text, "87.5")
		assert.Contains(t, text, "Improving (5%)")
		assert.Contains(t, text, "No specific recommendations at this time.")

		f, err := excelize.OpenFile(target)
		require.NoError(t, err)
		defer f.Close()
		v, err := f.GetCellValue("Performance", "B1")
		require.NoError(t, err)
		assert.Equal(t, "Ayu", v)
	})

	t.Run("Error: invalid student data", func(t *testing.T) {
		_, mockRepo, _, run := setupCLI(t, "student", "S404")

		mockRepo.On("FetchStudentPerformance", mock.Anything, "S404").Return(nil, &repoAnalytics.APIError{
			Kind: repoAnalytics.KindUnsuccessful, Message: repoAnalytics.MsgStudentInvalid,
		})

		err := run()
		require.Error(t, err)
		assert.Equal(t, "Error loading student analysis: Invalid student data received", err.Error())
	})
}

func TestPredictCommand(t *testing.T) {
	t.Run("Success: badge and recommendations", func(t *testing.T) {
		out, mockRepo, _, run := setupCLI(t, "predict", "--pat", "72.5", "--sat", "80", "--attendance", "95")

		mockRepo.On("SubmitPrediction", mock.Anything, models.PredictionRequest{PatScore: 72.5, SatScore: 80, AttendancePercentage: 95}).
			Return(&models.PredictionResponse{Success: true, Prediction: "Excellent", Recommendations: []string{"Keep it up"}}, nil)

		require.NoError(t, run())

		assert.Contains(t, out.String(), "Predicted Performance: EXCELLENT")
		assert.Contains(t, out.String(), "- Keep it up")
	})

	t.Run("Error: non-numeric flag", func(t *testing.T) {
		_, mockRepo, _, run := setupCLI(t, "predict", "--pat", "x", "--sat", "80", "--attendance", "95")

		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Error making prediction: invalid number in: pat_score")
		mockRepo.AssertNotCalled(t, "SubmitPrediction", mock.Anything, mock.Anything)
	})
}

func TestUploadCommand(t *testing.T) {
	t.Run("Success: file forwarded by base name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scores.csv")
		require.NoError(t, os.WriteFile(path, []byte("student_id,pat_t1\nS001,80\n"), 0o644))

		out, mockRepo, _, run := setupCLI(t, "upload", path)
		mockRepo.On("UploadFile", mock.Anything, "scores.csv", "student_id,pat_t1\nS001,80\n").Return(nil)

		require.NoError(t, run())
		assert.Contains(t, out.String(), "Data uploaded successfully!")
	})

	t.Run("Error: file does not exist", func(t *testing.T) {
		_, mockRepo, _, run := setupCLI(t, "upload", filepath.Join(t.TempDir(), "missing.csv"))

		assert.Error(t, run())
		mockRepo.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSettings(t *testing.T) {
	t.Run("Success: defaults", func(t *testing.T) {
		_, mockRepo, opts, run := setupCLI(t, "predict", "--pat", "1", "--sat", "1", "--attendance", "1")
		mockRepo.On("SubmitPrediction", mock.Anything, mock.Anything).Return(&models.PredictionResponse{Success: true, Prediction: "Average"}, nil)

		require.NoError(t, run())
		assert.Equal(t, "http://localhost:5000", opts.BaseURL)
		assert.Equal(t, 10*time.Second, opts.Timeout)
	})

	t.Run("Success: env overrides defaults", func(t *testing.T) {
		_, mockRepo, opts, run := setupCLI(t, "predict", "--pat", "1", "--sat", "1", "--attendance", "1")
		t.Setenv("DASHCTL_BACKEND", "http://analytics:9000")
		t.Setenv("DASHCTL_TOKEN_SECRET", "s3cret")
		mockRepo.On("SubmitPrediction", mock.Anything, mock.Anything).Return(&models.PredictionResponse{Success: true, Prediction: "Average"}, nil)

		require.NoError(t, run())
		assert.Equal(t, "http://analytics:9000", opts.BaseURL)
		assert.Equal(t, "s3cret", opts.TokenSecret)
	})

	t.Run("Success: config file and flag precedence", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "dashctl.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("backend: http://from-file:5000\ntimeout: 3s\n"), 0o644))

		_, mockRepo, opts, run := setupCLI(t, "--config", cfg, "--timeout", "7s",
			"predict", "--pat", "1", "--sat", "1", "--attendance", "1")
		mockRepo.On("SubmitPrediction", mock.Anything, mock.Anything).Return(&models.PredictionResponse{Success: true, Prediction: "Average"}, nil)

		require.NoError(t, run())
		assert.Equal(t, "http://from-file:5000", opts.BaseURL)
		assert.Equal(t, 7*time.Second, opts.Timeout)
	})
}

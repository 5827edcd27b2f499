package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	models "student-performance-dashboard/app/models/analytics"
)

// MockAnalyticsRepo stands in for repository.AnalyticsRepository.
type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) FetchClassInsights(ctx context.Context, classID string) (*models.ClassResponse, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClassResponse), args.Error(1)
}

func (m *MockAnalyticsRepo) FetchStudentPerformance(ctx context.Context, studentID string) (*models.StudentResponse, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentResponse), args.Error(1)
}

func (m *MockAnalyticsRepo) SubmitPrediction(ctx context.Context, input models.PredictionRequest) (*models.PredictionResponse, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PredictionResponse), args.Error(1)
}

// UploadFile reads the content so expectations can match on the bytes sent.
func (m *MockAnalyticsRepo) UploadFile(ctx context.Context, filename string, content io.Reader) error {
	var body []byte
	if content != nil {
		body, _ = io.ReadAll(content)
	}
	args := m.Called(ctx, filename, string(body))
	return args.Error(0)
}

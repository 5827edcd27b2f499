package models

type Predictions struct {
	// nil values are subjects the backend predictor failed on
	FinalMarks Ordered[*MarkPrediction] `json:"final_marks"`
	Attendance *AttendanceForecast      `json:"attendance"`
}

type MarkPrediction struct {
	PredictedScore      float64              `json:"predicted_score"`
	Confidence          float64              `json:"confidence"`
	Trend               Trend                `json:"trend"`
	ContributingFactors []ContributingFactor `json:"contributing_factors"`
}

// ContributingFactor is a model input with its importance in percent.
type ContributingFactor struct {
	Factor     string  `json:"factor"`
	Importance float64 `json:"importance"`
}

type AttendanceForecast struct {
	CurrentAttendance      float64 `json:"current_attendance"`
	PredictedAttendance    float64 `json:"predicted_attendance"`
	RiskLevel              string  `json:"risk_level"`
	Trend                  Trend   `json:"trend"`
	PerformanceCorrelation float64 `json:"performance_correlation"`
}

// Body POST /predict
type PredictionRequest struct {
	PatScore             float64 `json:"pat_score"`
	SatScore             float64 `json:"sat_score"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type PredictionResponse struct {
	Success         bool     `json:"success"`
	Prediction      string   `json:"prediction"`
	Recommendations []string `json:"recommendations"`
	Error           string   `json:"error,omitempty"`
}

// Payload POST /upload
type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorBody is what the backend sends alongside a non-2xx status.
type ErrorBody struct {
	Error string `json:"error"`
}

package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"student-performance-dashboard/app/chart"
	repoAnalytics "student-performance-dashboard/app/repository/analytics"
	"student-performance-dashboard/app/view"
)

// User-facing messages of the dashboard actions.
const (
	MsgClassLoadPrefix      = "Error loading class analysis: "
	MsgClassDisplayPrefix   = "Error displaying class insights: "
	MsgStudentLoadPrefix    = "Error loading student analysis: "
	MsgStudentDisplayPrefix = "Error displaying student analysis: "
	MsgPredictPrefix        = "Error making prediction: "
	MsgPredictRetry         = "Error making prediction. Please try again."
	MsgUploadNoFile         = "Please select a file first."
	MsgUploadOK             = "Data uploaded successfully!"
	MsgUploadPrefix         = "Error uploading data: "
	MsgUploadRetry          = "Error uploading data. Please try again."
)

type ClassSection struct {
	ClassID string          `json:"class_id"`
	View    *view.ClassView `json:"view"`
	Charts  []ChartRef      `json:"charts"`
}

type StudentSection struct {
	StudentID string            `json:"student_id"`
	View      *view.StudentView `json:"view"`
	Charts    []ChartRef        `json:"charts"`
}

type UploadReceipt struct {
	Filename string `json:"filename"`
}

type DashboardService struct {
	repo    repoAnalytics.AnalyticsRepository
	charts  *chart.Manager
	classes []string
}

func NewDashboardService(r repoAnalytics.AnalyticsRepository, charts *chart.Manager, classes []string) *DashboardService {
	if charts == nil {
		charts = chart.NewManager(nil)
	}
	return &DashboardService{repo: r, charts: charts, classes: classes}
}

// Charts exposes the chart registry the service renders into.
func (s *DashboardService) Charts() *chart.Manager {
	return s.charts
}

// ClassAnalysis loads and renders the class insights section. An empty id
// hides the section without calling the backend.
func (s *DashboardService) ClassAnalysis(ctx context.Context, classID string) Result[ClassSection] {
	classID = strings.TrimSpace(classID)
	if classID == "" {
		return Result[ClassSection]{Success: true, Status: 200}
	}

	// 1. Ambil tiket sebelum request supaya hasil lama tidak menimpa yang baru
	ticket := s.charts.Begin(chart.SlotPerformance, chart.SlotSubjects)

	// 2. Ambil data dari backend
	resp, err := s.repo.FetchClassInsights(ctx, classID)
	if err != nil {
		log.Printf("[dashboard:class] load %s: %v", classID, err)
		return failed[ClassSection](502, MsgClassLoadPrefix+err.Error())
	}

	// 3. Bangun view model
	v, err := safely("dashboard:class", func() (*view.ClassView, error) {
		return view.BuildClassInsights(resp.Insights)
	})
	if err != nil {
		log.Printf("[dashboard:class] display %s: %v", classID, err)
		return failed[ClassSection](502, MsgClassDisplayPrefix+err.Error())
	}

	// 4. Pasang chart
	refs := s.applyCharts("dashboard:class", ticket, v.Charts)

	return succeeded(&ClassSection{ClassID: classID, View: v, Charts: refs}, nil)
}

// StudentAnalysis loads and renders the student section.
func (s *DashboardService) StudentAnalysis(ctx context.Context, studentID string) Result[StudentSection] {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return Result[StudentSection]{Success: true, Status: 200}
	}

	ticket := s.charts.Begin(chart.SlotStudentSubjects, chart.SlotProgress)

	resp, err := s.repo.FetchStudentPerformance(ctx, studentID)
	if err != nil {
		log.Printf("[dashboard:student] load %s: %v", studentID, err)
		return failed[StudentSection](502, MsgStudentLoadPrefix+err.Error())
	}

	v, err := safely("dashboard:student", func() (*view.StudentView, error) {
		return view.BuildStudentAnalysis(resp.Performance, resp.Analysis, resp.Suggestions)
	})
	if err != nil {
		log.Printf("[dashboard:student] display %s: %v", studentID, err)
		return failed[StudentSection](502, MsgStudentDisplayPrefix+err.Error())
	}

	refs := s.applyCharts("dashboard:student", ticket, v.Charts)

	return succeeded(&StudentSection{StudentID: studentID, View: v, Charts: refs}, nil)
}

// Predict validates the form, submits it and builds the result badge.
func (s *DashboardService) Predict(ctx context.Context, form view.PredictionForm) Result[view.PredictionResult] {
	input, err := view.ParsePredictionForm(form)
	if err != nil {
		return failed[view.PredictionResult](400, MsgPredictPrefix+err.Error())
	}

	resp, err := s.repo.SubmitPrediction(ctx, input)
	if err != nil {
		log.Printf("[dashboard:predict] %v", err)
		if needsRetry(err) {
			return failed[view.PredictionResult](502, MsgPredictRetry)
		}
		return failed[view.PredictionResult](502, MsgPredictPrefix+err.Error())
	}

	return succeeded(view.BuildPredictionResult(resp.Prediction, resp.Recommendations), nil)
}

// Upload forwards the selected file to the backend.
func (s *DashboardService) Upload(ctx context.Context, filename string, content io.Reader) Result[UploadReceipt] {
	if filename == "" || content == nil {
		return failed[UploadReceipt](400, MsgUploadNoFile)
	}

	if err := s.repo.UploadFile(ctx, filename, content); err != nil {
		log.Printf("[dashboard:upload] %s: %v", filename, err)
		switch {
		case errors.Is(err, repoAnalytics.ErrNoFile):
			return failed[UploadReceipt](400, MsgUploadNoFile)
		case needsRetry(err):
			return failed[UploadReceipt](502, MsgUploadRetry)
		default:
			return failed[UploadReceipt](502, MsgUploadPrefix+err.Error())
		}
	}

	log.Printf("[dashboard:upload] %s uploaded", filename)
	return succeeded(&UploadReceipt{Filename: filename}, view.SuccessNotice(MsgUploadOK))
}

// applyCharts hands every config of one load to the chart registry at once.
// A slot whose chart cannot be built is logged and left out, the section is
// still shown. Results from a superseded ticket are dropped; the page then
// points at the newer instance.
func (s *DashboardService) applyCharts(tag string, ticket chart.Ticket, configs []view.SlotChart) []ChartRef {
	batch := make([]chart.SlotConfig, 0, len(configs))
	for _, sc := range configs {
		batch = append(batch, chart.SlotConfig{Slot: sc.Slot, Config: sc.Config})
	}

	errs := s.charts.ApplyAll(ticket, batch)

	refs := make([]ChartRef, 0, len(configs))
	for i, sc := range batch {
		switch err := errs[i]; {
		case errors.Is(err, chart.ErrStale):
			log.Printf("[%s] dropped stale %s chart", tag, sc.Slot)
		case err != nil:
			log.Printf("[%s] chart %s unavailable: %v", tag, sc.Slot, err)
			continue
		}
		refs = append(refs, chartRef(s.charts, sc.Slot))
	}
	return refs
}

// needsRetry reports failures where the backend gave no usable answer: the
// request never completed, or the body could not be read.
func needsRetry(err error) bool {
	switch repoAnalytics.KindOf(err) {
	case repoAnalytics.KindTransport, repoAnalytics.KindStatusUnparseable, repoAnalytics.KindMalformed:
		return true
	case 0:
		return true
	default:
		return false
	}
}

package service

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"student-performance-dashboard/app/chart"
	"student-performance-dashboard/app/export"
	"student-performance-dashboard/app/view"
)

const (
	PageLayout       = "layouts/main"
	PageIndex        = "index"
	FragmentClass    = "fragments/class"
	FragmentStudent  = "fragments/student"
	FragmentPredict  = "fragments/prediction"
	invalidBodyError = "invalid request body"
)

var knownSlots = map[string]bool{
	chart.SlotPerformance:     true,
	chart.SlotSubjects:        true,
	chart.SlotStudentSubjects: true,
	chart.SlotProgress:        true,
}

// pageData is the binding of the index template.
type pageData struct {
	Title      string
	Classes    []string
	ClassID    string
	StudentID  string
	Class      *Result[ClassSection]
	Student    *Result[StudentSection]
	Prediction *Result[view.PredictionResult]
	Upload     *Result[UploadReceipt]
	Notices    []*view.Notice
}

func (p *pageData) notice(n *view.Notice) {
	if n != nil {
		p.Notices = append(p.Notices, n)
	}
}

func (s *DashboardService) newPage() *pageData {
	return &pageData{Title: "Student Performance Dashboard", Classes: s.classes}
}

func (s *DashboardService) renderPage(c *fiber.Ctx, p *pageData) error {
	return c.Render(PageIndex, p, PageLayout)
}

// === Pages ===

// Index renders the dashboard. ?class_id= and ?student_id= preload those
// sections.
func (s *DashboardService) Index(c *fiber.Ctx) error {
	ctx := c.Context()
	p := s.newPage()

	// 1. Ambil query
	p.ClassID = strings.TrimSpace(c.Query("class_id"))
	p.StudentID = strings.TrimSpace(c.Query("student_id"))

	// 2. Muat section yang diminta
	if p.ClassID != "" {
		res := s.ClassAnalysis(ctx, p.ClassID)
		p.Class = &res
		p.notice(res.Notice)
	}
	if p.StudentID != "" {
		res := s.StudentAnalysis(ctx, p.StudentID)
		p.Student = &res
		p.notice(res.Notice)
	}

	return s.renderPage(c, p)
}

func (s *DashboardService) PredictPage(c *fiber.Ctx) error {
	p := s.newPage()
	res := s.predictFromBody(c)
	p.Prediction = &res
	p.notice(res.Notice)
	return s.renderPage(c, p)
}

func (s *DashboardService) UploadPage(c *fiber.Ctx) error {
	p := s.newPage()
	res := s.uploadFromForm(c)
	p.Upload = &res
	p.notice(res.Notice)
	return s.renderPage(c, p)
}

// === Fragments ===

func (s *DashboardService) ClassFragment(c *fiber.Ctx) error {
	res := s.ClassAnalysis(c.Context(), param(c, "classId"))
	return c.Render(FragmentClass, res)
}

func (s *DashboardService) StudentFragment(c *fiber.Ctx) error {
	res := s.StudentAnalysis(c.Context(), param(c, "studentId"))
	return c.Render(FragmentStudent, res)
}

func (s *DashboardService) PredictFragment(c *fiber.Ctx) error {
	res := s.predictFromBody(c)
	return c.Render(FragmentPredict, res)
}

// === JSON API ===

func (s *DashboardService) ClassAPI(c *fiber.Ctx) error {
	res := s.ClassAnalysis(c.Context(), param(c, "classId"))
	return c.Status(res.Status).JSON(res)
}

func (s *DashboardService) StudentAPI(c *fiber.Ctx) error {
	res := s.StudentAnalysis(c.Context(), param(c, "studentId"))
	return c.Status(res.Status).JSON(res)
}

func (s *DashboardService) PredictAPI(c *fiber.Ctx) error {
	res := s.predictFromBody(c)
	return c.Status(res.Status).JSON(res)
}

func (s *DashboardService) UploadAPI(c *fiber.Ctx) error {
	res := s.uploadFromForm(c)
	return c.Status(res.Status).JSON(res)
}

// === Charts ===

// ChartSVG writes the live instance of a slot. With ?v= the instance must
// still be that version, otherwise 410 tells the page to reload.
func (s *DashboardService) ChartSVG(c *fiber.Ctx) error {
	slot, err := slotParam(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.charts.RenderVersion(slot, versionParam(c), &buf); err != nil {
		return chartError(slot, err)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(buf.Bytes())
}

// ChartConfig returns the Chart.js configuration of the live instance.
func (s *DashboardService) ChartConfig(c *fiber.Ctx) error {
	slot, err := slotParam(c)
	if err != nil {
		return err
	}

	cfg, err := s.charts.ConfigVersion(slot, versionParam(c))
	if err != nil {
		return chartError(slot, err)
	}
	raw, err := chart.ChartJS(cfg)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

// === Export ===

// ExportStudent downloads the performance table of a student as XLSX.
func (s *DashboardService) ExportStudent(c *fiber.Ctx) error {
	studentID := param(c, "studentId")

	resp, err := s.repo.FetchStudentPerformance(c.Context(), studentID)
	if err != nil {
		log.Printf("[dashboard:export] load %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusBadGateway, MsgStudentLoadPrefix+err.Error())
	}

	var buf bytes.Buffer
	if err := export.WriteStudentTable(&buf, resp.Performance); err != nil {
		log.Printf("[dashboard:export] write %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Attachment(export.FileName(studentID))
	return c.Send(buf.Bytes())
}

// === Helpers ===

func (s *DashboardService) predictFromBody(c *fiber.Ctx) Result[view.PredictionResult] {
	var form view.PredictionForm
	if err := c.BodyParser(&form); err != nil {
		return failed[view.PredictionResult](fiber.StatusBadRequest, MsgPredictPrefix+invalidBodyError)
	}
	return s.Predict(c.Context(), form)
}

func (s *DashboardService) uploadFromForm(c *fiber.Ctx) Result[UploadReceipt] {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return s.Upload(c.Context(), "", nil)
	}

	f, err := fh.Open()
	if err != nil {
		log.Printf("[dashboard:upload] open %s: %v", fh.Filename, err)
		return failed[UploadReceipt](fiber.StatusBadRequest, MsgUploadPrefix+err.Error())
	}
	defer f.Close()

	return s.Upload(c.Context(), fh.Filename, f)
}

// param returns the unescaped route parameter.
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func slotParam(c *fiber.Ctx) (string, error) {
	slot := c.Params("slot")
	if !knownSlots[slot] {
		return "", fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("unknown chart slot %q", slot))
	}
	return slot, nil
}

// versionParam reads ?v=; absent or invalid means any version.
func versionParam(c *fiber.Ctx) uint64 {
	v := c.QueryInt("v")
	if v < 0 {
		return 0
	}
	return uint64(v)
}

func chartError(slot string, err error) error {
	if errors.Is(err, chart.ErrSuperseded) {
		return fiber.NewError(fiber.StatusGone, fmt.Sprintf("chart in slot %q was replaced, reload the page", slot))
	}
	if errors.Is(err, chart.ErrNoChart) || errors.Is(err, chart.ErrDisposed) {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("no chart in slot %q", slot))
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

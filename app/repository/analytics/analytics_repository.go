package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"student-performance-dashboard/app/metrics"
	models "student-performance-dashboard/app/models/analytics"
	"student-performance-dashboard/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
)

// Fallback messages used when the backend gives no error text.
const (
	MsgClassStatus       = "Failed to load class data"
	MsgClassUnsuccessful = "Failed to load class analysis"
	MsgStudentStatus     = "Failed to load student data"
	MsgStudentInvalid    = "Invalid student data received"
	MsgPredictionFailed  = "Prediction failed"
	MsgUploadFailed      = "Upload failed"
)

type AnalyticsRepository interface {
	FetchClassInsights(ctx context.Context, classID string) (*models.ClassResponse, error)
	FetchStudentPerformance(ctx context.Context, studentID string) (*models.StudentResponse, error)
	SubmitPrediction(ctx context.Context, input models.PredictionRequest) (*models.PredictionResponse, error)
	UploadFile(ctx context.Context, filename string, content io.Reader) error
}

type Options struct {
	BaseURL string
	// Timeout 0 leaves fasthttp's defaults in place.
	Timeout     time.Duration
	TokenSecret string
	Client      *fasthttp.Client
}

type analyticsRepository struct {
	client      *fasthttp.Client
	baseURL     string
	timeout     time.Duration
	tokenSecret string
}

func NewAnalyticsRepository(opts Options) AnalyticsRepository {
	client := opts.Client
	if client == nil {
		client = &fasthttp.Client{Name: "student-performance-dashboard"}
	}
	return &analyticsRepository{
		client:      client,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		timeout:     opts.Timeout,
		tokenSecret: opts.TokenSecret,
	}
}

func (r *analyticsRepository) FetchClassInsights(ctx context.Context, classID string) (*models.ClassResponse, error) {
	var payload models.ClassResponse
	if err := r.fetchResource(ctx, "class", "/class/"+url.PathEscape(classID), MsgClassStatus, &payload); err != nil {
		return nil, err
	}

	if !payload.Success {
		return nil, r.unsuccessful("class", payload.Error, MsgClassUnsuccessful)
	}
	return &payload, nil
}

func (r *analyticsRepository) FetchStudentPerformance(ctx context.Context, studentID string) (*models.StudentResponse, error) {
	var payload models.StudentResponse
	if err := r.fetchResource(ctx, "student", "/student/"+url.PathEscape(studentID), MsgStudentStatus, &payload); err != nil {
		return nil, err
	}

	if !payload.Success || payload.Performance == nil {
		return nil, r.unsuccessful("student", payload.Error, MsgStudentInvalid)
	}
	return &payload, nil
}

func (r *analyticsRepository) SubmitPrediction(ctx context.Context, input models.PredictionRequest) (*models.PredictionResponse, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "encode prediction request")
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	var payload models.PredictionResponse
	if err := r.send(ctx, "predict", "/predict", req, MsgPredictionFailed, &payload); err != nil {
		return nil, err
	}

	// HTTP 200 tidak berarti prediksi berhasil, cek flag success dari payload
	if !payload.Success {
		return nil, r.unsuccessful("predict", payload.Error, MsgPredictionFailed)
	}
	return &payload, nil
}

func (r *analyticsRepository) UploadFile(ctx context.Context, filename string, content io.Reader) error {
	if filename == "" || content == nil {
		return ErrNoFile
	}

	// 1. Susun multipart body dengan field "file"
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return errors.Wrap(err, "create multipart field")
	}
	if _, err := io.Copy(part, content); err != nil {
		return errors.Wrapf(err, "read %s", filename)
	}
	if err := mw.Close(); err != nil {
		return errors.Wrap(err, "close multipart body")
	}

	// 2. Kirim ke backend
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType(mw.FormDataContentType())
	req.SetBody(buf.Bytes())

	var payload models.UploadResponse
	if err := r.send(ctx, "upload", "/upload", req, MsgUploadFailed, &payload); err != nil {
		return err
	}

	if !payload.Success {
		return r.unsuccessful("upload", payload.Error, MsgUploadFailed)
	}
	return nil
}

// fetchResource GETs path and decodes the JSON body into out.
func (r *analyticsRepository) fetchResource(ctx context.Context, endpoint, path, fallback string, out interface{}) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetMethod(fasthttp.MethodGet)

	return r.send(ctx, endpoint, path, req, fallback, out)
}

func (r *analyticsRepository) send(ctx context.Context, endpoint, path string, req *fasthttp.Request, fallback string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		metrics.ObserveUpstream(endpoint, KindTransport.String())
		return &APIError{Kind: KindTransport, Endpoint: endpoint, Message: err.Error(), Err: err}
	}

	req.SetRequestURI(r.baseURL + path)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.tokenSecret != "" {
		token, err := utils.GenerateServiceToken(r.tokenSecret, endpoint, time.Minute)
		if err != nil {
			return errors.Wrap(err, "sign service token")
		}
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+token)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := r.do(ctx, req, resp); err != nil {
		metrics.ObserveUpstream(endpoint, KindTransport.String())
		return &APIError{
			Kind:     KindTransport,
			Endpoint: endpoint,
			Message:  err.Error(),
			Err:      errors.Wrapf(err, "%s %s", req.Header.Method(), path),
		}
	}

	status := resp.StatusCode()
	body := resp.Body()

	if status < 200 || status > 299 {
		apiErr := statusError(endpoint, status, body, fallback)
		metrics.ObserveUpstream(endpoint, apiErr.Kind.String())
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.ObserveUpstream(endpoint, KindMalformed.String())
		return &APIError{
			Kind:     KindMalformed,
			Endpoint: endpoint,
			Status:   status,
			Message:  fmt.Sprintf("%s: invalid response from server", fallback),
			Err:      errors.Wrapf(err, "decode %s response", endpoint),
		}
	}

	metrics.ObserveUpstream(endpoint, "ok")
	return nil
}

func (r *analyticsRepository) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return r.client.DoDeadline(req, resp, deadline)
	}
	if r.timeout > 0 {
		return r.client.DoTimeout(req, resp, r.timeout)
	}
	return r.client.Do(req, resp)
}

func (r *analyticsRepository) unsuccessful(endpoint, message, fallback string) error {
	metrics.ObserveUpstream(endpoint, KindUnsuccessful.String())
	if strings.TrimSpace(message) == "" {
		message = fallback
	}
	return &APIError{Kind: KindUnsuccessful, Endpoint: endpoint, Status: fasthttp.StatusOK, Message: message}
}

// statusError reads {error} from a failed response, falling back to a
// message that names the status code.
func statusError(endpoint string, status int, body []byte, fallback string) *APIError {
	var errBody models.ErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && strings.TrimSpace(errBody.Error) != "" {
		return &APIError{Kind: KindStatus, Endpoint: endpoint, Status: status, Message: errBody.Error}
	}

	return &APIError{
		Kind:     KindStatusUnparseable,
		Endpoint: endpoint,
		Status:   status,
		Message:  fmt.Sprintf("%s (%d)", fallback, status),
	}
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zip"
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/pkg/response"
)

const pdfBytes = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

type fakeService struct {
	inputs    []converter.Input
	submitted []converter.Input
	err       error
	failed    *jobstore.ErrorInfo
	records   map[string]*jobstore.Record
}

func (f *fakeService) Convert(ctx context.Context, in converter.Input) (*jobstore.Record, error) {
	if _, err := os.Stat(in.Source); err != nil {
		return nil, fmt.Errorf("upload not stored: %w", err)
	}
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.failed != nil {
		return &jobstore.Record{ID: "job-1", Status: model.StatusFailed, Error: f.failed}, errors.New("failed")
	}
	return &jobstore.Record{
		ID:     "job-1",
		Status: model.StatusDone,
		Result: &model.Result{
			JobID:      "job-1",
			VideoURL:   "/uploads/job-1_processed/final_video.mp4",
			DurationMs: 3000,
			Slides:     []model.SlideDetail{{Index: 0, Content: "Hello.", Style: "warm"}},
		},
	}, nil
}

func (f *fakeService) Submit(ctx context.Context, in converter.Input) (*jobstore.Record, error) {
	f.submitted = append(f.submitted, in)
	if f.err != nil {
		return nil, f.err
	}
	return &jobstore.Record{ID: "job-2", Status: model.StatusReceived}, nil
}

func (f *fakeService) Run(ctx context.Context, jobID string) (*jobstore.Record, error) {
	return nil, errors.New("not used")
}

func (f *fakeService) Get(ctx context.Context, jobID string) (*jobstore.Record, error) {
	if rec, ok := f.records[jobID]; ok {
		return rec, nil
	}
	return nil, jobstore.ErrNotFound
}

func newTestApp(t *testing.T, svc *fakeService) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		Gemini: config.GeminiConfig{DefaultVoice: "Aoede"},
		Paths:  config.PathsConfig{Work: t.TempDir(), Uploads: t.TempDir()},
		Server: config.ServerConfig{Env: "development", MaxUploadMB: 5, PublicPrefix: "/uploads"},
	}
	h := New(cfg, svc, validator.New(), logger.Nop())
	return NewApp(h), cfg
}

func multipartBody(t *testing.T, field, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if field != "" {
		fw, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(content)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("ppt/presentation.xml")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("<p:presentation/>"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func post(t *testing.T, app *fiber.App, body io.Reader, contentType string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/convert", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	return resp, decode(t, resp)
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestConvertSync(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		content  []byte
	}{
		{"pdf in pptx field", "pptx", "slides.pdf", []byte(pdfBytes)},
		{"pptx in file field", "file", "slides.pptx", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			app, cfg := newTestApp(t, svc)
			content := tt.content
			if content == nil {
				content = zipBytes(t)
			}

			body, ct := multipartBody(t, tt.field, tt.filename, content, map[string]string{"voice": "Kore"})
			resp, out := post(t, app, body, ct)

			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, body = %v", resp.StatusCode, out)
			}
			if out["jobId"] != "job-1" || out["videoUrl"] != "/uploads/job-1_processed/final_video.mp4" {
				t.Errorf("body = %v", out)
			}
			details, _ := out["details"].([]interface{})
			if len(details) != 1 {
				t.Fatalf("details = %v", out["details"])
			}
			if d := details[0].(map[string]interface{}); d["tts_prompt"] != "warm" {
				t.Errorf("detail = %v", d)
			}

			in := svc.inputs[0]
			if in.Voice != "Kore" {
				t.Errorf("Voice = %q", in.Voice)
			}
			if filepath.Dir(in.Source) != filepath.Clean(cfg.Paths.Uploads) {
				t.Errorf("Source = %q, want under %q", in.Source, cfg.Paths.Uploads)
			}
			if stem := strings.TrimSuffix(filepath.Base(in.Source), filepath.Ext(in.Source)); in.ID != stem {
				t.Errorf("ID = %q, want the upload name %q", in.ID, stem)
			}
		})
	}
}

func TestConvertRejects(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		content  string
		fields   map[string]string
	}{
		{"missing file", "", "", "", nil},
		{"wrong extension", "pptx", "notes.txt", "hello", nil},
		{"content mismatch", "pptx", "deck.pptx", "just some text", nil},
		{"invalid voice", "pptx", "deck.pdf", pdfBytes, map[string]string{"voice": "Ao3de!"}},
		{"invalid async flag", "pptx", "deck.pdf", pdfBytes, map[string]string{"async": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			app, _ := newTestApp(t, svc)

			body, ct := multipartBody(t, tt.field, tt.filename, []byte(tt.content), tt.fields)
			resp, out := post(t, app, body, ct)

			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %v)", resp.StatusCode, out)
			}
			if out["kind"] != response.KindValidation {
				t.Errorf("kind = %v", out["kind"])
			}
			if len(svc.inputs)+len(svc.submitted) != 0 {
				t.Error("service must not be called")
			}
		})
	}
}

func TestConvertFailures(t *testing.T) {
	slide := 1
	tests := []struct {
		name       string
		svc        *fakeService
		wantStatus int
		wantKind   string
	}{
		{
			name:       "unknown voice at creation",
			svc:        &fakeService{err: model.NewError(model.KindInput, model.StatusReceived, errors.New("unknown voice"))},
			wantStatus: fiber.StatusBadRequest,
			wantKind:   "input_error",
		},
		{
			name: "pipeline failure",
			svc: &fakeService{failed: &jobstore.ErrorInfo{
				Message: "A slide clip could not be rendered", Kind: "render_failure", Stage: "processing", SlideIndex: &slide,
			}},
			wantStatus: fiber.StatusInternalServerError,
			wantKind:   "render_failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, cfg := newTestApp(t, tt.svc)

			body, ct := multipartBody(t, "pptx", "deck.pdf", []byte(pdfBytes), nil)
			resp, out := post(t, app, body, ct)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if out["kind"] != tt.wantKind {
				t.Errorf("kind = %v, want %s", out["kind"], tt.wantKind)
			}
			if tt.wantKind == "render_failure" && out["slideIndex"] != float64(1) {
				t.Errorf("slideIndex = %v, want 1", out["slideIndex"])
			}
			if tt.wantKind == "input_error" {
				entries, _ := os.ReadDir(cfg.Paths.Uploads)
				if len(entries) != 0 {
					t.Errorf("rejected upload should be removed, found %d files", len(entries))
				}
			}
		})
	}
}

func TestConvertAsync(t *testing.T) {
	svc := &fakeService{}
	app, _ := newTestApp(t, svc)

	body, ct := multipartBody(t, "pptx", "deck.pdf", []byte(pdfBytes), map[string]string{"async": "true"})
	resp, out := post(t, app, body, ct)

	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, out)
	}
	if out["jobId"] != "job-2" || out["statusUrl"] != "/api/jobs/job-2" || out["status"] != "received" {
		t.Errorf("body = %v", out)
	}
	if len(svc.submitted) != 1 || len(svc.inputs) != 0 {
		t.Fatalf("submitted = %d, converted = %d", len(svc.submitted), len(svc.inputs))
	}
	if in := svc.submitted[0]; in.ID == "" || !strings.HasPrefix(filepath.Base(in.Source), in.ID+".") {
		t.Errorf("ID = %q, want the upload name of %q", in.ID, in.Source)
	}
}

func TestJob(t *testing.T) {
	svc := &fakeService{records: map[string]*jobstore.Record{
		"job-1": {ID: "job-1", Status: model.StatusPlanning},
	}}
	app, _ := newTestApp(t, svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/job-1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if out := decode(t, resp); resp.StatusCode != fiber.StatusOK || out["status"] != "planning" {
		t.Errorf("status = %d, body = %v", resp.StatusCode, out)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestVoicesAndHealth(t *testing.T) {
	app, _ := newTestApp(t, &fakeService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/voices", nil))
	if err != nil {
		t.Fatal(err)
	}
	out := decode(t, resp)
	if out["default"] != "Aoede" {
		t.Errorf("default = %v", out["default"])
	}
	if voices, _ := out["voices"].([]interface{}); len(voices) == 0 {
		t.Error("voices should not be empty")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if out := decode(t, resp); out["status"] != "ok" {
		t.Errorf("health = %v", out)
	}
}

func TestStaticJobTree(t *testing.T) {
	app, cfg := newTestApp(t, &fakeService{})
	dir := filepath.Join(cfg.Paths.Work, "job-1_processed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "final_video.mp4"), []byte("mp4"), 0644); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/uploads/job-1_processed/final_video.mp4", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docstruct/internal/config"
	"github.com/dgallion1/docstruct/internal/outline"
	"github.com/dgallion1/docstruct/internal/pipeline"
)

const testAPIKey = "test-key"

const guideMarkdown = `# User Guide

Welcome to the product. This guide covers installation and setup in detail for new users.

## Installation

Run the installer and follow the prompts to completion.

## Settings

Edit the settings file before first launch.
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, outDir string, start bool) *Server {
	t.Helper()
	cfg := config.Config{
		APIKey:         testAPIKey,
		WorkerCount:    2,
		MaxQueueSize:   8,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
		OutputDir:      outDir,
	}
	parser, err := pipeline.NewParser(outline.Config{})
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	orch := pipeline.NewOrchestrator(cfg, parser, discardLogger())
	if start {
		orch.Start(context.Background())
		t.Cleanup(orch.Stop)
	}
	return NewServer(orch, discardLogger(), cfg)
}

// multipartUpload builds a multipart body with one file part per entry in
// files, plus any extra form fields.
func multipartUpload(t *testing.T, field string, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for name, content := range files {
		part, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return buf, mw.FormDataContentType()
}

func doRequest(t *testing.T, s *Server, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return m
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "", false)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	s := newTestServer(t, "", false)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	s := newTestServer(t, "", false)
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_WrongToken(t *testing.T) {
	s := newTestServer(t, "", false)
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func pollJobStatus(t *testing.T, s *Server, jobID string) map[string]any {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		rec := doRequest(t, s, http.MethodGet, "/api/parse/"+jobID+"/status", nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status poll returned %d: %s", rec.Code, rec.Body.String())
		}
		m := decodeJSON(t, rec)
		switch m["status"] {
		case string(pipeline.StatusCompleted):
			return m
		case string(pipeline.StatusFailed):
			t.Fatalf("job failed: %v", m["progress"])
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for job, status=%v", m["status"])
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestParse_EndToEnd(t *testing.T) {
	outDir := t.TempDir()
	s := newTestServer(t, outDir, true)

	body, ct := multipartUpload(t, "file", map[string]string{"guide.md": guideMarkdown}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/parse", body, ct)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	accepted := decodeJSON(t, rec)
	jobID, _ := accepted["job_id"].(string)
	if len(jobID) != 20 {
		t.Fatalf("expected 20-character job ID, got %q", jobID)
	}
	if accepted["poll_url"] != "/api/parse/"+jobID+"/status" {
		t.Errorf("unexpected poll_url %v", accepted["poll_url"])
	}

	status := pollJobStatus(t, s, jobID)
	if status["title"] != "User Guide" {
		t.Errorf("expected title %q, got %v", "User Guide", status["title"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/parse/"+jobID+"/result", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 result, got %d: %s", rec.Code, rec.Body.String())
	}
	var doc outline.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.Title != "User Guide" {
		t.Errorf("expected document title %q, got %q", "User Guide", doc.Title)
	}
	if len(doc.Outline) != 2 {
		t.Errorf("expected 2 outline entries, got %+v", doc.Outline)
	}

	// The worker also persisted the document.
	if _, err := os.Stat(filepath.Join(outDir, "guide.json")); err != nil {
		t.Errorf("expected persisted output: %v", err)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/stats", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 stats, got %d", rec.Code)
	}
	stats := decodeJSON(t, rec)
	parseStats, _ := stats["parse"].(map[string]any)
	if parseStats == nil || parseStats["count"].(float64) < 1 {
		t.Errorf("expected at least one latency sample, got %v", stats)
	}
}

func TestParse_TitleAndDocIDOverrides(t *testing.T) {
	s := newTestServer(t, "", true)

	body, ct := multipartUpload(t, "file", map[string]string{"guide.md": guideMarkdown},
		map[string]string{"doc_id": "custom-doc-1", "title": "Override Title"})
	rec := doRequest(t, s, http.MethodPost, "/api/parse", body, ct)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	accepted := decodeJSON(t, rec)
	if accepted["doc_id"] != "custom-doc-1" {
		t.Errorf("expected doc_id override, got %v", accepted["doc_id"])
	}

	jobID, _ := accepted["job_id"].(string)
	status := pollJobStatus(t, s, jobID)
	if status["title"] != "Override Title" {
		t.Errorf("expected overridden title, got %v", status["title"])
	}
}

func TestParse_UnsupportedType(t *testing.T) {
	s := newTestServer(t, "", false)

	body, ct := multipartUpload(t, "file", map[string]string{"data.csv": "a,b,c"}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/parse", body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unsupported file type") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestParse_MissingFile(t *testing.T) {
	s := newTestServer(t, "", false)

	body, ct := multipartUpload(t, "file", nil, map[string]string{"title": "x"})
	rec := doRequest(t, s, http.MethodPost, "/api/parse", body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestParse_FileTooLarge(t *testing.T) {
	s := newTestServer(t, "", false)

	big := strings.Repeat("x", (1<<20)+1)
	body, ct := multipartUpload(t, "file", map[string]string{"big.txt": big}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/parse", body, ct)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestParseStatus_NotFound(t *testing.T) {
	s := newTestServer(t, "", false)
	rec := doRequest(t, s, http.MethodGet, "/api/parse/nope/status", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestParseResult_NotCompleted(t *testing.T) {
	// Workers never started: the job stays queued.
	s := newTestServer(t, "", false)

	body, ct := multipartUpload(t, "file", map[string]string{"guide.md": guideMarkdown}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/parse", body, ct)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	jobID, _ := decodeJSON(t, rec)["job_id"].(string)

	rec = doRequest(t, s, http.MethodGet, "/api/parse/"+jobID+"/result", nil, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestBatchParse(t *testing.T) {
	s := newTestServer(t, "", true)

	body, ct := multipartUpload(t, "files", map[string]string{
		"a.md":     "# Alpha\n\nText.\n",
		"data.csv": "a,b,c",
	}, nil)
	rec := doRequest(t, s, http.MethodPost, "/api/parse/batch", body, ct)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	m := decodeJSON(t, rec)
	jobs, _ := m["jobs"].([]any)
	if len(jobs) != 2 {
		t.Fatalf("expected 2 job entries, got %d", len(jobs))
	}
	accepted := 0
	rejected := 0
	for _, j := range jobs {
		entry := j.(map[string]any)
		if entry["error"] != nil {
			rejected++
		} else {
			accepted++
		}
	}
	if accepted != 1 || rejected != 1 {
		t.Errorf("expected 1 accepted and 1 rejected, got %d/%d", accepted, rejected)
	}
}

func TestBatchParse_NoFiles(t *testing.T) {
	s := newTestServer(t, "", false)
	body, ct := multipartUpload(t, "files", nil, map[string]string{"x": "y"})
	rec := doRequest(t, s, http.MethodPost, "/api/parse/batch", body, ct)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDocuments_ListGetDelete(t *testing.T) {
	outDir := t.TempDir()
	s := newTestServer(t, outDir, false)

	content := []byte("{\n  \"title\": \"Stored\",\n  \"outline\": []\n}\n")
	if err := os.WriteFile(filepath.Join(outDir, "stored.json"), content, 0o644); err != nil {
		t.Fatalf("seed output: %v", err)
	}

	rec := doRequest(t, s, http.MethodGet, "/api/documents", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	m := decodeJSON(t, rec)
	docs, _ := m["documents"].([]any)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %v", m)
	}
	entry := docs[0].(map[string]any)
	if entry["name"] != "stored.json" {
		t.Errorf("expected name stored.json, got %v", entry["name"])
	}

	rec = doRequest(t, s, http.MethodGet, "/api/documents/stored.json", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != string(content) {
		t.Errorf("expected stored content back, got %q", rec.Body.String())
	}

	rec = doRequest(t, s, http.MethodDelete, "/api/documents/stored.json", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/documents/stored.json", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDocuments_NotConfigured(t *testing.T) {
	s := newTestServer(t, "", false)
	rec := doRequest(t, s, http.MethodGet, "/api/documents", nil, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestDocuments_RejectsNonJSONName(t *testing.T) {
	s := newTestServer(t, t.TempDir(), false)
	rec := doRequest(t, s, http.MethodGet, "/api/documents/secrets.txt", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"dir/report.md", "report.md"},
		{"", "unnamed"},
		{".", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

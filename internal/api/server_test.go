package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docfields/internal/config"
	"github.com/dgallion1/docfields/internal/parser"
	"github.com/dgallion1/docfields/internal/pdftest"
	"github.com/dgallion1/docfields/internal/pipeline"
	"github.com/xuri/excelize/v2"
)

func testConfig() config.Config {
	return config.Config{
		Port:           "8090",
		MaxUploadBytes: 1 << 20,
		LongFieldChars: 100,
		StatsWindow:    time.Hour,
	}
}

func newTestServer(cfg config.Config) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := pipeline.NewService(&parser.TextExtractor{}, pipeline.NewStats(cfg.StatsWindow), log)
	return NewServer(svc, log, cfg)
}

func uploadRequest(t *testing.T, target, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(testConfig())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestClassify(t *testing.T) {
	srv := newTestServer(testConfig())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify?filename=report_invoice_Q1.pdf", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode(t, rec)["kind"]; got != "invoice" {
		t.Errorf("expected invoice, got %v", got)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify?filename=scan.pdf", nil))
	body := decode(t, rec)
	if body["kind"] != "unknown" {
		t.Errorf("expected unknown, got %v", body["kind"])
	}
	if choices, ok := body["choices"].([]any); !ok || len(choices) != 3 {
		t.Errorf("expected 3 choices, got %v", body["choices"])
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/classify", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without filename, got %d", rec.Code)
	}
}

func TestExtractLatexJSON(t *testing.T) {
	srv := newTestServer(testConfig())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "notes.tex", []byte(`\alpha^2`), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["kind"] != "latex" || body["file"] != "notes.tex" {
		t.Errorf("unexpected body %v", body)
	}
	record, ok := body["record"].(map[string]any)
	if !ok {
		t.Fatalf("expected record object, got %T", body["record"])
	}
	if !strings.Contains(record["MathML"].(string), "<mi>α</mi>") {
		t.Errorf("unexpected MathML %v", record["MathML"])
	}
}

func TestExtractRecordKeyOrder(t *testing.T) {
	srv := newTestServer(testConfig())
	data := pdftest.Build("Widget 4 $19.99", "Total: $19.99")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "acme_invoice.pdf", data, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	out := rec.Body.String()
	total, items := strings.Index(out, `"Total"`), strings.Index(out, `"Line Items"`)
	if total < 0 || items < total {
		t.Errorf("expected Total before Line Items in %s", out)
	}
	if !strings.Contains(out, `{"Item":"Widget","Quantity":"4","Price":"19.99"}`) {
		t.Errorf("expected line item in %s", out)
	}
}

func TestExtractAmbiguousNeedsKind(t *testing.T) {
	srv := newTestServer(testConfig())
	data := pdftest.Build("Widget 4 $19.99")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "scan.pdf", data, nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if _, ok := decode(t, rec)["choices"]; !ok {
		t.Error("expected choices in response")
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "scan.pdf", data, map[string]string{"kind": "invoice"}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with kind, got %d: %s", rec.Code, rec.Body.String())
	}
	if decode(t, rec)["kind"] != "invoice" {
		t.Error("expected invoice kind")
	}
}

func TestExtractInvalidKind(t *testing.T) {
	srv := newTestServer(testConfig())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "scan.pdf", []byte("x"), map[string]string{"kind": "unknown"}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	srv := newTestServer(testConfig())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "bad_invoice.pdf", []byte("not a pdf"), nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg, _ := decode(t, rec)["error"].(string); !strings.Contains(msg, "bad_invoice.pdf") {
		t.Errorf("expected file name in error, got %q", msg)
	}
}

func TestExtractTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxUploadBytes = 10
	srv := newTestServer(cfg)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract", "notes.tex", []byte(strings.Repeat("x", 64)), nil))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestExtractFormats(t *testing.T) {
	srv := newTestServer(testConfig())
	data := pdftest.Build("Widget 4 $19.99 Total: $19.99")

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"markdown", "text/markdown", "| Total | 19.99 |"},
		{"html", "text/html", "<td>Widget</td>"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, uploadRequest(t, "/api/extract?format="+tt.format, "invoice.pdf", data, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", tt.format, rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("%s: expected content type %s, got %s", tt.format, tt.contentType, ct)
		}
		if !strings.Contains(rec.Body.String(), tt.contains) {
			t.Errorf("%s: expected %q in:\n%s", tt.format, tt.contains, rec.Body.String())
		}
	}
}

func TestExtractXLSX(t *testing.T) {
	srv := newTestServer(testConfig())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract?format=xlsx", "notes.tex", []byte(`x`), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="notes.xlsx"`) {
		t.Errorf("unexpected content disposition %q", cd)
	}
	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Fields")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "MathML" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestExtractUnknownFormat(t *testing.T) {
	srv := newTestServer(testConfig())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "/api/extract?format=pdf", "notes.tex", []byte(`x`), nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestExtractStats(t *testing.T) {
	srv := newTestServer(testConfig())
	srv.ServeHTTP(httptest.NewRecorder(), uploadRequest(t, "/api/extract", "a.tex", []byte(`x`), nil))
	srv.ServeHTTP(httptest.NewRecorder(), uploadRequest(t, "/api/extract", "b.tex", []byte(`\bad`), nil))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/extract", nil))
	body := decode(t, rec)
	stats, ok := body["stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected stats object, got %v", body)
	}
	if stats["count"] != float64(2) || stats["fallbacks"] != float64(1) {
		t.Errorf("unexpected stats %v", stats)
	}
	if body["window"] != "1h0m0s" {
		t.Errorf("expected window 1h0m0s, got %v", body["window"])
	}
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret"
	srv := newTestServer(cfg)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected public health check, got %d", rec.Code)
	}

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer wrong", http.StatusUnauthorized},
		{"Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/classify?filename=a.tex", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("Authorization %q: expected %d, got %d", tt.header, tt.want, rec.Code)
		}
	}
}

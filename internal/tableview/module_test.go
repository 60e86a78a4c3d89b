package tableview

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/shandysiswandi/tableview/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/tableview/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/tableview/internal/pkg/pkguid"
)

const testConfig = `
modules:
  tableview:
    cache_ttl: 1h
    max_upload_bytes: 1024
    max_errors: 5
    default_page_size: 20
events:
  workers: 1
  buffer: 8
`

func TestNewWiresUploadToMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	metrics := pkgmetrics.New()
	router := pkgrouter.NewRouter(pkguid.NewUUID())

	closer, err := New(Dependency{Config: cfg, Router: router, Metrics: metrics})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "data.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("a,b\n1,2\n3\n")); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := closer(ctx); err != nil {
		t.Fatalf("close module: %v", err)
	}

	if got := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues(pkgmetrics.ResultAccepted)); got != 1 {
		t.Fatalf("expected 1 accepted upload, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.RowsParsed.WithLabelValues(pkgmetrics.RowInvalid)); got != 1 {
		t.Fatalf("expected 1 invalid row, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.CacheEntries); got != 1 {
		t.Fatalf("expected 1 cache entry, got %v", got)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Dependency{}); err == nil {
		t.Fatal("expected error for missing dependencies")
	}
}

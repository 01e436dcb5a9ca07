package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	"github.com/apistry/contract-gateway/internal/http/middleware"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

func newVersionEngine(t *testing.T, manifest string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	manifestPath := filepath.Join(root, "versions.yaml")
	if manifest != "" {
		if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}

	store := contracts.NewStore(contracts.StoreConfig{ManifestPath: manifestPath})
	h := NewVersionHandler(logger.NewNop(), store)

	engine := gin.New()
	engine.Use(middleware.AttachRequestID())
	engine.GET("/versions", h.GetVersions)
	return engine
}

func TestVersionsServedAsJSON(t *testing.T) {
	t.Parallel()
	engine := newVersionEngine(t, "contracts:\n  backend-frontend-api: 1.4.0\n")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/versions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := doc["contracts"]; !ok {
		t.Fatalf("manifest tree missing contracts key: %s", rec.Body.String())
	}
}

func TestVersionsIdempotent(t *testing.T) {
	t.Parallel()
	engine := newVersionEngine(t, "contracts:\n  backend-frontend-api: 1.4.0\n  notifications-events: 0.9.2\n")

	first := httptest.NewRecorder()
	engine.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/versions", nil))
	second := httptest.NewRecorder()
	engine.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/versions", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("unexpected statuses: %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("back-to-back bodies differ:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestVersionsMissingManifestIs500(t *testing.T) {
	t.Parallel()
	engine := newVersionEngine(t, "")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/versions", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	if code := decodeErrorCode(t, rec.Body.String()); code != "VersionManifestError" {
		t.Fatalf("unexpected error code: %q", code)
	}
}

func TestVersionsCorruptManifestIs500(t *testing.T) {
	t.Parallel()
	engine := newVersionEngine(t, "contracts: [unclosed\n  nope: {")

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/versions", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	if code := decodeErrorCode(t, rec.Body.String()); code != "VersionManifestError" {
		t.Fatalf("unexpected error code: %q", code)
	}
}

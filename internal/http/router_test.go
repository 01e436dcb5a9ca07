package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apistry/contract-gateway/internal/contracts"
	"github.com/apistry/contract-gateway/internal/http/handlers"
	"github.com/apistry/contract-gateway/internal/http/middleware"
	"github.com/apistry/contract-gateway/internal/observability"
	"github.com/apistry/contract-gateway/internal/platform/logger"
)

type routerOptions struct {
	globalMax    int
	aggregateMax int
}

func newTestRouter(t *testing.T, opts routerOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	for _, dir := range []string{"openapi", "asyncapi", "protobuf"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	spec := "openapi: 3.0.3\ninfo:\n  title: Frontend API\n  version: \"1.4.0\"\npaths: {}\n"
	if err := os.WriteFile(filepath.Join(root, "openapi", "backend-frontend-api-v1.yaml"), []byte(spec), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "versions.yaml"), []byte("contracts:\n  backend-frontend-api: 1.4.0\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	store := contracts.NewStore(contracts.StoreConfig{
		OpenAPIRoot:  filepath.Join(root, "openapi"),
		AsyncAPIRoot: filepath.Join(root, "asyncapi"),
		ProtobufRoot: filepath.Join(root, "protobuf"),
		ManifestPath: filepath.Join(root, "versions.yaml"),
	})
	log := logger.NewNop()
	metrics := observability.NewMetrics()

	cfg := RouterConfig{
		Log:     log,
		Metrics: metrics,

		ContractHandler:  handlers.NewContractHandler(log, store, metrics, "backend-frontend-api-v1.yaml", "backend-internal-api-v1.yaml"),
		SpecIndexHandler: handlers.NewSpecIndexHandler(log, store),
		VersionHandler:   handlers.NewVersionHandler(log, store),
		HealthHandler:    handlers.NewHealthHandler("contract-gateway", "test"),
	}
	if opts.globalMax > 0 {
		cfg.GlobalLimiter = middleware.NewRateLimiter(opts.globalMax, 15*time.Minute)
	}
	if opts.aggregateMax > 0 {
		cfg.AggregateLimiter = middleware.NewRateLimiter(opts.aggregateMax, time.Minute)
	}
	return NewRouter(cfg)
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUnmatchedRouteIs404NotFound(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, routerOptions{})

	rec := serve(r, http.MethodGet, "/no/such/route")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "RouteNotFound" {
		t.Fatalf("unexpected error code: %q", envelope.Error.Code)
	}
	if envelope.RequestID == "" {
		t.Fatalf("404 body missing request id")
	}
}

func TestEveryResponseCarriesUniformHeaders(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, routerOptions{})

	for _, path := range []string{"/health", "/versions", "/specs", "/no/such/route"} {
		rec := serve(r, http.MethodGet, path)
		if rec.Header().Get(middleware.HeaderRequestID) == "" {
			t.Fatalf("%s: missing request id header", path)
		}
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Fatalf("%s: missing nosniff header", path)
		}
		if rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Fatalf("%s: missing frame options header", path)
		}
	}
}

func TestMetricsExpositionIncludesGatewayInstruments(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, routerOptions{})

	if rec := serve(r, http.MethodGet, "/openapi/backend-frontend-api-v1.yaml"); rec.Code != http.StatusOK {
		t.Fatalf("priming download failed: %d", rec.Code)
	}

	rec := serve(r, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, metric := range []string{"contract_downloads_total", "http_requests_total", "http_request_duration_seconds", "go_goroutines"} {
		if !strings.Contains(body, metric) {
			t.Fatalf("exposition missing %s", metric)
		}
	}
	if !strings.Contains(body, `category="openapi"`) {
		t.Fatalf("download counter missing category label:\n%s", body)
	}
}

func TestAggregateQuotaIsStricterThanGlobal(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, routerOptions{globalMax: 100, aggregateMax: 2})

	for i := 0; i < 2; i++ {
		if rec := serve(r, http.MethodGet, "/frontend/openapi.json"); rec.Code != http.StatusOK {
			t.Fatalf("aggregate request %d failed: %d", i+1, rec.Code)
		}
	}
	rec := serve(r, http.MethodGet, "/frontend/openapi.json")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("aggregate quota not enforced: %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("429 missing Retry-After header")
	}

	// The general surface is still within its own quota.
	if rec := serve(r, http.MethodGet, "/openapi/backend-frontend-api-v1.yaml"); rec.Code != http.StatusOK {
		t.Fatalf("named route wrongly limited: %d", rec.Code)
	}
}

func TestVersionsServedThroughFullChain(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t, routerOptions{})

	rec := serve(r, http.MethodGet, "/versions")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := doc["contracts"]; !ok {
		t.Fatalf("manifest missing contracts key: %s", rec.Body.String())
	}
}

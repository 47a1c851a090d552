package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"capsule-os/app/controller"
)

func testHandler() http.Handler {
	controllers := &Controllers{
		Capsule:  controller.NewCapsuleController(nil, 0),
		Analysis: controller.NewAnalysisController(nil),
		Closet:   controller.NewClosetController(nil),
		Product:  controller.NewProductController(nil),
		Lookbook: controller.NewLookbookController(nil, nil, 0),
	}
	return SetupRoutes(controllers, Options{
		CORSOrigins:       []string{"*"},
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	})
}

func TestHealthRoutes(t *testing.T) {
	handler := testHandler()

	for _, path := range []string{"/", "/api/health"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200 for %s, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("Expected status ok body for %s, got %s", path, rec.Body.String())
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	handler := testHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	handler := testHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("Expected echoed request id abc-123, got %s", got)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	handler := testHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/generate-capsule", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	handler := testHandler()

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/closet", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}

	if last != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after exceeding the limit, got %d", last)
	}
}

package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/config"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/metrics"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/routing"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---------------------------------------------------------------------------
// Minimal stubs: satisfy interfaces without a real database or OSRM.
// ---------------------------------------------------------------------------

type stubRepo struct {
	hospitals []directory.Hospital
	err       error
}

func (s *stubRepo) FetchActive(_ context.Context) ([]directory.Hospital, error) {
	return s.hospitals, s.err
}

func (s *stubRepo) GetHospital(_ context.Context, id int64) (*directory.Hospital, error) {
	for i := range s.hospitals {
		if s.hospitals[i].ID == id {
			return &s.hospitals[i], nil
		}
	}
	return nil, s.err
}

type stubRouter struct{}

func (s *stubRouter) Route(_ context.Context, _ routing.RoutingRequest) (*routing.RoutingResponse, error) {
	return &routing.RoutingResponse{Polyline: "stub"}, nil
}

func buildTestEngine(repo *stubRepo, ping func(context.Context) error) *gin.Engine {
	return NewRouter(Deps{
		Repo:           repo,
		Router:         &stubRouter{},
		RequestTimeout: 10 * time.Second,
		Ping:           ping,
	})
}

func sampleRepo() *stubRepo {
	return &stubRepo{hospitals: []directory.Hospital{
		{ID: 1, Name: "Bệnh viện Chợ Rẫy", Type: "public", District: "quan5", MainSpecialty: "general",
			Location: &geo.Coordinate{Lat: 10.7506, Lng: 106.6550}, Active: true},
	}}
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

// ---------------------------------------------------------------------------
// Smoke tests: verify routes are registered and reachable.
// ---------------------------------------------------------------------------

func TestSmoke_HealthEndpoint(t *testing.T) {
	r := buildTestEngine(sampleRepo(), nil)

	if w := serve(r, http.MethodGet, "/health"); w.Code != http.StatusOK {
		t.Errorf("/health: status = %d, want 200", w.Code)
	}
}

func TestSmoke_HealthReportsStoreFailure(t *testing.T) {
	r := buildTestEngine(sampleRepo(), func(context.Context) error { return errors.New("down") })

	if w := serve(r, http.MethodGet, "/health"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("/health: status = %d, want 503", w.Code)
	}
}

func TestSmoke_RoutesRegistered(t *testing.T) {
	r := buildTestEngine(sampleRepo(), nil)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/hospitals"},
		{http.MethodGet, "/api/v1/hospitals/search"},
		{http.MethodPost, "/api/v1/hospitals/search"},
		{http.MethodGet, "/api/v1/hospitals/nearby"},
		{http.MethodPost, "/api/v1/hospitals/nearest"},
		{http.MethodPost, "/api/v1/hospitals/recommend"},
		{http.MethodGet, "/api/v1/hospitals/stats"},
		{http.MethodGet, "/api/v1/hospitals/districts"},
		{http.MethodGet, "/api/v1/hospitals/specialties"},
		{http.MethodGet, "/api/v1/hospitals/1"},
		{http.MethodGet, "/api/v1/hospitals/1/directions"},
	}

	// Handlers always answer JSON; gin's own 404 for an unmatched route is
	// plain text.
	for _, tc := range cases {
		w := serve(r, tc.method, tc.path)
		if !strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
			t.Errorf("%s %s: status %d without JSON body; route may not be registered", tc.method, tc.path, w.Code)
		}
	}
}

func TestSmoke_RequestIDHeader(t *testing.T) {
	r := buildTestEngine(sampleRepo(), nil)

	if w := serve(r, http.MethodGet, "/health"); w.Header().Get("X-Request-ID") == "" {
		t.Error("response carries no X-Request-ID header")
	}
}

func TestSmoke_MetricsEndpoint(t *testing.T) {
	r := buildTestEngine(sampleRepo(), nil)
	serve(r, http.MethodGet, "/api/v1/hospitals/stats")

	w := serve(r, http.MethodGet, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics: status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "hospital_locator_http_requests_total") {
		t.Error("/metrics does not expose the request counter")
	}
}

func TestDatasetFailuresCounted(t *testing.T) {
	r := buildTestEngine(&stubRepo{err: errors.New("db down")}, nil)
	before := testutil.ToFloat64(metrics.DatasetFetchFailuresTotal)

	if w := serve(r, http.MethodGet, "/api/v1/hospitals/stats"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if got := testutil.ToFloat64(metrics.DatasetFetchFailuresTotal) - before; got != 1 {
		t.Errorf("fetch failures grew by %v, want 1", got)
	}
}

func TestNewRanker(t *testing.T) {
	if _, ok := NewRanker(config.SpatialIndexRTree).(*query.RTreeRanker); !ok {
		t.Error("rtree index should select RTreeRanker")
	}
	if _, ok := NewRanker(config.SpatialIndexLinear).(query.LinearRanker); !ok {
		t.Error("linear index should select LinearRanker")
	}
}

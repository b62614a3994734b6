package service

import (
	"context"
	"errors"
	"testing"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/routing"
)

var userLocation = geo.Coordinate{Lat: 10.7949, Lng: 106.6525}

// --- mock HospitalsRepository ---

type mockHospitalsRepo struct {
	hospital *directory.Hospital
	err      error
}

func (m *mockHospitalsRepo) FetchActive(_ context.Context) ([]directory.Hospital, error) {
	return nil, nil
}

func (m *mockHospitalsRepo) GetHospital(_ context.Context, _ int64) (*directory.Hospital, error) {
	return m.hospital, m.err
}

// --- mock Router ---

type mockRouter struct {
	resp  *routing.RoutingResponse
	err   error
	calls int
	last  routing.RoutingRequest
}

func (m *mockRouter) Route(_ context.Context, req routing.RoutingRequest) (*routing.RoutingResponse, error) {
	m.calls++
	m.last = req
	return m.resp, m.err
}

func choRay() *directory.Hospital {
	return &directory.Hospital{
		ID:       1,
		Name:     "Bệnh viện Chợ Rẫy",
		Location: &geo.Coordinate{Lat: 10.7506, Lng: 106.6550},
		Active:   true,
	}
}

// --- tests ---

func TestDirectionsService_HospitalNotFound(t *testing.T) {
	svc := NewDirectionsService(
		&mockRouter{resp: &routing.RoutingResponse{}},
		&mockHospitalsRepo{},
	)
	_, err := svc.GetDirections(context.Background(), userLocation, 99, routing.ModeDriving)
	if !errors.Is(err, ErrHospitalNotFound) {
		t.Fatalf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestDirectionsService_NoLocation(t *testing.T) {
	h := choRay()
	h.Location = nil
	inner := &mockRouter{}
	svc := NewDirectionsService(inner, &mockHospitalsRepo{hospital: h})

	_, err := svc.GetDirections(context.Background(), userLocation, 1, routing.ModeDriving)
	if !errors.Is(err, ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("router called %d times, want 0", inner.calls)
	}
}

func TestDirectionsService_FetchError(t *testing.T) {
	svc := NewDirectionsService(
		&mockRouter{resp: &routing.RoutingResponse{}},
		&mockHospitalsRepo{err: errors.New("db error")},
	)
	_, err := svc.GetDirections(context.Background(), userLocation, 1, routing.ModeDriving)
	if err == nil {
		t.Fatal("expected error on store failure, got nil")
	}
	if errors.Is(err, ErrHospitalNotFound) {
		t.Error("store failure must not be reported as not found")
	}
	if !errors.Is(err, query.ErrUpstreamUnavailable) {
		t.Errorf("expected error matching query.ErrUpstreamUnavailable, got %v", err)
	}
}

func TestDirectionsService_Success(t *testing.T) {
	routerResp := &routing.RoutingResponse{Polyline: "encodedABC", DistanceM: 5400, DurationS: 900}
	inner := &mockRouter{resp: routerResp}
	svc := NewDirectionsService(inner, &mockHospitalsRepo{hospital: choRay()})

	got, err := svc.GetDirections(context.Background(), userLocation, 1, routing.ModeBicycling)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Polyline != "encodedABC" {
		t.Errorf("polyline = %q, want %q", got.Polyline, "encodedABC")
	}
	if inner.calls != 1 {
		t.Errorf("inner router called %d times, want 1", inner.calls)
	}
	if inner.last.Origin != userLocation {
		t.Errorf("origin = %v, want %v", inner.last.Origin, userLocation)
	}
	if inner.last.Destination != *choRay().Location {
		t.Errorf("destination = %v, want %v", inner.last.Destination, *choRay().Location)
	}
	if inner.last.Mode != routing.ModeBicycling {
		t.Errorf("mode = %q, want %q", inner.last.Mode, routing.ModeBicycling)
	}
}

func TestDirectionsService_RouterError(t *testing.T) {
	inner := &mockRouter{err: errors.New("osrm unreachable")}
	svc := NewDirectionsService(inner, &mockHospitalsRepo{hospital: choRay()})

	_, err := svc.GetDirections(context.Background(), userLocation, 1, routing.ModeDriving)
	if err == nil {
		t.Fatal("expected error when router fails, got nil")
	}
}

func TestDirectionsService_HospitalIDInContext(t *testing.T) {
	var capturedCtx context.Context
	spy := &spyRouter{fn: func(ctx context.Context, req routing.RoutingRequest) (*routing.RoutingResponse, error) {
		capturedCtx = ctx
		return &routing.RoutingResponse{Polyline: "poly", DistanceM: 500, DurationS: 100}, nil
	}}

	h := choRay()
	h.ID = 7
	svc := NewDirectionsService(spy, &mockHospitalsRepo{hospital: h})
	if _, err := svc.GetDirections(context.Background(), userLocation, 7, routing.ModeDriving); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, ok := routing.HospitalIDFromContext(capturedCtx)
	if !ok {
		t.Fatal("hospital ID not found in context passed to router")
	}
	if id != 7 {
		t.Errorf("context hospital ID = %d, want 7", id)
	}
}

// spyRouter calls a user-supplied function.
type spyRouter struct {
	fn func(context.Context, routing.RoutingRequest) (*routing.RoutingResponse, error)
}

func (s *spyRouter) Route(ctx context.Context, req routing.RoutingRequest) (*routing.RoutingResponse, error) {
	return s.fn(ctx, req)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/routing"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/storage"
)

// ErrHospitalNotFound is returned by GetDirections when the repository has no
// active hospital with the requested ID. Callers should use errors.Is to
// distinguish this from other errors.
var ErrHospitalNotFound = errors.New("hospital not found")

// ErrNoLocation is returned by GetDirections when the hospital has no
// coordinates to route to.
var ErrNoLocation = errors.New("hospital has no location")

// DirectionsService orchestrates route lookups from a user's location to a
// hospital. It uses a CachedRouter to minimise calls to the routing server.
type DirectionsService struct {
	router routing.Router
	repo   storage.HospitalsRepository
}

// NewDirectionsService creates a DirectionsService.
//
//   - router should be a *routing.CachedRouter wrapping a *routing.OSRMRouter
//     for production use, or any Router implementation for testing.
//   - repo is used to look up the hospital's coordinates by ID.
func NewDirectionsService(router routing.Router, repo storage.HospitalsRepository) *DirectionsService {
	return &DirectionsService{
		router: router,
		repo:   repo,
	}
}

// GetDirections calculates the route from origin to the hospital identified
// by hospitalID.
//
// Errors:
//   - Returns ErrHospitalNotFound (wrapped) if the hospital does not exist.
//   - Returns ErrNoLocation (wrapped) if the hospital has no coordinates.
//   - Returns an error matching query.ErrUpstreamUnavailable if the
//     repository fails.
//   - Returns a descriptive error if the underlying Router fails.
func (s *DirectionsService) GetDirections(ctx context.Context, origin geo.Coordinate, hospitalID int64, mode routing.Mode) (*routing.RoutingResponse, error) {
	h, err := s.repo.GetHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("service: GetDirections: %w",
			&query.UpstreamError{Op: fmt.Sprintf("get hospital %d", hospitalID), Err: err})
	}
	if h == nil {
		return nil, fmt.Errorf("service: GetDirections: hospital %d: %w", hospitalID, ErrHospitalNotFound)
	}
	if !h.HasLocation() {
		return nil, fmt.Errorf("service: GetDirections: hospital %d: %w", hospitalID, ErrNoLocation)
	}

	// CachedRouter keys on (origin cell, hospital, mode).
	ctx = routing.WithHospitalID(ctx, hospitalID)

	resp, err := s.router.Route(ctx, routing.RoutingRequest{
		Origin:      origin,
		Destination: *h.Location,
		Mode:        mode,
	})
	if err != nil {
		return nil, fmt.Errorf("service: GetDirections: route to hospital %d: %w", hospitalID, err)
	}

	return resp, nil
}

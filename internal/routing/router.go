// Package routing computes directions from a user location to a hospital.
package routing

import (
	"context"
	"fmt"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

// Mode is a travel mode.
type Mode string

const (
	ModeDriving   Mode = "driving"
	ModeWalking   Mode = "walking"
	ModeBicycling Mode = "bicycling"
)

// ParseMode validates a travel mode; the empty string means driving.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeDriving, nil
	case ModeDriving, ModeWalking, ModeBicycling:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("routing: unknown mode %q", s)
	}
}

// RoutingRequest holds the endpoints and travel mode of a route calculation.
type RoutingRequest struct {
	Origin      geo.Coordinate
	Destination geo.Coordinate
	Mode        Mode
}

// RoutingResponse holds the result of a route calculation.
type RoutingResponse struct {
	// Polyline is the route geometry in Encoded Polyline Algorithm Format
	// (precision 1e-5). Empty on fallback.
	Polyline  string `json:"polyline"`
	DistanceM int    `json:"distance_m"`
	DurationS int    `json:"duration_s"`

	// IsFallback is true when the response is a straight-line estimate
	// instead of a routed path.
	IsFallback bool `json:"is_fallback"`
}

// Router calculates a route between two geographic points.
type Router interface {
	Route(ctx context.Context, req RoutingRequest) (*RoutingResponse, error)
}

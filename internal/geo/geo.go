// Package geo holds the coordinate type and the great-circle distance metric
// shared by every proximity query.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

const deg2rad = math.Pi / 180.0

// Coordinate is a WGS-84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Lng float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// RangeError reports a coordinate component outside its legal range.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("geo: %s %v out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// Validate reports whether c lies inside the latitude/longitude ranges.
// NaN values are rejected as out of range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return &RangeError{Field: "latitude", Value: c.Lat, Min: -90, Max: 90}
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return &RangeError{Field: "longitude", Value: c.Lng, Min: -180, Max: 180}
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lng)
}

// Distance returns the haversine great-circle distance between a and b in
// kilometres. It is symmetric, never negative, and exactly zero for identical
// points. Inputs are assumed to be validated.
func Distance(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	dLat := (b.Lat - a.Lat) * deg2rad
	dLng := (b.Lng - a.Lng) * deg2rad
	lat1 := a.Lat * deg2rad
	lat2 := b.Lat * deg2rad

	sinDLat := math.Sin(dLat / 2)
	sinDLng := math.Sin(dLng / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLng*sinDLng
	// Rounding can push h marginally above 1 for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// DistanceMeters is Distance expressed in metres.
func DistanceMeters(a, b Coordinate) float64 {
	return Distance(a, b) * 1000
}

// Box is an axis-aligned latitude/longitude rectangle.
type Box struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// Contains reports whether c lies inside the box, edges included.
func (b Box) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// boxPadDeg widens every edge of a bounding box to absorb floating-point error
// at the radius boundary.
const boxPadDeg = 1e-6

// BoundingBox returns a box enclosing every point within radiusKm of center.
// ok is false when the circle reaches a pole or wraps across the antimeridian;
// the caller must then fall back to a full scan.
func BoundingBox(center Coordinate, radiusKm float64) (box Box, ok bool) {
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return Box{}, false
	}

	angular := radiusKm / EarthRadiusKm
	if angular >= math.Pi/2 {
		return Box{}, false
	}

	dLat := angular/deg2rad + boxPadDeg
	minLat := center.Lat - dLat
	maxLat := center.Lat + dLat
	if minLat <= -90 || maxLat >= 90 {
		return Box{}, false
	}

	// Longitudinal half-width of a spherical cap: asin(sin δ / cos φ).
	cosLat := math.Cos(center.Lat * deg2rad)
	ratio := math.Sin(angular) / cosLat
	if ratio >= 1 {
		return Box{}, false
	}
	dLng := math.Asin(ratio)/deg2rad + boxPadDeg
	minLng := center.Lng - dLng
	maxLng := center.Lng + dLng
	if minLng < -180 || maxLng > 180 {
		return Box{}, false
	}

	return Box{MinLat: minLat, MinLng: minLng, MaxLat: maxLat, MaxLng: maxLng}, true
}

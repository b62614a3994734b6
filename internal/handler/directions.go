package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/routing"
)

// GetDirections handles GET /api/v1/hospitals/:id/directions
//
// Query params:
//   - lat  (required) float64: user's WGS-84 latitude
//   - lng  (required) float64: user's WGS-84 longitude
//   - mode (optional) driving | walking | bicycling; default driving
//
// Response 200:
//
//	{"polyline":"...","distance_m":5210,"duration_s":613,"mode":"driving","is_fallback":false}
//
// "polyline" uses the Encoded Polyline Algorithm Format at 1e-5 precision.
// When is_fallback is true the routing server was unavailable: polyline is
// empty and distance_m / duration_s are straight-line estimates.
//
// Response 400: invalid id, coordinates or mode.
// Response 404: hospital does not exist.
// Response 422: hospital has no coordinates.
// Response 503: hospital store unavailable.
func (h *Handler) GetDirections(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ve := &query.ValidationError{}
	lat := queryFloat(c, ve, "lat")
	lng := queryFloat(c, ve, "lng")
	if lat == nil && !ve.Has("lat") {
		ve.Add("lat", "is required")
	}
	if lng == nil && !ve.Has("lng") {
		ve.Add("lng", "is required")
	}
	mode, err := routing.ParseMode(c.Query("mode"))
	if err != nil {
		ve.Add("mode", "must be one of driving, walking, bicycling")
	}
	if err := ve.Err(); err != nil {
		writeError(c, err)
		return
	}

	origin := geo.Coordinate{Lat: *lat, Lng: *lng}
	if err := origin.Validate(); err != nil {
		ve.Add(coordinateField(err), "is out of range")
		writeError(c, ve)
		return
	}

	resp, err := h.directions.GetDirections(c.Request.Context(), origin, id, mode)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"polyline":    resp.Polyline,
		"distance_m":  resp.DistanceM,
		"duration_s":  resp.DurationS,
		"mode":        mode,
		"is_fallback": resp.IsFallback,
	})
}

// coordinateField names the query parameter a geo.RangeError refers to.
func coordinateField(err error) string {
	var re *geo.RangeError
	if errors.As(err, &re) && re.Field == "longitude" {
		return "lng"
	}
	return "lat"
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/metrics"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
)

// NearbyHospitals handles GET /api/v1/hospitals/nearby
//
// Query params:
//   - lat    (required) float64: WGS-84 latitude
//   - lng    (required) float64: WGS-84 longitude
//   - radius (optional) float64: km; default 5.0
//
// Response 200: up to 20 hospitals, closest first. No distance is included.
// Response 400: missing or invalid query parameters.
// Response 503: hospital store unavailable.
func (h *Handler) NearbyHospitals(c *gin.Context) {
	ve := &query.ValidationError{}
	spec := query.NearbySpec{
		Lat:    queryFloat(c, ve, "lat"),
		Lng:    queryFloat(c, ve, "lng"),
		Radius: queryFloat(c, ve, "radius"),
	}
	if err := ve.Err(); err != nil {
		writeError(c, err)
		return
	}

	ranked, err := h.engine.Nearby(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.ObserveResults("nearby", len(ranked))
	c.JSON(http.StatusOK, toHospitalsJSON(query.Hospitals(ranked)))
}

// NearestHospitals handles POST /api/v1/hospitals/nearest
//
// Body:
//
//	{"latitude":10.79,"longitude":106.65,"limit":5,"max_distance":10}
//
// limit defaults to 5 (1..20) and max_distance to 10 km.
//
// Response 200: hospitals closest first, each with
// "distance":{"km":1.75,"m":1748}.
// Response 400: invalid body.
// Response 503: hospital store unavailable.
func (h *Handler) NearestHospitals(c *gin.Context) {
	var spec query.NearestSpec
	if err := bindBody(c, &spec); err != nil {
		writeError(c, err)
		return
	}

	matches, err := h.engine.Nearest(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]nearestJSON, len(matches))
	for i, m := range matches {
		out[i] = nearestJSON{
			hospitalJSON: toHospitalJSON(m.Hospital),
			Distance:     distanceJSON{Km: m.Km, M: m.Meters},
		}
	}

	metrics.ObserveResults("nearest", len(out))
	c.JSON(http.StatusOK, out)
}

// RecommendHospitals handles POST /api/v1/hospitals/recommend
//
// Body:
//
//	{"latitude":10.79,"longitude":106.65,"specialty":"cardiology",
//	 "hospital_type":"public","emergency":true,"prefer_public":false,
//	 "max_distance":50,"limit":10}
//
// Only latitude and longitude are required. Results are ordered by score,
// highest first; each carries distance_km, score and reason codes.
//
// Response 400: invalid body.
// Response 503: hospital store unavailable.
func (h *Handler) RecommendHospitals(c *gin.Context) {
	var spec query.RecommendSpec
	if err := bindBody(c, &spec); err != nil {
		writeError(c, err)
		return
	}

	recs, err := h.engine.Recommend(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]recommendationJSON, len(recs))
	for i, r := range recs {
		out[i] = recommendationJSON{
			hospitalJSON: toHospitalJSON(r.Hospital),
			DistanceKm:   round2(r.DistanceKm),
			Score:        round2(r.Score),
			Reasons:      r.Reasons,
		}
	}

	metrics.ObserveResults("recommend", len(out))
	c.JSON(http.StatusOK, out)
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/metrics"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
)

// ListHospitals handles GET /api/v1/hospitals
//
// Query params:
//   - query, hospital_type, district, specialty, emergency_only (optional filters);
//     query also matches the phone number here
//   - ordering  (optional) name | created_at | capacity, "-" prefix for
//     descending; default name
//   - page      (optional) int: 1-based page number; default 1
//   - page_size (optional) int: 1..100; default 20
//
// Response 200:
//
//	{"count":42,"page":1,"page_size":20,"total_pages":3,"results":[...]}
//
// Response 400: invalid filters or pagination.
// Response 503: hospital store unavailable.
func (h *Handler) ListHospitals(c *gin.Context) {
	ve := &query.ValidationError{}
	spec := query.ListSpec{
		Criteria: queryCriteria(c, ve),
		Ordering: c.Query("ordering"),
		Page:     queryInt(c, ve, "page"),
		PageSize: queryInt(c, ve, "page_size"),
	}
	if err := ve.Err(); err != nil {
		writeError(c, err)
		return
	}

	page, err := h.engine.List(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.ObserveResults("list", len(page.Results))
	c.JSON(http.StatusOK, pageJSON{Page: page, Results: toHospitalsJSON(page.Results)})
}

// GetHospital handles GET /api/v1/hospitals/:id
//
// Response 200: one hospital.
// Response 400: id is not a positive integer.
// Response 404: no active hospital with this id.
// Response 503: hospital store unavailable.
func (h *Handler) GetHospital(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	hospital, err := h.repo.GetHospital(c.Request.Context(), id)
	if err != nil {
		writeError(c, &query.UpstreamError{Op: "get hospital", Err: err})
		return
	}
	if hospital == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
		return
	}

	c.JSON(http.StatusOK, toHospitalJSON(*hospital))
}

// SearchHospitals handles GET and POST /api/v1/hospitals/search
//
// GET takes its parameters from the query string, POST from a JSON body with
// the same field names:
//   - query, hospital_type, district, specialty, emergency_only (optional filters)
//   - latitude, longitude (optional, both or neither)
//   - radius (optional) float64: km; default 5.0, used only with a location
//
// With a location the matches inside the radius are returned closest first;
// without one every match is returned in directory order.
//
// Response 200: array of hospitals (possibly empty).
// Response 400: invalid parameters.
// Response 503: hospital store unavailable.
func (h *Handler) SearchHospitals(c *gin.Context) {
	var spec query.SearchSpec
	if c.Request.Method == http.MethodPost {
		if err := bindBody(c, &spec); err != nil {
			writeError(c, err)
			return
		}
	} else {
		ve := &query.ValidationError{}
		spec = query.SearchSpec{
			Criteria:  queryCriteria(c, ve),
			Latitude:  queryFloat(c, ve, "latitude"),
			Longitude: queryFloat(c, ve, "longitude"),
			Radius:    queryFloat(c, ve, "radius"),
		}
		if err := ve.Err(); err != nil {
			writeError(c, err)
			return
		}
	}

	results, err := h.engine.Search(c.Request.Context(), spec)
	if err != nil {
		writeError(c, err)
		return
	}

	metrics.ObserveResults("search", len(results))
	c.JSON(http.StatusOK, toHospitalsJSON(results))
}

// parseID extracts the :id path parameter. On failure it writes a 400
// response and returns (0, false).
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

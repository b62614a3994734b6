package handler

import (
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
)

// queryFloat extracts an optional float64 query parameter. A malformed value
// is recorded on ve and reported as absent.
func queryFloat(c *gin.Context, ve *query.ValidationError, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		ve.Add(name, "must be a number")
		return nil
	}
	return &v
}

// queryInt extracts an optional integer query parameter.
func queryInt(c *gin.Context, ve *query.ValidationError, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		ve.Add(name, "must be an integer")
		return nil
	}
	return &v
}

// queryBool extracts an optional boolean query parameter; absent means false.
func queryBool(c *gin.Context, ve *query.ValidationError, name string) bool {
	raw := c.Query(name)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		ve.Add(name, "must be a boolean")
		return false
	}
	return v
}

// queryCriteria reads the attribute filters shared by search and list.
func queryCriteria(c *gin.Context, ve *query.ValidationError) query.Criteria {
	return query.Criteria{
		Text:          c.Query("query"),
		Type:          c.Query("hospital_type"),
		District:      c.Query("district"),
		Specialty:     c.Query("specialty"),
		EmergencyOnly: queryBool(c, ve, "emergency_only"),
	}
}

// bindBody decodes a JSON request body into dst. An empty body leaves dst
// untouched. Decoding failures become a ValidationError on "body".
func bindBody(c *gin.Context, dst any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		ve := &query.ValidationError{}
		ve.Add("body", "must be a valid JSON object with correctly typed fields")
		return ve
	}
	return nil
}

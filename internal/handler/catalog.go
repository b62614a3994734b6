package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats handles GET /api/v1/hospitals/stats
//
// Response 200:
//
//	{"total_hospitals":10,"by_type":{"public":7,...},"by_district":{...},
//	 "by_specialty":{...},"emergency_count":8,"average_capacity":1100.5}
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Districts handles GET /api/v1/hospitals/districts
//
// Response 200: every district in declaration order, zero counts included.
//
//	[{"code":"quan1","name":"Quận 1","hospital_count":2}, ...]
func (h *Handler) Districts(c *gin.Context) {
	counts, err := h.engine.Districts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// Specialties handles GET /api/v1/hospitals/specialties
//
// Response 200: every specialty in declaration order. A hospital counts once
// per specialty whether it is the main or a secondary one.
func (h *Handler) Specialties(c *gin.Context) {
	counts, err := h.engine.Specialties(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

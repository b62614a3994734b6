package handler

import "github.com/gin-gonic/gin"

// Register mounts the hospital endpoints on api, which is normally the
// /api/v1 group.
func (h *Handler) Register(api *gin.RouterGroup) {
	hospitals := api.Group("/hospitals")
	{
		hospitals.GET("", h.ListHospitals)
		hospitals.GET("/search", h.SearchHospitals)
		hospitals.POST("/search", h.SearchHospitals)
		hospitals.GET("/nearby", h.NearbyHospitals)
		hospitals.POST("/nearest", h.NearestHospitals)
		hospitals.POST("/recommend", h.RecommendHospitals)

		hospitals.GET("/stats", h.Stats)
		hospitals.GET("/districts", h.Districts)
		hospitals.GET("/specialties", h.Specialties)

		hospitals.GET("/:id", h.GetHospital)
		hospitals.GET("/:id/directions", h.GetDirections)
	}
}

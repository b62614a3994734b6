package handler

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/query"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/service"
)

// hospitalJSON is the wire form of a hospital.
type hospitalJSON struct {
	ID                   int64             `json:"id"`
	Name                 string            `json:"name"`
	NameEN               string            `json:"name_en"`
	HospitalType         string            `json:"hospital_type"`
	HospitalTypeDisplay  string            `json:"hospital_type_display"`
	Address              string            `json:"address"`
	District             string            `json:"district"`
	DistrictDisplay      string            `json:"district_display"`
	Ward                 string            `json:"ward"`
	FullAddress          string            `json:"full_address"`
	Phone                string            `json:"phone"`
	Email                string            `json:"email"`
	Website              string            `json:"website"`
	Facebook             string            `json:"facebook"`
	MainSpecialty        string            `json:"main_specialty"`
	MainSpecialtyDisplay string            `json:"main_specialty_display"`
	Specialties          []string          `json:"specialties"`
	Description          string            `json:"description"`
	Latitude             *float64          `json:"latitude"`
	Longitude            *float64          `json:"longitude"`
	WorkingHours         map[string]string `json:"working_hours"`
	EmergencyServices    bool              `json:"emergency_services"`
	AmbulanceServices    bool              `json:"ambulance_services"`
	Capacity             *int              `json:"capacity"`
	DoctorsCount         *int              `json:"doctors_count"`
	NursesCount          *int              `json:"nurses_count"`
	IsActive             bool              `json:"is_active"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func toHospitalJSON(h directory.Hospital) hospitalJSON {
	out := hospitalJSON{
		ID:                   h.ID,
		Name:                 h.Name,
		NameEN:               h.NameEN,
		HospitalType:         h.Type,
		HospitalTypeDisplay:  directory.TypeLabel(h.Type),
		Address:              h.Address,
		District:             h.District,
		DistrictDisplay:      directory.DistrictLabel(h.District),
		Ward:                 h.Ward,
		FullAddress:          h.FullAddress(),
		Phone:                h.Phone,
		Email:                h.Email,
		Website:              h.Website,
		Facebook:             h.Facebook,
		MainSpecialty:        h.MainSpecialty,
		MainSpecialtyDisplay: directory.SpecialtyLabel(h.MainSpecialty),
		Specialties:          h.Specialties,
		Description:          h.Description,
		WorkingHours:         h.WorkingHours,
		EmergencyServices:    h.Emergency,
		AmbulanceServices:    h.Ambulance,
		Capacity:             h.Capacity,
		DoctorsCount:         h.DoctorsCount,
		NursesCount:          h.NursesCount,
		IsActive:             h.Active,
		CreatedAt:            h.CreatedAt,
		UpdatedAt:            h.UpdatedAt,
	}
	if out.Specialties == nil {
		out.Specialties = []string{}
	}
	if out.WorkingHours == nil {
		out.WorkingHours = map[string]string{}
	}
	if h.Location != nil {
		lat, lng := h.Location.Lat, h.Location.Lng
		out.Latitude, out.Longitude = &lat, &lng
	}
	return out
}

func toHospitalsJSON(hs []directory.Hospital) []hospitalJSON {
	out := make([]hospitalJSON, len(hs))
	for i, h := range hs {
		out[i] = toHospitalJSON(h)
	}
	return out
}

type distanceJSON struct {
	Km float64 `json:"km"`
	M  int     `json:"m"`
}

type nearestJSON struct {
	hospitalJSON
	Distance distanceJSON `json:"distance"`
}

type recommendationJSON struct {
	hospitalJSON
	DistanceKm float64  `json:"distance_km"`
	Score      float64  `json:"score"`
	Reasons    []string `json:"reasons"`
}

type pageJSON struct {
	query.Page
	Results []hospitalJSON `json:"results"`
}

// round2 rounds to two decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// writeError maps a domain error to its HTTP status and body. The error is
// attached to the gin context so the access log records it.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var ve *query.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.FieldMap()})
	case errors.Is(err, query.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "hospital directory temporarily unavailable"})
	case errors.Is(err, service.ErrHospitalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "hospital not found"})
	case errors.Is(err, service.ErrNoLocation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "hospital has no location to route to"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

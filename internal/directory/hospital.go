// Package directory defines the hospital record and the fixed enumerated
// domains (types, districts, specialties) it is classified by.
package directory

import (
	"strings"
	"time"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

// Hospital is a facility record as read from the store. The query engine
// never mutates it.
type Hospital struct {
	ID     int64
	Name   string
	NameEN string
	Type   string

	Address  string
	District string
	Ward     string

	Phone    string
	Email    string
	Website  string
	Facebook string

	MainSpecialty string
	Specialties   []string
	Description   string

	// Location is nil when the record has no coordinates.
	Location *geo.Coordinate

	// WorkingHours maps a day key (e.g. "monday") to opening hours text.
	WorkingHours map[string]string

	Emergency bool
	Ambulance bool

	Capacity     *int
	DoctorsCount *int
	NursesCount  *int

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLocation reports whether the record carries coordinates.
func (h *Hospital) HasLocation() bool { return h.Location != nil }

// OffersSpecialty reports whether code is the main specialty or one of the
// secondary specialties.
func (h *Hospital) OffersSpecialty(code string) bool {
	if h.MainSpecialty == code {
		return true
	}
	return h.HasSecondarySpecialty(code)
}

// HasSecondarySpecialty reports whether code appears in the secondary list.
func (h *Hospital) HasSecondarySpecialty(code string) bool {
	for _, s := range h.Specialties {
		if s == code {
			return true
		}
	}
	return false
}

// FullAddress joins street address, ward, district label and city.
func (h *Hospital) FullAddress() string {
	parts := make([]string, 0, 4)
	if h.Address != "" {
		parts = append(parts, h.Address)
	}
	if h.Ward != "" {
		parts = append(parts, "Phường "+h.Ward)
	}
	if h.District != "" {
		parts = append(parts, DistrictLabel(h.District))
	}
	parts = append(parts, City)
	return strings.Join(parts, ", ")
}

package query

import (
	"math"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
)

// Stats is the aggregate view over the active directory.
type Stats struct {
	TotalHospitals  int            `json:"total_hospitals"`
	ByType          map[string]int `json:"by_type"`
	ByDistrict      map[string]int `json:"by_district"`
	BySpecialty     map[string]int `json:"by_specialty"`
	EmergencyCount  int            `json:"emergency_count"`
	AverageCapacity float64        `json:"average_capacity"`
}

// Aggregate computes Stats in one pass. Every code of each fixed domain is
// present in its breakdown, zero included. BySpecialty counts main
// specialties only. AverageCapacity is the mean over records reporting a
// capacity, rounded to one decimal, and 0 when none do.
func Aggregate(candidates []directory.Hospital) Stats {
	s := Stats{
		TotalHospitals: len(candidates),
		ByType:         zeroCounts(directory.HospitalTypes),
		ByDistrict:     zeroCounts(directory.Districts),
		BySpecialty:    zeroCounts(directory.Specialties),
	}

	var capSum, capN int
	for i := range candidates {
		h := &candidates[i]
		s.ByType[h.Type]++
		s.ByDistrict[h.District]++
		s.BySpecialty[h.MainSpecialty]++
		if h.Emergency {
			s.EmergencyCount++
		}
		if h.Capacity != nil {
			capSum += *h.Capacity
			capN++
		}
	}

	if capN > 0 {
		s.AverageCapacity = round(float64(capSum)/float64(capN), 1)
	}
	return s
}

func zeroCounts(domain []directory.Choice) map[string]int {
	m := make(map[string]int, len(domain))
	for _, c := range domain {
		m[c.Code] = 0
	}
	return m
}

// DomainCount is the number of hospitals attached to one domain code.
type DomainCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"hospital_count"`
}

// CountDistricts counts hospitals per district, in declaration order.
func CountDistricts(candidates []directory.Hospital) []DomainCount {
	counts := make(map[string]int, len(directory.Districts))
	for i := range candidates {
		counts[candidates[i].District]++
	}

	out := make([]DomainCount, len(directory.Districts))
	for i, d := range directory.Districts {
		out[i] = DomainCount{Code: d.Code, Name: d.Label, Count: counts[d.Code]}
	}
	return out
}

// CountSpecialties counts hospitals offering each specialty as main or
// secondary. A record listing its main specialty again in the secondary list
// is counted once.
func CountSpecialties(candidates []directory.Hospital) []DomainCount {
	out := make([]DomainCount, len(directory.Specialties))
	for i, sp := range directory.Specialties {
		n := 0
		for j := range candidates {
			if candidates[j].OffersSpecialty(sp.Code) {
				n++
			}
		}
		out[i] = DomainCount{Code: sp.Code, Name: sp.Label, Count: n}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

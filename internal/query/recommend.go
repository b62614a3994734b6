package query

import (
	"sort"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
)

// Scoring weights for Recommend.
const (
	baseScore            = 100.0
	distancePenaltyPerKm = 2.0
	publicBonus          = 20.0
	emergencyBonus       = 30.0
	noEmergencyPenalty   = 50.0
	mainSpecialtyBonus   = 25.0
	otherSpecialtyBonus  = 15.0
	typeMatchBonus       = 10.0
	largeCapacityBonus   = 5.0
	largeCapacity        = 500
)

// Reason codes attached to a Recommendation.
const (
	ReasonPublic         = "public_hospital"
	ReasonEmergency      = "emergency_available"
	ReasonMainSpecialty  = "main_specialty_match"
	ReasonOtherSpecialty = "offers_specialty"
	ReasonTypeMatch      = "hospital_type_match"
	ReasonLargeCapacity  = "large_capacity"
)

// Recommendation is a scored candidate.
type Recommendation struct {
	Annotated
	Score   float64
	Reasons []string
}

func score(a Annotated, p recommendParams) Recommendation {
	h := &a.Hospital
	r := Recommendation{
		Annotated: a,
		Score:     baseScore - a.DistanceKm*distancePenaltyPerKm,
		Reasons:   []string{},
	}

	if p.PreferPublic && h.Type == directory.TypePublic {
		r.Score += publicBonus
		r.Reasons = append(r.Reasons, ReasonPublic)
	}

	if p.Emergency {
		if h.Emergency {
			r.Score += emergencyBonus
			r.Reasons = append(r.Reasons, ReasonEmergency)
		} else {
			r.Score -= noEmergencyPenalty
		}
	}

	if p.Specialty != "" {
		switch {
		case h.MainSpecialty == p.Specialty:
			r.Score += mainSpecialtyBonus
			r.Reasons = append(r.Reasons, ReasonMainSpecialty)
		case h.HasSecondarySpecialty(p.Specialty):
			r.Score += otherSpecialtyBonus
			r.Reasons = append(r.Reasons, ReasonOtherSpecialty)
		}
	}

	if p.HospitalType != "" && h.Type == p.HospitalType {
		r.Score += typeMatchBonus
		r.Reasons = append(r.Reasons, ReasonTypeMatch)
	}

	if h.Capacity != nil && *h.Capacity > largeCapacity {
		r.Score += largeCapacityBonus
		r.Reasons = append(r.Reasons, ReasonLargeCapacity)
	}

	return r
}

// rankRecommendations scores ranked (already ordered by distance) and sorts by
// descending score. Equal scores keep distance order.
func rankRecommendations(ranked []Annotated, p recommendParams) []Recommendation {
	out := make([]Recommendation, len(ranked))
	for i, a := range ranked {
		out[i] = score(a, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

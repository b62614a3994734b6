package query

import "github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"

// Defaults and bounds applied while normalizing request specs.
const (
	DefaultRadiusKm = 5.0

	NearbyLimit = 20

	DefaultNearestLimit  = 5
	MaxNearestLimit      = 20
	DefaultMaxDistanceKm = 10.0

	DefaultPageSize = 20
	MaxPageSize     = 100

	DefaultRecommendLimit      = 10
	MaxRecommendLimit          = 20
	DefaultRecommendDistanceKm = 50.0
)

// Criteria holds the attribute predicates. Empty strings and a false
// EmergencyOnly are absent predicates.
type Criteria struct {
	Text          string `json:"query"`
	Type          string `json:"hospital_type"`
	District      string `json:"district"`
	Specialty     string `json:"specialty"`
	EmergencyOnly bool   `json:"emergency_only"`
}

// criteriaRules carries the enum checks for Criteria. Request types exported
// by this package have no validate tags, so gin's binder never sees the custom
// tags.
type criteriaRules struct {
	Type      string `json:"hospital_type" validate:"omitempty,hospital_type"`
	District  string `json:"district" validate:"omitempty,district"`
	Specialty string `json:"specialty" validate:"omitempty,specialty"`
}

func (c Criteria) rules() criteriaRules {
	return criteriaRules{Type: c.Type, District: c.District, Specialty: c.Specialty}
}

// SearchSpec is an attribute search with an optional proximity constraint.
type SearchSpec struct {
	Criteria
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"`
}

type searchParams struct {
	Criteria
	Origin   *geo.Coordinate `json:"-"`
	RadiusKm float64         `json:"radius" validate:"gt=0"`
}

func (s SearchSpec) normalize() (searchParams, error) {
	ve := &ValidationError{}
	p := searchParams{
		Criteria: s.Criteria,
		Origin:   origin(ve, s.Latitude, s.Longitude, "latitude", "longitude", false),
		RadiusKm: floatOr(s.Radius, DefaultRadiusKm),
	}
	check(ve, s.Criteria.rules())
	check(ve, p)
	return p, ve.Err()
}

// NearbySpec lists every hospital around a point, closest first.
type NearbySpec struct {
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Radius *float64 `json:"radius"`
}

type nearbyParams struct {
	Origin   geo.Coordinate `json:"-"`
	RadiusKm float64        `json:"radius" validate:"gt=0"`
}

func (s NearbySpec) normalize() (nearbyParams, error) {
	ve := &ValidationError{}
	p := nearbyParams{RadiusKm: floatOr(s.Radius, DefaultRadiusKm)}
	if o := origin(ve, s.Lat, s.Lng, "lat", "lng", true); o != nil {
		p.Origin = *o
	}
	check(ve, p)
	return p, ve.Err()
}

// NearestSpec asks for the k closest hospitals within a maximum distance.
type NearestSpec struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Limit       *int     `json:"limit"`
	MaxDistance *float64 `json:"max_distance"`
}

type nearestParams struct {
	Origin        geo.Coordinate `json:"-"`
	Limit         int            `json:"limit" validate:"min=1,max=20"`
	MaxDistanceKm float64        `json:"max_distance" validate:"gt=0"`
}

func (s NearestSpec) normalize() (nearestParams, error) {
	ve := &ValidationError{}
	p := nearestParams{
		Limit:         intOr(s.Limit, DefaultNearestLimit),
		MaxDistanceKm: floatOr(s.MaxDistance, DefaultMaxDistanceKm),
	}
	if o := origin(ve, s.Latitude, s.Longitude, "latitude", "longitude", true); o != nil {
		p.Origin = *o
	}
	check(ve, p)
	return p, ve.Err()
}

// ListSpec is an attribute filter over the directory, paginated. The text
// predicate also matches phone numbers. Ordering is one of the Order* keys;
// empty means OrderName.
type ListSpec struct {
	Criteria
	Ordering string `json:"ordering"`
	Page     *int   `json:"page"`
	PageSize *int   `json:"page_size"`
}

type listParams struct {
	Criteria
	Ordering string `json:"ordering" validate:"oneof=name -name created_at -created_at capacity -capacity"`
	Page     int    `json:"page" validate:"min=1"`
	PageSize int    `json:"page_size" validate:"min=1,max=100"`
}

func (s ListSpec) normalize() (listParams, error) {
	ve := &ValidationError{}
	p := listParams{
		Criteria: s.Criteria,
		Ordering: s.Ordering,
		Page:     intOr(s.Page, 1),
		PageSize: intOr(s.PageSize, DefaultPageSize),
	}
	if p.Ordering == "" {
		p.Ordering = OrderName
	}
	check(ve, s.Criteria.rules())
	check(ve, p)
	return p, ve.Err()
}

// RecommendSpec describes the patient's needs for a scored recommendation.
type RecommendSpec struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Specialty    string   `json:"specialty"`
	HospitalType string   `json:"hospital_type"`
	Emergency    bool     `json:"emergency"`
	PreferPublic bool     `json:"prefer_public"`
	MaxDistance  *float64 `json:"max_distance"`
	Limit        *int     `json:"limit"`
}

type recommendParams struct {
	Origin        geo.Coordinate `json:"-"`
	Specialty     string         `json:"specialty" validate:"omitempty,specialty"`
	HospitalType  string         `json:"hospital_type" validate:"omitempty,hospital_type"`
	Emergency     bool           `json:"emergency"`
	PreferPublic  bool           `json:"prefer_public"`
	MaxDistanceKm float64        `json:"max_distance" validate:"gt=0"`
	Limit         int            `json:"limit" validate:"min=1,max=20"`
}

func (s RecommendSpec) normalize() (recommendParams, error) {
	ve := &ValidationError{}
	p := recommendParams{
		Specialty:     s.Specialty,
		HospitalType:  s.HospitalType,
		Emergency:     s.Emergency,
		PreferPublic:  s.PreferPublic,
		MaxDistanceKm: floatOr(s.MaxDistance, DefaultRecommendDistanceKm),
		Limit:         intOr(s.Limit, DefaultRecommendLimit),
	}
	if o := origin(ve, s.Latitude, s.Longitude, "latitude", "longitude", true); o != nil {
		p.Origin = *o
	}
	check(ve, p)
	return p, ve.Err()
}

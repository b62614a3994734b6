package query

import (
	"context"
	"testing"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Recommend(t *testing.T) {
	e, _ := newTestEngine()

	got, err := e.Recommend(context.Background(), RecommendSpec{
		Latitude:     ptr(testOrigin.Lat),
		Longitude:    ptr(testOrigin.Lng),
		Specialty:    "cardiology",
		Emergency:    true,
		PreferPublic: true,
		Limit:        ptr(3),
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// 115: 100 - 2*1.75 + 20 public + 30 emergency + 15 specialty + 5 capacity.
	assert.Equal(t, int64(5), got[0].Hospital.ID)
	assert.InDelta(t, 166.50, got[0].Score, 0.01)
	assert.Equal(t, []string{ReasonPublic, ReasonEmergency, ReasonOtherSpecialty, ReasonLargeCapacity}, got[0].Reasons)

	assert.Equal(t, int64(1), got[1].Hospital.ID)
	assert.Equal(t, int64(2), got[2].Hospital.ID)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestEngine_Recommend_DefaultsSkipUnlocated(t *testing.T) {
	e, _ := newTestEngine()

	got, err := e.Recommend(context.Background(), RecommendSpec{
		Latitude:  ptr(testOrigin.Lat),
		Longitude: ptr(testOrigin.Lng),
	})
	require.NoError(t, err)
	assert.Len(t, got, DefaultRecommendLimit)
	for _, r := range got {
		assert.NotEqual(t, int64(11), r.Hospital.ID)
	}
}

func TestScore(t *testing.T) {
	a := Annotated{
		Hospital: directory.Hospital{
			Type:          directory.TypePrivate,
			MainSpecialty: "cardiology",
			Capacity:      ptr(300),
		},
		DistanceKm: 5,
	}

	cases := []struct {
		name    string
		p       recommendParams
		want    float64
		reasons []string
	}{
		{"distance only", recommendParams{}, 90, []string{}},
		{"public preference ignored for private", recommendParams{PreferPublic: true}, 90, []string{}},
		{"emergency wanted but missing", recommendParams{Emergency: true}, 40, []string{}},
		{"main specialty", recommendParams{Specialty: "cardiology"}, 115, []string{ReasonMainSpecialty}},
		{"specialty not offered", recommendParams{Specialty: "oncology"}, 90, []string{}},
		{"type match", recommendParams{HospitalType: "private"}, 100, []string{ReasonTypeMatch}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := score(a, tc.p)
			assert.InDelta(t, tc.want, r.Score, 1e-9)
			assert.Equal(t, tc.reasons, r.Reasons)
		})
	}
}

func TestRankRecommendations_TiesKeepDistanceOrder(t *testing.T) {
	p := geo.Coordinate{Lat: 10.8, Lng: 106.66}
	ranked := []Annotated{
		{Hospital: directory.Hospital{ID: 7, Location: &p}, DistanceKm: 1},
		{Hospital: directory.Hospital{ID: 3, Location: &p}, DistanceKm: 1},
	}
	got := rankRecommendations(ranked, recommendParams{Limit: 5})
	assert.Equal(t, int64(7), got[0].Hospital.ID)
	assert.Equal(t, int64(3), got[1].Hospital.ID)
}

func TestEngine_Recommend_Validation(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.Recommend(context.Background(), RecommendSpec{})
	requireFieldError(t, err, "latitude")

	_, err = e.Recommend(context.Background(), RecommendSpec{
		Latitude: ptr(10.0), Longitude: ptr(106.0), Specialty: "ent",
	})
	requireFieldError(t, err, "specialty")

	_, err = e.Recommend(context.Background(), RecommendSpec{
		Latitude: ptr(10.0), Longitude: ptr(106.0), Limit: ptr(50),
	})
	requireFieldError(t, err, "limit")
}

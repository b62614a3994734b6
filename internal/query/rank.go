package query

import (
	"sort"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

// Annotated pairs a hospital with its distance from a query origin. It only
// exists for the lifetime of one query.
type Annotated struct {
	Hospital   directory.Hospital
	DistanceKm float64
}

// Ranker keeps the candidates that lie within radiusKm of origin (boundary
// included) and orders them by ascending distance. Equal distances keep their
// input order. Candidates without a location are dropped.
type Ranker interface {
	Rank(candidates []directory.Hospital, origin geo.Coordinate, radiusKm float64) []Annotated
}

// LinearRanker scans every candidate.
type LinearRanker struct{}

// Rank implements Ranker.
func (LinearRanker) Rank(candidates []directory.Hospital, origin geo.Coordinate, radiusKm float64) []Annotated {
	out := make([]Annotated, 0)
	for i := range candidates {
		h := &candidates[i]
		if h.Location == nil {
			continue
		}
		d := geo.Distance(origin, *h.Location)
		if d <= radiusKm {
			out = append(out, Annotated{Hospital: *h, DistanceKm: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// Hospitals strips the distance annotations, keeping order.
func Hospitals(ranked []Annotated) []directory.Hospital {
	out := make([]directory.Hospital, len(ranked))
	for i, a := range ranked {
		out[i] = a.Hospital
	}
	return out
}

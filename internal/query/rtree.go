package query

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50

	// pointTolerance gives each indexed point a non-degenerate rectangle.
	pointTolerance = 1e-9
)

// RTreeRanker prefilters candidates through an R-tree bounding-box query
// before computing exact distances. It returns the same result as
// LinearRanker. Circles that reach a pole or cross the antimeridian are
// handled by a linear scan.
type RTreeRanker struct {
	// MinCandidates is the input size below which the tree is skipped.
	MinCandidates int
}

// NewRTreeRanker returns an RTreeRanker that indexes inputs of at least
// minCandidates records.
func NewRTreeRanker(minCandidates int) *RTreeRanker {
	return &RTreeRanker{MinCandidates: minCandidates}
}

// indexed is a candidate stored in the tree; idx is its input position.
type indexed struct {
	idx  int
	rect rtreego.Rect
}

func (e *indexed) Bounds() rtreego.Rect { return e.rect }

// Rank implements Ranker.
func (r *RTreeRanker) Rank(candidates []directory.Hospital, origin geo.Coordinate, radiusKm float64) []Annotated {
	if len(candidates) < r.MinCandidates {
		return LinearRanker{}.Rank(candidates, origin, radiusKm)
	}

	box, ok := geo.BoundingBox(origin, radiusKm)
	if !ok {
		return LinearRanker{}.Rank(candidates, origin, radiusKm)
	}

	objs := make([]rtreego.Spatial, 0, len(candidates))
	for i := range candidates {
		loc := candidates[i].Location
		if loc == nil {
			continue
		}
		objs = append(objs, &indexed{idx: i, rect: rtreego.Point{loc.Lat, loc.Lng}.ToRect(pointTolerance)})
	}
	if len(objs) == 0 {
		return []Annotated{}
	}

	search, err := rtreego.NewRect(
		rtreego.Point{box.MinLat, box.MinLng},
		[]float64{box.MaxLat - box.MinLat, box.MaxLng - box.MinLng},
	)
	if err != nil {
		return LinearRanker{}.Rank(candidates, origin, radiusKm)
	}

	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, objs...)
	hits := tree.SearchIntersect(search)

	type hit struct {
		idx int
		d   float64
	}
	within := make([]hit, 0, len(hits))
	for _, s := range hits {
		e := s.(*indexed)
		d := geo.Distance(origin, *candidates[e.idx].Location)
		if d <= radiusKm {
			within = append(within, hit{idx: e.idx, d: d})
		}
	}

	sort.Slice(within, func(i, j int) bool {
		if within[i].d != within[j].d {
			return within[i].d < within[j].d
		}
		return within[i].idx < within[j].idx
	})

	out := make([]Annotated, len(within))
	for i, h := range within {
		out[i] = Annotated{Hospital: candidates[h.idx], DistanceKm: h.d}
	}
	return out
}

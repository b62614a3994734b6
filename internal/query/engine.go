// Package query implements the directory's search and ranking operations
// over a per-request snapshot of active hospitals.
//
// Every operation validates its spec first, then fetches the snapshot from
// the DatasetProvider, then filters and ranks in memory. Nothing is cached
// between calls.
package query

import (
	"context"
	"math"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
)

// DatasetProvider supplies the active hospitals. Inactive records must never
// be returned.
type DatasetProvider interface {
	FetchActive(ctx context.Context) ([]directory.Hospital, error)
}

// Engine answers directory queries.
type Engine struct {
	provider DatasetProvider
	ranker   Ranker
}

// Option configures an Engine.
type Option func(*Engine)

// WithRanker replaces the default LinearRanker.
func WithRanker(r Ranker) Option {
	return func(e *Engine) { e.ranker = r }
}

// NewEngine creates an Engine reading from provider.
func NewEngine(provider DatasetProvider, opts ...Option) *Engine {
	e := &Engine{provider: provider, ranker: LinearRanker{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Engine) snapshot(ctx context.Context) ([]directory.Hospital, error) {
	hs, err := e.provider.FetchActive(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "fetch active hospitals", Err: err}
	}
	return hs, nil
}

// Search filters by attributes and, when an origin is given, keeps only the
// matches within the radius ordered by distance. Results are not truncated.
func (e *Engine) Search(ctx context.Context, spec SearchSpec) ([]directory.Hospital, error) {
	p, err := spec.normalize()
	if err != nil {
		return nil, err
	}

	hs, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	matched := Filter(hs, p.Criteria)
	if p.Origin == nil {
		return matched, nil
	}
	return Hospitals(e.ranker.Rank(matched, *p.Origin, p.RadiusKm)), nil
}

// Nearby returns up to NearbyLimit hospitals within the radius, closest first.
func (e *Engine) Nearby(ctx context.Context, spec NearbySpec) ([]Annotated, error) {
	p, err := spec.normalize()
	if err != nil {
		return nil, err
	}

	hs, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ranked := e.ranker.Rank(hs, p.Origin, p.RadiusKm)
	if len(ranked) > NearbyLimit {
		ranked = ranked[:NearbyLimit]
	}
	return ranked, nil
}

// NearestMatch is a hospital with its distance rounded for display.
type NearestMatch struct {
	Hospital directory.Hospital
	Km       float64
	Meters   int
}

// Nearest returns the Limit closest hospitals within MaxDistance.
func (e *Engine) Nearest(ctx context.Context, spec NearestSpec) ([]NearestMatch, error) {
	p, err := spec.normalize()
	if err != nil {
		return nil, err
	}

	hs, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ranked := e.ranker.Rank(hs, p.Origin, p.MaxDistanceKm)
	if len(ranked) > p.Limit {
		ranked = ranked[:p.Limit]
	}

	out := make([]NearestMatch, len(ranked))
	for i, a := range ranked {
		out[i] = NearestMatch{
			Hospital: a.Hospital,
			Km:       round(a.DistanceKm, 2),
			Meters:   int(math.Round(a.DistanceKm * 1000)),
		}
	}
	return out, nil
}

// Districts counts active hospitals for every district.
func (e *Engine) Districts(ctx context.Context) ([]DomainCount, error) {
	hs, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CountDistricts(hs), nil
}

// Specialties counts active hospitals offering every specialty.
func (e *Engine) Specialties(ctx context.Context) ([]DomainCount, error) {
	hs, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CountSpecialties(hs), nil
}

// Stats aggregates the active directory.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	hs, err := e.snapshot(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(hs), nil
}

// Page is one page of a filtered listing.
type Page struct {
	Count      int                  `json:"count"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
	Results    []directory.Hospital `json:"-"`
}

// List filters the directory, orders the matches and returns the requested
// page. A page past the end is empty.
func (e *Engine) List(ctx context.Context, spec ListSpec) (Page, error) {
	p, err := spec.normalize()
	if err != nil {
		return Page{}, err
	}

	hs, err := e.snapshot(ctx)
	if err != nil {
		return Page{}, err
	}

	matched := Filter(hs, p.Criteria, MatchPhone())
	sortListing(matched, p.Ordering)
	page := Page{
		Count:      len(matched),
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: (len(matched) + p.PageSize - 1) / p.PageSize,
		Results:    []directory.Hospital{},
	}

	if p.Page <= page.TotalPages {
		start := (p.Page - 1) * p.PageSize
		end := min(start+p.PageSize, len(matched))
		page.Results = matched[start:end]
	}
	return page, nil
}

// Recommend scores the hospitals within MaxDistance against the patient's
// needs and returns the best Limit of them.
func (e *Engine) Recommend(ctx context.Context, spec RecommendSpec) ([]Recommendation, error) {
	p, err := spec.normalize()
	if err != nil {
		return nil, err
	}

	hs, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return rankRecommendations(e.ranker.Rank(hs, p.Origin, p.MaxDistanceKm), p), nil
}

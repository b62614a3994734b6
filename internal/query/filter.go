package query

import (
	"strings"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"golang.org/x/text/cases"
)

// FilterOption adjusts how Filter evaluates a Criteria.
type FilterOption func(*matcher)

// MatchPhone extends the text predicate to the phone number.
func MatchPhone() FilterOption {
	return func(m *matcher) { m.phone = true }
}

// Filter returns the candidates that satisfy every present predicate of c,
// in their original order. The input slice is not modified.
func Filter(candidates []directory.Hospital, c Criteria, opts ...FilterOption) []directory.Hospital {
	m := newMatcher(c)
	for _, o := range opts {
		o(m)
	}
	out := make([]directory.Hospital, 0, len(candidates))
	for i := range candidates {
		if m.match(&candidates[i]) {
			out = append(out, candidates[i])
		}
	}
	return out
}

// matcher evaluates one Criteria. A Caser keeps state between calls, so each
// matcher owns its own and is confined to a single goroutine.
type matcher struct {
	c      Criteria
	fold   cases.Caser
	needle string
	phone  bool
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, fold: cases.Fold()}
	if c.Text != "" {
		m.needle = m.fold.String(c.Text)
	}
	return m
}

func (m *matcher) match(h *directory.Hospital) bool {
	if m.needle != "" && !m.containsText(h) {
		return false
	}
	if m.c.Type != "" && h.Type != m.c.Type {
		return false
	}
	if m.c.District != "" && h.District != m.c.District {
		return false
	}
	if m.c.Specialty != "" && !h.OffersSpecialty(m.c.Specialty) {
		return false
	}
	if m.c.EmergencyOnly && !h.Emergency {
		return false
	}
	return true
}

func (m *matcher) containsText(h *directory.Hospital) bool {
	for _, field := range []string{h.Name, h.NameEN, h.Address} {
		if field != "" && strings.Contains(m.fold.String(field), m.needle) {
			return true
		}
	}
	return m.phone && h.Phone != "" && strings.Contains(h.Phone, m.needle)
}

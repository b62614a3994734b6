package query

import (
	"sort"
	"strings"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Listing order keys. A leading "-" reverses the order.
const (
	OrderName      = "name"
	OrderCreatedAt = "created_at"
	OrderCapacity  = "capacity"
)

// sortListing orders hs in place by ordering. Names compare under Vietnamese
// collation. Hospitals without a capacity come last in both directions. Ties
// keep their input order.
func sortListing(hs []directory.Hospital, ordering string) {
	key, desc := strings.CutPrefix(ordering, "-")

	var less func(a, b *directory.Hospital) bool
	switch key {
	case OrderCreatedAt:
		less = func(a, b *directory.Hospital) bool {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case OrderCapacity:
		less = func(a, b *directory.Hospital) bool {
			switch {
			case a.Capacity == nil:
				return false
			case b.Capacity == nil:
				return true
			case desc:
				return *a.Capacity > *b.Capacity
			default:
				return *a.Capacity < *b.Capacity
			}
		}
	default:
		// A Collator keeps buffers between calls; this one is local to the sort.
		col := collate.New(language.Vietnamese)
		less = func(a, b *directory.Hospital) bool {
			cmp := col.CompareString(a.Name, b.Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
	}

	sort.SliceStable(hs, func(i, j int) bool { return less(&hs[i], &hs[j]) })
}

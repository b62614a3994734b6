// Package storage provides PostgreSQL-backed repository implementations.
package storage

import (
	"context"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
)

// HospitalsRepository defines read operations on the hospitals table.
// It satisfies query.DatasetProvider.
type HospitalsRepository interface {
	// FetchActive returns every active hospital ordered by name, then id.
	FetchActive(ctx context.Context) ([]directory.Hospital, error)

	// GetHospital returns a single active hospital by ID.
	// Returns (nil, nil) when the hospital does not exist or is inactive.
	GetHospital(ctx context.Context, id int64) (*directory.Hospital, error)
}

// HospitalsWriter loads hospital records, used by the seed command.
type HospitalsWriter interface {
	// InsertHospitals inserts hs in one transaction and returns the number of
	// rows written. When reset is true the table is emptied first.
	InsertHospitals(ctx context.Context, hs []directory.Hospital, reset bool) (int, error)
}

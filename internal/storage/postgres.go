package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

// queryTimeout is applied to every database query.
const queryTimeout = 5 * time.Second

// hospitalColumns is the select list matching hospitalRow's db tags.
const hospitalColumns = `
	id, name, name_en, hospital_type, address, district, ward,
	phone, email, website, facebook,
	main_specialty, specialties, description,
	latitude, longitude, working_hours,
	emergency_services, ambulance_services,
	capacity, doctors_count, nurses_count,
	is_active, created_at, updated_at`

// hospitalRow is the raw shape of a hospitals row.
type hospitalRow struct {
	ID            int64             `db:"id"`
	Name          string            `db:"name"`
	NameEN        string            `db:"name_en"`
	Type          string            `db:"hospital_type"`
	Address       string            `db:"address"`
	District      string            `db:"district"`
	Ward          string            `db:"ward"`
	Phone         string            `db:"phone"`
	Email         string            `db:"email"`
	Website       string            `db:"website"`
	Facebook      string            `db:"facebook"`
	MainSpecialty string            `db:"main_specialty"`
	Specialties   []string          `db:"specialties"`
	Description   string            `db:"description"`
	Latitude      pgtype.Float8     `db:"latitude"`
	Longitude     pgtype.Float8     `db:"longitude"`
	WorkingHours  map[string]string `db:"working_hours"`
	Emergency     bool              `db:"emergency_services"`
	Ambulance     bool              `db:"ambulance_services"`
	Capacity      pgtype.Int4       `db:"capacity"`
	DoctorsCount  pgtype.Int4       `db:"doctors_count"`
	NursesCount   pgtype.Int4       `db:"nurses_count"`
	Active        bool              `db:"is_active"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}

// PgHospitalsRepository is the pgx-backed implementation of
// HospitalsRepository and HospitalsWriter.
type PgHospitalsRepository struct {
	pool *pgxpool.Pool
}

// NewHospitalsRepository creates a HospitalsRepository backed by the given pool.
func NewHospitalsRepository(pool *pgxpool.Pool) *PgHospitalsRepository {
	return &PgHospitalsRepository{pool: pool}
}

// FetchActive returns every active hospital ordered by name, then id.
func (r *PgHospitalsRepository) FetchActive(ctx context.Context) ([]directory.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT `+hospitalColumns+`
		FROM hospitals
		WHERE is_active = true
		ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("storage: FetchActive: %w", err)
	}

	raw, err := pgx.CollectRows(rows, pgx.RowToStructByName[hospitalRow])
	if err != nil {
		return nil, fmt.Errorf("storage: FetchActive: scan: %w", err)
	}

	hospitals := make([]directory.Hospital, 0, len(raw))
	for _, row := range raw {
		h, err := rowToHospital(row)
		if err != nil {
			return nil, fmt.Errorf("storage: FetchActive: %w", err)
		}
		hospitals = append(hospitals, h)
	}

	return hospitals, nil
}

// GetHospital returns a single active hospital by ID, or (nil, nil) if not found.
func (r *PgHospitalsRepository) GetHospital(ctx context.Context, id int64) (*directory.Hospital, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT `+hospitalColumns+`
		FROM hospitals
		WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return nil, fmt.Errorf("storage: GetHospital: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[hospitalRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: GetHospital: %w", err)
	}

	h, err := rowToHospital(row)
	if err != nil {
		return nil, fmt.Errorf("storage: GetHospital: %w", err)
	}

	return &h, nil
}

// InsertHospitals writes hs in a single transaction using a pipelined batch.
func (r *PgHospitalsRepository) InsertHospitals(ctx context.Context, hs []directory.Hospital, reset bool) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("storage: InsertHospitals: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if reset {
		if _, err := tx.Exec(ctx, `TRUNCATE hospitals RESTART IDENTITY CASCADE`); err != nil {
			return 0, fmt.Errorf("storage: InsertHospitals: truncate: %w", err)
		}
	}

	const q = `
		INSERT INTO hospitals (
			name, name_en, hospital_type, address, district, ward,
			phone, email, website, facebook,
			main_specialty, specialties, description,
			latitude, longitude, working_hours,
			emergency_services, ambulance_services,
			capacity, doctors_count, nurses_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	batch := &pgx.Batch{}
	for i := range hs {
		batch.Queue(q, insertArgs(&hs[i])...)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range hs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("storage: InsertHospitals: row %d (%s): %w", i, hs[i].Name, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("storage: InsertHospitals: close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("storage: InsertHospitals: commit: %w", err)
	}

	return len(hs), nil
}

// insertArgs flattens h into the InsertHospitals parameter list.
func insertArgs(h *directory.Hospital) []any {
	specialties := h.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	hours := h.WorkingHours
	if hours == nil {
		hours = map[string]string{}
	}

	lat, lng := pgtype.Float8{}, pgtype.Float8{}
	if h.Location != nil {
		lat = pgtype.Float8{Float64: h.Location.Lat, Valid: true}
		lng = pgtype.Float8{Float64: h.Location.Lng, Valid: true}
	}

	return []any{
		h.Name, h.NameEN, h.Type, h.Address, h.District, h.Ward,
		h.Phone, h.Email, h.Website, h.Facebook,
		h.MainSpecialty, specialties, h.Description,
		lat, lng, hours,
		h.Emergency, h.Ambulance,
		optionalInt(h.Capacity), optionalInt(h.DoctorsCount), optionalInt(h.NursesCount),
		h.Active,
	}
}

// rowToHospital converts a raw row into a Hospital domain object.
// Latitude and longitude must be both set or both NULL.
func rowToHospital(row hospitalRow) (directory.Hospital, error) {
	if row.Latitude.Valid != row.Longitude.Valid {
		return directory.Hospital{}, fmt.Errorf("hospital id=%d has a partial coordinate (data integrity issue)", row.ID)
	}

	h := directory.Hospital{
		ID:            row.ID,
		Name:          row.Name,
		NameEN:        row.NameEN,
		Type:          row.Type,
		Address:       row.Address,
		District:      row.District,
		Ward:          row.Ward,
		Phone:         row.Phone,
		Email:         row.Email,
		Website:       row.Website,
		Facebook:      row.Facebook,
		MainSpecialty: row.MainSpecialty,
		Specialties:   row.Specialties,
		Description:   row.Description,
		WorkingHours:  row.WorkingHours,
		Emergency:     row.Emergency,
		Ambulance:     row.Ambulance,
		Capacity:      intPtr(row.Capacity),
		DoctorsCount:  intPtr(row.DoctorsCount),
		NursesCount:   intPtr(row.NursesCount),
		Active:        row.Active,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if h.Specialties == nil {
		h.Specialties = []string{}
	}

	if row.Latitude.Valid {
		loc := geo.Coordinate{Lat: row.Latitude.Float64, Lng: row.Longitude.Float64}
		if err := loc.Validate(); err != nil {
			return directory.Hospital{}, fmt.Errorf("hospital id=%d: %w", row.ID, err)
		}
		h.Location = &loc
	}

	return h, nil
}

func intPtr(v pgtype.Int4) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func optionalInt(p *int) pgtype.Int4 {
	if p == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*p), Valid: true}
}

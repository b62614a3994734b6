// Package seed reads hospital records from YAML for loading into the store.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
	"gopkg.in/yaml.v3"
)

//go:embed hospitals.yaml
var defaultHospitalsYAML []byte

type fileYAML struct {
	Hospitals []recordYAML `yaml:"hospitals"`
}

type recordYAML struct {
	Name          string            `yaml:"name"`
	NameEN        string            `yaml:"name_en"`
	Type          string            `yaml:"hospital_type"`
	Address       string            `yaml:"address"`
	Ward          string            `yaml:"ward"`
	District      string            `yaml:"district"`
	Phone         string            `yaml:"phone"`
	Email         string            `yaml:"email"`
	Website       string            `yaml:"website"`
	Facebook      string            `yaml:"facebook"`
	MainSpecialty string            `yaml:"main_specialty"`
	Specialties   []string          `yaml:"specialties"`
	Description   string            `yaml:"description"`
	Latitude      *float64          `yaml:"latitude"`
	Longitude     *float64          `yaml:"longitude"`
	WorkingHours  map[string]string `yaml:"working_hours"`
	Emergency     bool              `yaml:"emergency_services"`
	Ambulance     bool              `yaml:"ambulance_services"`
	Capacity      *int              `yaml:"capacity"`
	DoctorsCount  *int              `yaml:"doctors_count"`
	NursesCount   *int              `yaml:"nurses_count"`
	Active        *bool             `yaml:"is_active"`
}

// Default returns the embedded sample directory.
func Default() ([]directory.Hospital, error) {
	return Parse(defaultHospitalsYAML)
}

// Load reads and parses the YAML file at path.
func Load(path string) ([]directory.Hospital, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a document of the form {hospitals: [...]}. Unknown keys are
// rejected. Every invalid record is reported, joined into one error.
func Parse(data []byte) ([]directory.Hospital, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc fileYAML
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	if len(doc.Hospitals) == 0 {
		return nil, errors.New("seed: no hospitals in document")
	}

	out := make([]directory.Hospital, 0, len(doc.Hospitals))
	var errs []error
	for i, r := range doc.Hospitals {
		h, err := r.toHospital()
		if err != nil {
			errs = append(errs, fmt.Errorf("seed: hospital %d (%q): %w", i+1, r.Name, err))
			continue
		}
		out = append(out, h)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r recordYAML) toHospital() (directory.Hospital, error) {
	h := directory.Hospital{
		Name:          r.Name,
		NameEN:        r.NameEN,
		Type:          r.Type,
		Address:       r.Address,
		Ward:          r.Ward,
		District:      r.District,
		Phone:         r.Phone,
		Email:         r.Email,
		Website:       r.Website,
		Facebook:      r.Facebook,
		MainSpecialty: r.MainSpecialty,
		Specialties:   r.Specialties,
		Description:   r.Description,
		WorkingHours:  r.WorkingHours,
		Emergency:     r.Emergency,
		Ambulance:     r.Ambulance,
		Capacity:      r.Capacity,
		DoctorsCount:  r.DoctorsCount,
		NursesCount:   r.NursesCount,
		Active:        true,
	}
	if r.Active != nil {
		h.Active = *r.Active
	}
	if h.Type == "" {
		h.Type = directory.TypePublic
	}
	if h.MainSpecialty == "" {
		h.MainSpecialty = directory.SpecialtyGeneral
	}
	if h.Specialties == nil {
		h.Specialties = []string{}
	}

	switch {
	case h.Name == "":
		return h, errors.New("name is required")
	case !directory.IsHospitalType(h.Type):
		return h, fmt.Errorf("unknown hospital_type %q", h.Type)
	case h.District != "" && !directory.IsDistrict(h.District):
		return h, fmt.Errorf("unknown district %q", h.District)
	case !directory.IsSpecialty(h.MainSpecialty):
		return h, fmt.Errorf("unknown main_specialty %q", h.MainSpecialty)
	}
	for _, s := range h.Specialties {
		if !directory.IsSpecialty(s) {
			return h, fmt.Errorf("unknown specialty %q", s)
		}
	}
	for name, v := range map[string]*int{"capacity": h.Capacity, "doctors_count": h.DoctorsCount, "nurses_count": h.NursesCount} {
		if v != nil && *v < 0 {
			return h, fmt.Errorf("%s must not be negative", name)
		}
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return h, errors.New("latitude and longitude must be given together")
	}
	if r.Latitude != nil {
		c := geo.Coordinate{Lat: *r.Latitude, Lng: *r.Longitude}
		if err := c.Validate(); err != nil {
			return h, err
		}
		h.Location = &c
	}
	return h, nil
}

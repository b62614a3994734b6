package query

import (
	"context"

	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

// testOrigin sits near District 10, Ho Chi Minh City.
var testOrigin = geo.Coordinate{Lat: 10.7949, Lng: 106.6525}

func ptr[T any](v T) *T { return &v }

func at(lat, lng float64) *geo.Coordinate {
	return &geo.Coordinate{Lat: lat, Lng: lng}
}

// sampleHospitals returns the seed directory. Distances from testOrigin:
// 115 1.75 km, ENT 3.80, Eye 3.81, Cho Ray 4.93, UMC 5.03, Go Vap 5.34,
// Children's 1 7.21, Tam Duc 7.56, FV 9.13, Thu Duc 13.05; the clinic has no
// coordinates.
func sampleHospitals() []directory.Hospital {
	return []directory.Hospital{
		{ID: 1, Name: "Bệnh viện Chợ Rẫy", NameEN: "Cho Ray Hospital", Type: "public", District: "quan5",
			Address: "201B Nguyễn Chí Thanh", MainSpecialty: "general",
			Specialties: []string{"cardiology", "neurology", "oncology"},
			Location:    at(10.7506, 106.6550), Emergency: true, Capacity: ptr(1800), Active: true},
		{ID: 2, Name: "Bệnh viện Đại học Y Dược", NameEN: "University Medical Center", Type: "public", District: "quan5",
			Address: "215 Hồng Bàng", MainSpecialty: "general", Specialties: []string{"cardiology"},
			Location: at(10.7498, 106.6560), Emergency: true, Capacity: ptr(1000), Active: true},
		{ID: 3, Name: "Bệnh viện FV", NameEN: "FV Hospital", Type: "private", District: "quan7",
			Address: "6 Nguyễn Lương Bằng", MainSpecialty: "general", Specialties: []string{"oncology", "orthopedics"},
			Location: at(10.7290, 106.7023), Emergency: true, Capacity: ptr(220), Active: true},
		{ID: 4, Name: "Bệnh viện Nhi Đồng 1", NameEN: "Children's Hospital 1", Type: "public", District: "binhthanh",
			Address: "341 Sư Vạn Hạnh", MainSpecialty: "pediatrics",
			Location: at(10.8030, 106.7180), Emergency: true, Capacity: ptr(1400), Active: true},
		{ID: 5, Name: "Bệnh viện Nhân dân 115", NameEN: "People's Hospital 115", Type: "public", District: "quan10",
			Address: "527 Sư Vạn Hạnh", MainSpecialty: "general", Specialties: []string{"neurology", "cardiology"},
			Location: at(10.7910, 106.6680), Emergency: true, Capacity: ptr(1600), Active: true},
		{ID: 6, Name: "Bệnh viện Tai Mũi Họng", NameEN: "ENT Hospital", Type: "public", District: "quan3",
			Address: "155B Trần Quốc Thảo", MainSpecialty: "general",
			Location: at(10.7862, 106.6861), Active: true},
		{ID: 7, Name: "Bệnh viện Mắt", NameEN: "Eye Hospital", Type: "public", District: "quan3",
			Address: "280 Điện Biên Phủ", MainSpecialty: "ophthalmology",
			Location: at(10.7823, 106.6849), Active: true},
		{ID: 8, Name: "Bệnh viện Tim Tâm Đức", NameEN: "Tam Duc Heart Hospital", Type: "private", District: "binhthanh",
			Address: "4 Nguyễn Lương Bằng", MainSpecialty: "cardiology",
			Location: at(10.8100, 106.7200), Emergency: true, Active: true},
		{ID: 9, Name: "Bệnh viện Quận Gò Vấp", NameEN: "Go Vap District Hospital", Type: "public", District: "govap",
			Address: "641 Quang Trung", MainSpecialty: "general",
			Location: at(10.8389, 106.6722), Emergency: true, Active: true},
		{ID: 10, Name: "Bệnh viện Thủ Đức", NameEN: "Thu Duc Hospital", Type: "public", District: "thuduc",
			Address: "29 Phú Châu", MainSpecialty: "general",
			Location: at(10.8542, 106.7556), Emergency: true, Active: true},
		{ID: 11, Name: "Phòng khám Da liễu Sài Gòn", NameEN: "Saigon Skin Clinic", Type: "clinic", District: "quan1",
			Address: "12 Lê Thánh Tôn", MainSpecialty: "dermatology", Active: true},
	}
}

func ids(hs []directory.Hospital) []int64 {
	out := make([]int64, len(hs))
	for i, h := range hs {
		out[i] = h.ID
	}
	return out
}

func annotatedIDs(as []Annotated) []int64 {
	return ids(Hospitals(as))
}

// stubProvider is an in-memory DatasetProvider.
type stubProvider struct {
	hospitals []directory.Hospital
	err       error
	calls     int
}

func (s *stubProvider) FetchActive(_ context.Context) ([]directory.Hospital, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.hospitals, nil
}

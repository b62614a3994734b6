package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainTables_Sizes(t *testing.T) {
	assert.Len(t, HospitalTypes, 3)
	assert.Len(t, Districts, 23)
	assert.Len(t, Specialties, 10)
}

func TestDomainTables_UniqueCodes(t *testing.T) {
	for name, table := range map[string][]Choice{
		"types":       HospitalTypes,
		"districts":   Districts,
		"specialties": Specialties,
	} {
		seen := map[string]bool{}
		for _, c := range table {
			assert.False(t, seen[c.Code], "%s: duplicate code %q", name, c.Code)
			assert.NotEmpty(t, c.Label, "%s: %q has no label", name, c.Code)
			seen[c.Code] = true
		}
	}
}

func TestMembership(t *testing.T) {
	assert.True(t, IsHospitalType("clinic"))
	assert.False(t, IsHospitalType("military"))
	assert.True(t, IsDistrict("binhthanh"))
	assert.False(t, IsDistrict("quan13"))
	assert.True(t, IsSpecialty("dermatology"))
	assert.False(t, IsSpecialty("ent"))
	assert.False(t, IsSpecialty(""))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Công lập", TypeLabel("public"))
	assert.Equal(t, "Quận 5", DistrictLabel("quan5"))
	assert.Equal(t, "Huyện Cần Giờ", DistrictLabel("canggio"))
	assert.Equal(t, "Tim mạch", SpecialtyLabel("cardiology"))
	assert.Equal(t, "unknown", SpecialtyLabel("unknown"))
}

func TestHospital_FullAddress(t *testing.T) {
	cases := []struct {
		name string
		h    Hospital
		want string
	}{
		{
			name: "with ward",
			h:    Hospital{Address: "201B Nguyễn Chí Thanh", Ward: "12", District: "quan5"},
			want: "201B Nguyễn Chí Thanh, Phường 12, Quận 5, TP. Hồ Chí Minh",
		},
		{
			name: "without ward",
			h:    Hospital{Address: "6 Nguyễn Lương Bằng", District: "quan7"},
			want: "6 Nguyễn Lương Bằng, Quận 7, TP. Hồ Chí Minh",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.h.FullAddress())
		})
	}
}

func TestHospital_OffersSpecialty(t *testing.T) {
	h := Hospital{MainSpecialty: "general", Specialties: []string{"cardiology", "neurology"}}

	assert.True(t, h.OffersSpecialty("general"))
	assert.True(t, h.OffersSpecialty("cardiology"))
	assert.False(t, h.OffersSpecialty("cardio"), "membership is exact, not substring")
	assert.False(t, h.HasSecondarySpecialty("general"))
}

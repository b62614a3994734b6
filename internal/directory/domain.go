package directory

// Choice is one member of a fixed enumerated domain: a stable code and the
// label shown next to it.
type Choice struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"name" yaml:"name"`
}

// Hospital type codes.
const (
	TypePublic  = "public"
	TypePrivate = "private"
	TypeClinic  = "clinic"
)

// HospitalTypes lists every hospital type in declaration order.
var HospitalTypes = []Choice{
	{Code: TypePublic, Label: "Công lập"},
	{Code: TypePrivate, Label: "Tư nhân"},
	{Code: TypeClinic, Label: "Phòng khám"},
}

// Districts lists the Ho Chi Minh City districts in declaration order.
var Districts = []Choice{
	{Code: "quan1", Label: "Quận 1"},
	{Code: "quan2", Label: "Quận 2"},
	{Code: "quan3", Label: "Quận 3"},
	{Code: "quan4", Label: "Quận 4"},
	{Code: "quan5", Label: "Quận 5"},
	{Code: "quan6", Label: "Quận 6"},
	{Code: "quan7", Label: "Quận 7"},
	{Code: "quan8", Label: "Quận 8"},
	{Code: "quan9", Label: "Quận 9"},
	{Code: "quan10", Label: "Quận 10"},
	{Code: "quan11", Label: "Quận 11"},
	{Code: "quan12", Label: "Quận 12"},
	{Code: "binhthanh", Label: "Quận Bình Thạnh"},
	{Code: "govap", Label: "Quận Gò Vấp"},
	{Code: "phunhuan", Label: "Quận Phú Nhuận"},
	{Code: "tanbinh", Label: "Quận Tân Bình"},
	{Code: "tanphu", Label: "Quận Tân Phú"},
	{Code: "thuduc", Label: "Quận Thủ Đức"},
	{Code: "binhtan", Label: "Quận Bình Tân"},
	{Code: "hocmon", Label: "Huyện Hóc Môn"},
	{Code: "cuchi", Label: "Huyện Củ Chi"},
	{Code: "nhabe", Label: "Huyện Nhà Bè"},
	{Code: "canggio", Label: "Huyện Cần Giờ"},
}

// Specialty codes referenced outside the table.
const (
	SpecialtyGeneral    = "general"
	SpecialtyCardiology = "cardiology"
)

// Specialties lists the medical specialties in declaration order.
var Specialties = []Choice{
	{Code: SpecialtyGeneral, Label: "Đa khoa"},
	{Code: "pediatrics", Label: "Nhi"},
	{Code: "obstetrics", Label: "Sản"},
	{Code: SpecialtyCardiology, Label: "Tim mạch"},
	{Code: "oncology", Label: "Ung bướu"},
	{Code: "neurology", Label: "Thần kinh"},
	{Code: "orthopedics", Label: "Chỉnh hình"},
	{Code: "ophthalmology", Label: "Mắt"},
	{Code: "dentistry", Label: "Răng hàm mặt"},
	{Code: "dermatology", Label: "Da liễu"},
}

// City is appended to every full address.
const City = "TP. Hồ Chí Minh"

var (
	typeLabels      = index(HospitalTypes)
	districtLabels  = index(Districts)
	specialtyLabels = index(Specialties)
)

func index(choices []Choice) map[string]string {
	m := make(map[string]string, len(choices))
	for _, c := range choices {
		m[c.Code] = c.Label
	}
	return m
}

// IsHospitalType reports whether code is a known hospital type.
func IsHospitalType(code string) bool {
	_, ok := typeLabels[code]
	return ok
}

// IsDistrict reports whether code is a known district.
func IsDistrict(code string) bool {
	_, ok := districtLabels[code]
	return ok
}

// IsSpecialty reports whether code is a known specialty.
func IsSpecialty(code string) bool {
	_, ok := specialtyLabels[code]
	return ok
}

// TypeLabel returns the label for a hospital type code, or the code itself
// when it is unknown.
func TypeLabel(code string) string { return labelOr(typeLabels, code) }

// DistrictLabel returns the label for a district code.
func DistrictLabel(code string) string { return labelOr(districtLabels, code) }

// SpecialtyLabel returns the label for a specialty code.
func SpecialtyLabel(code string) string { return labelOr(specialtyLabels, code) }

func labelOr(m map[string]string, code string) string {
	if l, ok := m[code]; ok {
		return l
	}
	return code
}

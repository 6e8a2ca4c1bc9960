package clinic

// Info holds the static facts about the clinic used by the chatbot,
// SMS templates and rule-based answers.
type Info struct {
	Name              string
	Address           string
	Hotline           string
	WorkingHours      string
	Services          []string
	InsurancePartners []string
}

// DefaultInfo returns the published facts for Phòng Khám Đa Khoa Minh Giang.
func DefaultInfo() Info {
	return Info{
		Name:         "Phòng Khám Đa Khoa Minh Giang",
		Address:      "Khu đô thị Pom La, Điện Biên Phủ, Vietnam",
		Hotline:      "037 845 6839",
		WorkingHours: "Thứ 2 - Chủ nhật, 7:00 - 20:00",
		Services: []string{
			"Khám tổng quát",
			"Sản phụ khoa",
			"Tim mạch",
			"Mắt",
			"Xét nghiệm",
			"Tiêm chủng",
			"Chẩn đoán hình ảnh",
			"Tư vấn sức khỏe",
		},
		InsurancePartners: []string{
			"Blue Cross",
			"Manulife",
			"Allianz",
			"AXA",
			"Pacific Cross",
			"AIG",
			"FWD",
		},
	}
}

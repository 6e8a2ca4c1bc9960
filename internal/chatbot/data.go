package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/clinic"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/equipment"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/vouchers"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// keywordGroup names one topic the data responder can answer. Groups are
// tried in slice order; the first whose keywords match wins.
type keywordGroup struct {
	name     string
	keywords []string
}

var dataGroups = []keywordGroup{
	{"doctors", []string{"bác sĩ", "bac si", "doctor"}},
	{"specialties", []string{"chuyên khoa", "chuyen khoa", "khoa nào", "dịch vụ", "dich vu", "khám gì", "kham gi"}},
	{"equipment", []string{"thiết bị", "thiet bi", "máy móc", "may moc", "trang thiết bị"}},
	{"hours", []string{"giờ", "gio", "mấy giờ", "thời gian", "thoi gian", "làm việc", "lam viec", "mở cửa", "mo cua"}},
	{"location", []string{"địa chỉ", "dia chi", "ở đâu", "o dau", "đường nào", "chỗ nào"}},
	{"booking", []string{"đặt lịch", "dat lich", "đặt hẹn", "dat hen", "lịch hẹn", "lich hen", "book"}},
	{"insurance", []string{"bảo hiểm", "bao hiem", "bhyt"}},
	{"price", []string{"giá", "gia", "chi phí", "chi phi", "bao nhiêu tiền", "bao nhieu tien", "phí khám"}},
}

// DataResponder composes answers from live clinic data. A database error
// surfaces as "no match" so the resolver can fall through; empty data
// still produces a helpful sentence.
type DataResponder struct {
	doctors   doctors.Store
	equipment equipment.Store
	vouchers  vouchers.Store
	clinic    clinic.Info
	logger    *logging.Logger
}

// NewDataResponder wires the data-driven answers.
func NewDataResponder(docs doctors.Store, equip equipment.Store, vouch vouchers.Store, info clinic.Info, logger *logging.Logger) *DataResponder {
	if logger == nil {
		logger = logging.Default()
	}
	return &DataResponder{doctors: docs, equipment: equip, vouchers: vouch, clinic: info, logger: logger}
}

// Respond answers the message from live data, or returns "" when no
// keyword group matches or the lookup fails.
func (d *DataResponder) Respond(ctx context.Context, message string) string {
	lower := strings.ToLower(message)
	for _, group := range dataGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return d.compose(ctx, group.name)
			}
		}
	}
	return ""
}

func (d *DataResponder) compose(ctx context.Context, topic string) string {
	switch topic {
	case "doctors":
		return d.doctorAnswer(ctx)
	case "specialties":
		return d.specialtyAnswer(ctx)
	case "equipment":
		return d.equipmentAnswer(ctx)
	case "hours":
		return fmt.Sprintf("Phòng khám làm việc %s. Quý khách có thể đến trực tiếp hoặc đặt lịch trước qua website để không phải chờ đợi.", d.clinic.WorkingHours)
	case "location":
		return fmt.Sprintf("%s tọa lạc tại %s. Hotline: %s.", d.clinic.Name, d.clinic.Address, d.clinic.Hotline)
	case "booking":
		return fmt.Sprintf("Quý khách có thể đặt lịch khám ngay trên website bằng cách chọn chuyên khoa, ngày và giờ mong muốn, hoặc gọi hotline %s để được hỗ trợ.", d.clinic.Hotline)
	case "insurance":
		return fmt.Sprintf("Phòng khám hiện liên kết với các đối tác bảo hiểm: %s. Quý khách vui lòng mang theo thẻ bảo hiểm khi đến khám.", strings.Join(d.clinic.InsurancePartners, ", "))
	case "price":
		return d.priceAnswer(ctx)
	}
	return ""
}

func (d *DataResponder) doctorAnswer(ctx context.Context) string {
	docs, err := d.doctors.RecentActive(ctx, 4)
	if err != nil {
		d.logger.Warn("data responder: doctors fetch failed", "error", err)
		return ""
	}
	if len(docs) == 0 {
		return fmt.Sprintf("Đội ngũ bác sĩ của phòng khám đang được cập nhật. Quý khách vui lòng gọi hotline %s để biết thêm chi tiết.", d.clinic.Hotline)
	}
	var b strings.Builder
	b.WriteString("Một số bác sĩ đang công tác tại phòng khám:\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "- %s (%s)\n", doc.Name, doc.Specialty)
	}
	b.WriteString("Quý khách có thể chọn bác sĩ khi đặt lịch khám trên website.")
	return b.String()
}

func (d *DataResponder) specialtyAnswer(ctx context.Context) string {
	specialties, err := d.doctors.DistinctActiveSpecialties(ctx)
	if err != nil {
		d.logger.Warn("data responder: specialties fetch failed", "error", err)
		return ""
	}
	if len(specialties) == 0 {
		return fmt.Sprintf("Phòng khám cung cấp các dịch vụ: %s.", strings.Join(d.clinic.Services, ", "))
	}
	return fmt.Sprintf("Phòng khám hiện có các chuyên khoa: %s. Quý khách muốn đặt lịch khoa nào ạ?", strings.Join(specialties, ", "))
}

func (d *DataResponder) equipmentAnswer(ctx context.Context) string {
	items, err := d.equipment.RecentActive(ctx, 3)
	if err != nil {
		d.logger.Warn("data responder: equipment fetch failed", "error", err)
		return ""
	}
	if len(items) == 0 {
		return "Phòng khám được trang bị hệ thống máy móc hiện đại phục vụ chẩn đoán và điều trị."
	}
	var b strings.Builder
	b.WriteString("Phòng khám được trang bị các thiết bị hiện đại như:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item.Name)
	}
	b.WriteString("nhằm phục vụ chẩn đoán và điều trị chính xác nhất.")
	return b.String()
}

// priceAnswer is static guidance; active promotions are appended best
// effort and a lookup failure does not block the answer.
func (d *DataResponder) priceAnswer(ctx context.Context) string {
	answer := fmt.Sprintf("Chi phí khám phụ thuộc vào chuyên khoa và dịch vụ. Quý khách vui lòng gọi hotline %s để được báo giá chi tiết.", d.clinic.Hotline)
	promos, err := d.vouchers.ListActive(ctx, 5)
	if err != nil || len(promos) == 0 {
		return answer
	}
	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\nƯu đãi đang áp dụng:\n")
	for _, v := range promos {
		fmt.Fprintf(&b, "- %s: giảm %d%%\n", v.Code, v.DiscountPercent)
	}
	return strings.TrimRight(b.String(), "\n")
}

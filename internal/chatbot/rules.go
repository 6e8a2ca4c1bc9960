package chatbot

import (
	"fmt"
	"strings"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/clinic"
)

// RuleResponder is the terminal fallback: fixed Vietnamese answers keyed
// on the same substring matching as the data responder, ending in a
// catch-all. It never returns an empty string.
type RuleResponder struct {
	clinic clinic.Info
	rules  []rule
}

type rule struct {
	keywords []string
	answer   string
}

// NewRuleResponder builds the canned answers from the clinic facts.
func NewRuleResponder(info clinic.Info) *RuleResponder {
	return &RuleResponder{
		clinic: info,
		rules: []rule{
			{
				keywords: []string{"xin chào", "chào", "hello", "hi ", "alo"},
				answer:   fmt.Sprintf("Xin chào! Tôi là trợ lý ảo của %s. Tôi có thể giúp gì cho quý khách?", info.Name),
			},
			{
				keywords: []string{"giờ", "gio", "thời gian", "thoi gian", "làm việc", "lam viec", "mở cửa", "mo cua"},
				answer:   fmt.Sprintf("Phòng khám làm việc %s.", info.WorkingHours),
			},
			{
				keywords: []string{"địa chỉ", "dia chi", "ở đâu", "o dau"},
				answer:   fmt.Sprintf("Phòng khám tọa lạc tại %s.", info.Address),
			},
			{
				keywords: []string{"điện thoại", "dien thoai", "hotline", "số máy", "liên hệ", "lien he"},
				answer:   fmt.Sprintf("Quý khách có thể liên hệ hotline %s trong giờ làm việc.", info.Hotline),
			},
			{
				keywords: []string{"dịch vụ", "dich vu", "khám gì", "kham gi"},
				answer:   fmt.Sprintf("Phòng khám cung cấp các dịch vụ: %s.", strings.Join(info.Services, ", ")),
			},
			{
				keywords: []string{"bác sĩ", "bac si", "doctor"},
				answer:   "Phòng khám có đội ngũ bác sĩ chuyên khoa giàu kinh nghiệm. Quý khách có thể xem danh sách bác sĩ và đặt lịch trên website.",
			},
			{
				keywords: []string{"đặt lịch", "dat lich", "đặt hẹn", "dat hen", "book"},
				answer:   fmt.Sprintf("Quý khách có thể đặt lịch khám trên website hoặc gọi hotline %s để được hỗ trợ.", info.Hotline),
			},
			{
				keywords: []string{"bảo hiểm", "bao hiem", "bhyt"},
				answer:   fmt.Sprintf("Phòng khám chấp nhận bảo hiểm của các đối tác: %s.", strings.Join(info.InsurancePartners, ", ")),
			},
			{
				keywords: []string{"giá", "gia", "chi phí", "chi phi", "phí khám"},
				answer:   fmt.Sprintf("Chi phí khám tùy theo dịch vụ. Quý khách vui lòng gọi hotline %s để được báo giá chi tiết.", info.Hotline),
			},
		},
	}
}

// catchAll closes every unanswered conversation politely.
func (r *RuleResponder) catchAll() string {
	return fmt.Sprintf("Cảm ơn quý khách đã liên hệ %s. Quý khách vui lòng gọi hotline %s hoặc để lại câu hỏi trên website, chúng tôi sẽ phản hồi sớm nhất.", r.clinic.Name, r.clinic.Hotline)
}

// Respond always returns a non-empty answer.
func (r *RuleResponder) Respond(message string) string {
	lower := strings.ToLower(message)
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if strings.Contains(lower, kw) {
				return rl.answer
			}
		}
	}
	return r.catchAll()
}

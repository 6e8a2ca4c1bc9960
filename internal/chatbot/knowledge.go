package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/clinic"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/doctors"
	"github.com/DucLamDev/quanlyphongkham-BE/internal/equipment"
	"github.com/DucLamDev/quanlyphongkham-BE/pkg/logging"
)

// placeholderKnowledge grounds provider prompts when the database is
// unreachable. It never varies.
const placeholderKnowledge = "Thông tin phòng khám tạm thời không đầy đủ. Hãy trả lời chung chung và mời khách gọi hotline để được tư vấn chi tiết."

// KnowledgeBase builds the grounding snapshot embedded in provider
// prompts.
type KnowledgeBase struct {
	doctors   doctors.Store
	equipment equipment.Store
	clinic    clinic.Info
	logger    *logging.Logger
}

// NewKnowledgeBase wires the snapshot builder.
func NewKnowledgeBase(docs doctors.Store, equip equipment.Store, info clinic.Info, logger *logging.Logger) *KnowledgeBase {
	if logger == nil {
		logger = logging.Default()
	}
	return &KnowledgeBase{doctors: docs, equipment: equip, clinic: info, logger: logger}
}

// Snapshot summarizes current clinic data as a short text block: up to 5
// newest active doctors, the distinct active specialties, up to 3 newest
// active equipment items and the static clinic facts. Any fetch failure
// yields a fixed placeholder instead of an error.
func (k *KnowledgeBase) Snapshot(ctx context.Context) string {
	docs, err := k.doctors.RecentActive(ctx, 5)
	if err != nil {
		k.logger.Warn("knowledge snapshot: doctors fetch failed", "error", err)
		return placeholderKnowledge
	}
	specialties, err := k.doctors.DistinctActiveSpecialties(ctx)
	if err != nil {
		k.logger.Warn("knowledge snapshot: specialties fetch failed", "error", err)
		return placeholderKnowledge
	}
	equip, err := k.equipment.RecentActive(ctx, 3)
	if err != nil {
		k.logger.Warn("knowledge snapshot: equipment fetch failed", "error", err)
		return placeholderKnowledge
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nĐịa chỉ: %s\nHotline: %s\nGiờ làm việc: %s\n", k.clinic.Name, k.clinic.Address, k.clinic.Hotline, k.clinic.WorkingHours)

	if len(specialties) > 0 {
		fmt.Fprintf(&b, "Chuyên khoa: %s\n", strings.Join(specialties, ", "))
	}
	if len(docs) > 0 {
		b.WriteString("Bác sĩ:\n")
		for _, d := range docs {
			fmt.Fprintf(&b, "- %s (%s)\n", d.Name, d.Specialty)
		}
	}
	if len(equip) > 0 {
		b.WriteString("Trang thiết bị:\n")
		for _, e := range equip {
			fmt.Fprintf(&b, "- %s (%s)\n", e.Name, e.Status)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

package calendar

import (
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

// ===============================
// Filtering
// ===============================

const TypeAll = "all"

// Criteria is the operator's filter selection. Every active criterion
// must pass (logical AND); none disables another.
type Criteria struct {
	Type      string `json:"type"`
	DebtOnly  bool   `json:"debt_only"`
	TodayOnly bool   `json:"today_only"`
	StaffID   *uint  `json:"staff_id"`
}

// Filter applies the criteria to an already-loaded appointment set.
// Pure and order-preserving.
func Filter(appointments []models.Appointment, crit Criteria, now time.Time) []models.Appointment {
	out := make([]models.Appointment, 0, len(appointments))

	for _, ap := range appointments {
		if crit.Type != "" && crit.Type != TypeAll && ap.TreatmentType != crit.Type {
			continue
		}
		if crit.DebtOnly && ap.PaymentStatus != "debt" {
			continue
		}
		if crit.TodayOnly && !SameDay(now, ap.ScheduledAt) {
			continue
		}
		if crit.StaffID != nil {
			if ap.StaffMemberID == nil || *ap.StaffMemberID != *crit.StaffID {
				continue
			}
		}
		out = append(out, ap)
	}

	return out
}

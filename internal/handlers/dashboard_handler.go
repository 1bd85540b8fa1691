package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/cache"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/dto"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/timezone"
)

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c}
}

type dashboardPayload struct {
	Date              string                   `json:"date"`
	TodayAppointments []dto.AppointmentListDTO `json:"today_appointments"`
	OpenCount         int64                    `json:"open_count"`
	DebtCount         int64                    `json:"debt_count"`
	ClientCount       int64                    `json:"client_count"`
}

// Summary is the landing-screen payload: today's agenda plus the
// clinic-wide counters. Cached per clinic; writes that change the
// numbers invalidate the prefix.
func (h *DashboardHandler) Summary(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	ctx := c.Request.Context()

	key := fmt.Sprintf("dashboard:%d", clinicID)

	var cached dashboardPayload
	if hit, err := h.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		httpresp.OK(c, cached)
		return
	}

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_clinic", "Failed to load clinic settings.")
		return
	}

	now := timezone.NowIn(clinic.Timezone)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)

	var today []models.Appointment
	if err := h.db.
		Preload("Client").
		Where("clinic_id = ? AND scheduled_at >= ? AND scheduled_at <= ?", clinicID, dayStart, dayEnd).
		Order("scheduled_at ASC").
		Find(&today).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load today's appointments.")
		return
	}

	payload := dashboardPayload{
		Date:              dayStart.Format("2006-01-02"),
		TodayAppointments: make([]dto.AppointmentListDTO, 0, len(today)),
	}
	for _, ap := range today {
		payload.TodayAppointments = append(payload.TodayAppointments, dto.AppointmentListDTO{
			ID:            ap.ID,
			ScheduledAt:   ap.ScheduledAt,
			TreatmentType: ap.TreatmentType,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			ClientName:    ap.Client.FullName,
			StaffMemberID: ap.StaffMemberID,
		})
	}

	if err := h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND status = ?", clinicID, "open").
		Count(&payload.OpenCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to count open appointments.")
		return
	}

	if err := h.db.Model(&models.Appointment{}).
		Where("clinic_id = ? AND payment_status = ?", clinicID, "debt").
		Count(&payload.DebtCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to count debts.")
		return
	}

	if err := h.db.Model(&models.Client{}).
		Where("clinic_id = ?", clinicID).
		Count(&payload.ClientCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to count clients.")
		return
	}

	_ = h.cache.SetJSON(ctx, key, payload)

	httpresp.OK(c, payload)
}

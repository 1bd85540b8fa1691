package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/cache"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/dto"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type ReportHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReportHandler(db *gorm.DB, c *cache.Cache) *ReportHandler {
	return &ReportHandler{db: db, cache: c}
}

type debtEntry struct {
	AppointmentID uint    `json:"appointment_id"`
	ClientName    string  `json:"client_name"`
	ScheduledAt   string  `json:"scheduled_at"`
	Amount        float64 `json:"amount"`
}

type reportPayload struct {
	Debts     []debtEntry              `json:"debts"`
	DebtTotal float64                  `json:"debt_total"`
	Recent    []dto.AppointmentListDTO `json:"recent"`
}

// Summary lists outstanding debts and the most recently closed
// treatments. Cached per clinic under the reports prefix.
func (h *ReportHandler) Summary(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	ctx := c.Request.Context()

	key := fmt.Sprintf("reports:%d", clinicID)

	var cached reportPayload
	if hit, err := h.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		httpresp.OK(c, cached)
		return
	}

	var debts []models.Appointment
	if err := h.db.
		Preload("Client").
		Where("clinic_id = ? AND payment_status = ?", clinicID, "debt").
		Order("scheduled_at DESC").
		Find(&debts).Error; err != nil {
		httperr.Internal(c, "failed_to_load_reports", "Failed to load debt report.")
		return
	}

	var recent []models.Appointment
	if err := h.db.
		Preload("Client").
		Where("clinic_id = ? AND status = ?", clinicID, "closed").
		Order("closed_at DESC").
		Limit(20).
		Find(&recent).Error; err != nil {
		httperr.Internal(c, "failed_to_load_reports", "Failed to load recent treatments.")
		return
	}

	payload := reportPayload{
		Debts:  make([]debtEntry, 0, len(debts)),
		Recent: make([]dto.AppointmentListDTO, 0, len(recent)),
	}

	for _, ap := range debts {
		payload.Debts = append(payload.Debts, debtEntry{
			AppointmentID: ap.ID,
			ClientName:    ap.Client.FullName,
			ScheduledAt:   ap.ScheduledAt.Format("2006-01-02 15:04"),
			Amount:        ap.PaymentAmount,
		})
		payload.DebtTotal += ap.PaymentAmount
	}

	for _, ap := range recent {
		payload.Recent = append(payload.Recent, dto.AppointmentListDTO{
			ID:            ap.ID,
			ScheduledAt:   ap.ScheduledAt,
			TreatmentType: ap.TreatmentType,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			ClientName:    ap.Client.FullName,
			StaffMemberID: ap.StaffMemberID,
		})
	}

	_ = h.cache.SetJSON(ctx, key, payload)

	httpresp.OK(c, payload)
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns the clinic's audit trail, newest first. Admin only,
// enforced by the route group.
func (h *AuditLogsHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			httperr.BadRequest(c, "invalid_limit", "Limit must be between 1 and 200.")
			return
		}
		limit = parsed
	}

	q := h.db.Where("clinic_id = ?", clinicID)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Failed to list audit logs.")
		return
	}

	httpresp.List(c, logs)
}

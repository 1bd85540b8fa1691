package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/timezone"
)

type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

type UpdateClinicConfigRequest struct {
	Timezone         *string `json:"timezone"`
	WeekStartDay     *int    `json:"week_start_day"`
	DayStartHour     *int    `json:"day_start_hour"`
	DayEndHour       *int    `json:"day_end_hour"`
	RequirePainLevel *bool   `json:"require_pain_level"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinicIDVal, _ := c.Get(middleware.ContextClinicID)
	clinicID := clinicIDVal.(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Failed to load clinic settings.")
		return
	}

	httpresp.OK(c, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	clinicIDVal, _ := c.Get(middleware.ContextClinicID)
	clinicID := clinicIDVal.(uint)

	var clinic models.Clinic
	if err := h.db.First(&clinic, clinicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "clinic_not_found", "Clinic not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_clinic", "Failed to load clinic settings.")
		return
	}

	var req UpdateClinicConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone name.")
			return
		}
		clinic.Timezone = *req.Timezone
	}

	if req.WeekStartDay != nil {
		if *req.WeekStartDay < 0 || *req.WeekStartDay > 6 {
			httperr.BadRequest(c, "invalid_week_start", "Week start must be a weekday 0-6.")
			return
		}
		clinic.WeekStartDay = *req.WeekStartDay
	}

	if req.DayStartHour != nil {
		clinic.DayStartHour = *req.DayStartHour
	}
	if req.DayEndHour != nil {
		clinic.DayEndHour = *req.DayEndHour
	}
	if clinic.DayStartHour < 0 || clinic.DayEndHour > 24 || clinic.DayStartHour >= clinic.DayEndHour {
		httperr.BadRequest(c, "invalid_day_hours", "Day view hour range is invalid.")
		return
	}

	if req.RequirePainLevel != nil {
		clinic.RequirePainLevel = *req.RequirePainLevel
	}

	if err := h.db.Save(&clinic).Error; err != nil {
		httperr.Internal(c, "failed_to_update_clinic", "Failed to save clinic settings.")
		return
	}

	httpresp.OK(c, clinic)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type PlanHandler struct {
	db *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

func (h *PlanHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var plans []models.TreatmentPlan
	if err := q.Order("name ASC").Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Failed to list treatment plans.")
		return
	}

	httpresp.List(c, plans)
}

type PlanRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Sessions    int     `json:"sessions"`
	Price       float64 `json:"price"`
	Active      *bool   `json:"active"`
}

func (h *PlanHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	plan := models.TreatmentPlan{
		ClinicID:    clinicID,
		Name:        req.Name,
		Description: req.Description,
		Sessions:    req.Sessions,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Create(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_create_plan", "Failed to create treatment plan.")
		return
	}

	httpresp.Created(c, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var plan models.TreatmentPlan
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&plan).Error; err != nil {
		httperr.NotFound(c, "plan_not_found", "Treatment plan not found.")
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Sessions = req.Sessions
	plan.Price = req.Price
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := h.db.Save(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_update_plan", "Failed to update treatment plan.")
		return
	}

	httpresp.OK(c, plan)
}

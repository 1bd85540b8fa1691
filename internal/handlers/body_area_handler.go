package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

// Body-area catalog behind the full-body capture mode.
type BodyAreaHandler struct {
	db *gorm.DB
}

func NewBodyAreaHandler(db *gorm.DB) *BodyAreaHandler {
	return &BodyAreaHandler{db: db}
}

func (h *BodyAreaHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	q := h.db.Where("clinic_id = ?", clinicID)
	if c.Query("active") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var areas []models.BodyAreaConfig
	if err := q.Order("sort_order ASC").Find(&areas).Error; err != nil {
		httperr.Internal(c, "failed_to_list_body_areas", "Failed to list body areas.")
		return
	}

	httpresp.List(c, areas)
}

type CreateBodyAreaRequest struct {
	AreaName  string `json:"area_name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

func (h *BodyAreaHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req CreateBodyAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	area := models.BodyAreaConfig{
		ClinicID:  clinicID,
		AreaName:  req.AreaName,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}

	if err := h.db.Create(&area).Error; err != nil {
		httperr.Internal(c, "failed_to_create_body_area", "Failed to create body area.")
		return
	}

	httpresp.Created(c, area)
}

type UpdateBodyAreaRequest struct {
	AreaName  *string `json:"area_name"`
	IsActive  *bool   `json:"is_active"`
	SortOrder *int    `json:"sort_order"`
}

func (h *BodyAreaHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var area models.BodyAreaConfig
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&area).Error; err != nil {
		httperr.NotFound(c, "body_area_not_found", "Body area not found.")
		return
	}

	var req UpdateBodyAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.AreaName != nil {
		area.AreaName = *req.AreaName
	}
	if req.IsActive != nil {
		area.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		area.SortOrder = *req.SortOrder
	}

	if err := h.db.Save(&area).Error; err != nil {
		httperr.Internal(c, "failed_to_update_body_area", "Failed to update body area.")
		return
	}

	httpresp.OK(c, area)
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// List returns the clinic's staff members, the columns of the day and
// week calendar views.
func (h *StaffHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var staff []models.User
	if err := h.db.
		Where("clinic_id = ?", clinicID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Failed to list staff members.")
		return
	}

	out := make([]gin.H, 0, len(staff))
	for i := range staff {
		out = append(out, gin.H{
			"id":    staff[i].ID,
			"name":  staff[i].Name,
			"role":  staff[i].Role,
			"color": staff[i].Color,
		})
	}

	httpresp.List(c, out)
}

type UpdateStaffColorRequest struct {
	Color string `json:"color" binding:"required"`
}

func (h *StaffHandler) UpdateColor(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var user models.User
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&user).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	var req UpdateStaffColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	user.Color = req.Color
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Failed to update staff member.")
		return
	}

	httpresp.OK(c, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"color": user.Color,
	})
}

package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/validators"
)

type ClientHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewClientHandler(db *gorm.DB, repo domain.Repository) *ClientHandler {
	return &ClientHandler{db: db, repo: repo}
}

// ======================================================
// LIST / SEARCH
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("clinic_id = ?", clinicID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("full_name ASC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Failed to list clients.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

type ClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := checkClientEmail(req.Email); err != nil {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	client := models.Client{
		ClinicID: clinicID,
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Notes:    req.Notes,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Failed to create client.")
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := checkClientEmail(req.Email); err != nil {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	client.FullName = req.FullName
	client.Phone = req.Phone
	client.Email = strings.ToLower(strings.TrimSpace(req.Email))
	client.Notes = req.Notes

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Failed to update client.")
		return
	}

	httpresp.OK(c, client)
}

// ======================================================
// TREATED-AREA HISTORY
// ======================================================

type areaHistoryEntry struct {
	AreaName        string  `json:"area_name"`
	TreatmentCount  int     `json:"treatment_count"`
	NextNumber      int     `json:"next_number"`
	LastHeatLevel   float64 `json:"last_heat_level"`
	HasPriorTreated bool    `json:"has_prior_treated"`
}

// History summarizes, per body area, how many closed treatments the
// client had and the intensity used last.
func (h *ClientHandler) History(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND clinic_id = ?", id, clinicID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	rows, err := h.repo.ListClosedAreaHistory(c.Request.Context(), client.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_history", "Failed to load treatment history.")
		return
	}

	history := domain.BuildHistory(rows)

	seen := make(map[string]bool)
	entries := make([]areaHistoryEntry, 0, len(rows))
	for _, row := range rows {
		if seen[row.AreaName] {
			continue
		}
		seen[row.AreaName] = true

		last, ok := history.LastHeatLevelFor(row.AreaName)
		entries = append(entries, areaHistoryEntry{
			AreaName:        row.AreaName,
			TreatmentCount:  history.TreatmentNumberFor(row.AreaName) - 1,
			NextNumber:      history.TreatmentNumberFor(row.AreaName),
			LastHeatLevel:   last,
			HasPriorTreated: ok,
		})
	}

	httpresp.OK(c, gin.H{
		"client_id": client.ID,
		"areas":     entries,
	})
}

func checkClientEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if !validators.IsEmailDomainValid(email) {
		return httperr.ErrBusiness("invalid_email_domain")
	}
	return nil
}

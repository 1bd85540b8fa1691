package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/audit"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/cache"
	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/timezone"
	ucTreatment "github.com/SilkSkinClinic/clinic-scheduler/internal/usecase/treatment"
)

// WorkflowHandler is the HTTP surface of the treatment close-out state
// machine. Sessions live in memory; nothing touches the database until
// commit.
type WorkflowHandler struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	registry *ucTreatment.Registry
	cache    *cache.Cache
}

func NewWorkflowHandler(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	registry *ucTreatment.Registry,
	c *cache.Cache,
) *WorkflowHandler {
	return &WorkflowHandler{
		repo:     repo,
		audit:    dispatcher,
		registry: registry,
		cache:    c,
	}
}

// ======================================================
// SESSION LIFECYCLE
// ======================================================

func (h *WorkflowHandler) Start(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	wf, err := ucTreatment.StartWorkflow(
		c.Request.Context(),
		h.repo,
		h.audit,
		clinicID,
		uint(appointmentID),
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.registry.Put(wf)

	httpresp.Created(c, workflowState(wf))
}

func (h *WorkflowHandler) State(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}
	httpresp.OK(c, workflowState(wf))
}

// Abandon discards the session. No persisted side effects to undo.
func (h *WorkflowHandler) Abandon(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	h.registry.Remove(wf.ID())
	c.Status(http.StatusNoContent)
}

// ======================================================
// AREA CAPTURE
// ======================================================

type SetAreaModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *WorkflowHandler) SetAreaMode(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	var req SetAreaModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := wf.SetAreaMode(req.Mode); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

type UpdateAreaRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func (h *WorkflowHandler) UpdateArea(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httperr.BadRequest(c, "invalid_index", "Area index must be numeric.")
		return
	}

	var req UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := wf.UpdateArea(index, req.Field, req.Value); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

func (h *WorkflowHandler) AddArea(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	if err := wf.AddArea(); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *WorkflowHandler) Advance(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	if err := wf.Advance(); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

func (h *WorkflowHandler) Retreat(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	if err := wf.Retreat(); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

// ======================================================
// PAYMENT / FOLLOW-UP INPUT
// ======================================================

type SetPaymentRequest struct {
	Status string  `json:"status" binding:"required"`
	Amount float64 `json:"amount"`
}

func (h *WorkflowHandler) SetPayment(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	var req SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := wf.SetPaymentStatus(req.Status, req.Amount); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

type SetReminderRequest struct {
	Requested bool `json:"requested"`
	Months    int  `json:"months"`
}

func (h *WorkflowHandler) SetReminder(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	var req SetReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := wf.SetReminder(req.Requested, req.Months); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

type SetNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *WorkflowHandler) SetNotes(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	var req SetNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if err := wf.SetNotes(req.Notes); err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, workflowState(wf))
}

// ======================================================
// COMMIT
// ======================================================

func (h *WorkflowHandler) Commit(c *gin.Context) {
	wf, ok := h.session(c)
	if !ok {
		return
	}

	now := timezone.NowIn(wf.Clinic().Timezone)

	result, err := wf.Commit(c.Request.Context(), now)
	if err != nil {
		var ce *ucTreatment.CommitError
		if errors.As(err, &ce) {
			// Earlier sub-steps may be persisted; the session stays
			// alive so the operator can retry.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error_code":  "commit_failed",
				"failed_step": string(ce.Step),
				"message":     "Closing the treatment failed part way; retry the commit.",
			})
			return
		}
		writeDomainError(c, err)
		return
	}

	h.registry.Remove(wf.ID())
	invalidateClinicViews(c, h.cache, wf.ClinicID())

	httpresp.OK(c, result)
}

// ======================================================
// HELPERS
// ======================================================

// session resolves the token, enforcing that the workflow belongs to
// the authenticated clinic. Writes the error response itself.
func (h *WorkflowHandler) session(c *gin.Context) (*ucTreatment.Workflow, bool) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	wf, ok := h.registry.Get(c.Param("token"))
	if !ok || wf.ClinicID() != clinicID {
		httperr.NotFound(c, "workflow_not_found", "Workflow session not found.")
		return nil, false
	}

	return wf, true
}

type workflowAreaView struct {
	AreaName        string  `json:"area_name"`
	HeatLevel       string  `json:"heat_level"`
	PainLevel       string  `json:"pain_level"`
	NameFixed       bool    `json:"name_fixed"`
	TreatmentNumber int     `json:"treatment_number"`
	LastHeatLevel   float64 `json:"last_heat_level"`
	HasPriorTreated bool    `json:"has_prior_treated"`
}

// workflowState snapshots the session for the client, decorating each
// area row with the client's history for that area.
func workflowState(wf *ucTreatment.Workflow) gin.H {
	history := wf.History()

	areas := wf.Areas()
	views := make([]workflowAreaView, 0, len(areas))
	for _, entry := range areas {
		last, treated := history.LastHeatLevelFor(entry.AreaName)
		views = append(views, workflowAreaView{
			AreaName:        entry.AreaName,
			HeatLevel:       entry.HeatLevel,
			PainLevel:       entry.PainLevel,
			NameFixed:       entry.NameFixed,
			TreatmentNumber: history.TreatmentNumberFor(entry.AreaName),
			LastHeatLevel:   last,
			HasPriorTreated: treated,
		})
	}

	return gin.H{
		"token":            wf.ID(),
		"appointment_id":   wf.AppointmentID(),
		"step":             wf.Step().String(),
		"area_mode":        string(wf.AreaMode()),
		"areas":            views,
		"payment_status":   wf.PaymentStatus(),
		"reminder_options": ucTreatment.ReminderMonthOptions,
	}
}

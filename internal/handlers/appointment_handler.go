package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/cache"
	cal "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/calendar"
	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httpresp"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/middleware"
	ucCalendar "github.com/SilkSkinClinic/clinic-scheduler/internal/usecase/calendar"
	ucTreatment "github.com/SilkSkinClinic/clinic-scheduler/internal/usecase/treatment"
)

type AppointmentHandler struct {
	repo     domain.Repository
	schedule *ucTreatment.ScheduleAppointment
	browse   *ucCalendar.Browse
	cache    *cache.Cache
}

func NewAppointmentHandler(
	repo domain.Repository,
	schedule *ucTreatment.ScheduleAppointment,
	browse *ucCalendar.Browse,
	c *cache.Cache,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:     repo,
		schedule: schedule,
		browse:   browse,
		cache:    c,
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateAppointmentRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	StaffMemberID *uint  `json:"staff_member_id"`
	PlanID        *uint  `json:"plan_id"`
	TreatmentType string `json:"treatment_type" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	PaymentStatus string `json:"payment_status"`
	Notes         string `json:"notes"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.schedule.Execute(c.Request.Context(), ucTreatment.ScheduleAppointmentInput{
		ClinicID:      clinicID,
		UserID:        userID,
		ClientID:      req.ClientID,
		StaffMemberID: req.StaffMemberID,
		PlanID:        req.PlanID,
		TreatmentType: req.TreatmentType,
		Date:          req.Date,
		Time:          req.Time,
		PaymentStatus: req.PaymentStatus,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	invalidateClinicViews(c, h.cache, clinicID)

	httpresp.Created(c, ap)
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), clinicID, uint(id))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CALENDAR
// ======================================================

// Calendar returns the appointments of the window containing the
// reference date, filtered and bucketed for the requested view.
//
// Query params: date (YYYY-MM-DD, default today), view (month|week|day),
// type, debt_only, today_only, staff_id.
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	clinicID := c.MustGet(middleware.ContextClinicID).(uint)

	view := c.DefaultQuery("view", string(cal.GranularityMonth))
	if !cal.IsValidGranularity(view) {
		httperr.BadRequest(c, "invalid_view", "View must be month, week or day.")
		return
	}

	ref := cal.Today(time.Now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		// Anchor mid-day so the clinic timezone conversion cannot
		// move the reference onto a neighboring date.
		ref = parsed.Add(12 * time.Hour)
	}

	crit := cal.Criteria{
		Type:      c.DefaultQuery("type", cal.TypeAll),
		DebtOnly:  c.Query("debt_only") == "true",
		TodayOnly: c.Query("today_only") == "true",
	}
	if raw := c.Query("staff_id"); raw != "" {
		staffID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Staff id must be numeric.")
			return
		}
		id := uint(staffID)
		crit.StaffID = &id
	}

	out, err := h.browse.Execute(c.Request.Context(), ucCalendar.BrowseInput{
		ClinicID: clinicID,
		Date:     ref,
		View:     cal.Granularity(view),
		Criteria: crit,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// invalidateClinicViews drops the clinic's cached dashboard and report
// payloads after a write that changes them.
func invalidateClinicViews(c *gin.Context, store *cache.Cache, clinicID uint) {
	ctx := c.Request.Context()
	_ = store.InvalidatePrefix(ctx, fmt.Sprintf("dashboard:%d", clinicID))
	_ = store.InvalidatePrefix(ctx, fmt.Sprintf("reports:%d", clinicID))
}

package treatment

import (
	"context"
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/audit"
	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleAppointmentInput struct {
	ClinicID uint
	UserID   uint

	ClientID      uint
	StaffMemberID *uint
	PlanID        *uint

	TreatmentType string

	Date string
	Time string

	// Optional; empty means unset until the close-out workflow.
	PaymentStatus string

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

// ScheduleAppointment creates a new open appointment. Treatment
// details and payment are captured later by the workflow.
type ScheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewScheduleAppointment(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
) *ScheduleAppointment {
	return &ScheduleAppointment{
		repo:  repo,
		audit: dispatcher,
	}
}

func (uc *ScheduleAppointment) Execute(
	ctx context.Context,
	in ScheduleAppointmentInput,
) (*models.Appointment, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	if !domain.IsValidType(in.TreatmentType) {
		return nil, httperr.ErrBusiness("invalid_treatment_type")
	}

	scheduledAt, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(clinic.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	client, err := uc.repo.GetClient(ctx, in.ClinicID, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	if in.PlanID != nil {
		if _, err := uc.repo.GetPlan(ctx, in.ClinicID, *in.PlanID); err != nil {
			return nil, httperr.ErrBusiness("plan_not_found")
		}
	}

	paymentStatus := string(domain.PaymentUnset)
	if in.PaymentStatus != "" {
		if !domain.IsSettablePayment(in.PaymentStatus) {
			return nil, httperr.ErrBusiness("invalid_payment_status")
		}
		paymentStatus = in.PaymentStatus
	}

	ap := &models.Appointment{
		ClinicID:      in.ClinicID,
		ClientID:      client.ID,
		StaffMemberID: in.StaffMemberID,
		PlanID:        in.PlanID,
		TreatmentType: in.TreatmentType,
		ScheduledAt:   scheduledAt,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: paymentStatus,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: in.ClinicID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

package treatment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/audit"
	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

// ======================================================
// STEPS
// ======================================================

type Step int

const (
	StepAreaCapture Step = iota + 1
	StepPaymentCapture
	StepFollowUpCapture
)

func (s Step) String() string {
	switch s {
	case StepAreaCapture:
		return "area_capture"
	case StepPaymentCapture:
		return "payment_capture"
	case StepFollowUpCapture:
		return "follow_up_capture"
	}
	return "unknown"
}

// ReminderMonthOptions are the offsets the operator may pick for a
// follow-up visit.
var ReminderMonthOptions = []int{1, 2, 3, 6}

// ======================================================
// COMMIT RESULT / ERRORS
// ======================================================

// CommitStep identifies one sub-step of the ordered, non-transactional
// write sequence.
type CommitStep string

const (
	CommitStepAreas       CommitStep = "areas"
	CommitStepAppointment CommitStep = "appointment"
	CommitStepFollowUp    CommitStep = "follow_up"
)

// CommitError reports which sub-step failed. Earlier steps may already
// be persisted; the workflow keeps its state so the operator can retry.
type CommitError struct {
	Step CommitStep
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed at %s: %v", e.Step, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

type CommitResult struct {
	// Token identifies this workflow instance so a resumable retry
	// path can reference the attempt.
	Token string `json:"token"`

	Appointment   *models.Appointment `json:"appointment"`
	FollowUp      *models.Appointment `json:"follow_up,omitempty"`
	AreasInserted int                 `json:"areas_inserted"`
}

// ======================================================
// WORKFLOW
// ======================================================

// Workflow is the guarded state machine closing out one open
// appointment: area capture, payment capture, optional follow-up,
// then an ordered multi-entity commit. Nothing is persisted before
// Commit, so abandoning an instance has no side effects.
type Workflow struct {
	mu sync.Mutex

	id    uuid.UUID
	repo  domain.Repository
	audit *audit.Dispatcher

	clinic      *models.Clinic
	appointment *models.Appointment
	history     domain.History
	catalog     []models.BodyAreaConfig

	step     Step
	areaMode domain.AreaMode
	areas    []domain.AreaEntry

	paymentStatus string
	paymentAmount float64

	reminderRequested bool
	reminderMonths    int
	notes             string

	committed bool
}

// StartWorkflow loads the appointment, resolves the client's treated
// area history and the active body-area catalog, and opens the state
// machine at area capture in single mode.
func StartWorkflow(
	ctx context.Context,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	clinicID uint,
	appointmentID uint,
) (*Workflow, error) {

	clinic, err := repo.GetClinicByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	ap, err := repo.GetAppointment(ctx, clinicID, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanClose(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	rows, err := repo.ListClosedAreaHistory(ctx, ap.ClientID)
	if err != nil {
		return nil, err
	}

	catalog, err := repo.ListActiveBodyAreas(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	return &Workflow{
		id:          uuid.New(),
		repo:        repo,
		audit:       dispatcher,
		clinic:      clinic,
		appointment: ap,
		history:     domain.BuildHistory(rows),
		catalog:     catalog,
		step:        StepAreaCapture,
		areaMode:    domain.ModeSingle,
		areas:       domain.InitAreas(domain.ModeSingle, nil),
	}, nil
}

// ======================================================
// ACCESSORS
// ======================================================

func (w *Workflow) ID() string                       { return w.id.String() }
func (w *Workflow) Clinic() *models.Clinic           { return w.clinic }
func (w *Workflow) ClinicID() uint                   { return w.clinic.ID }
func (w *Workflow) AppointmentID() uint              { return w.appointment.ID }
func (w *Workflow) Appointment() *models.Appointment { return w.appointment }
func (w *Workflow) History() domain.History          { return w.history }

func (w *Workflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Workflow) AreaMode() domain.AreaMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.areaMode
}

func (w *Workflow) Areas() []domain.AreaEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]domain.AreaEntry, len(w.areas))
	copy(out, w.areas)
	return out
}

func (w *Workflow) PaymentStatus() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paymentStatus
}

// ======================================================
// AREA CAPTURE
// ======================================================

// SetAreaMode switches between single and full-body capture. The area
// list is discarded and rebuilt from the mode's rule.
func (w *Workflow) SetAreaMode(mode string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAreaCapture {
		return httperr.ErrBusiness("invalid_state")
	}
	if !domain.IsValidAreaMode(mode) {
		return httperr.ErrBusiness("invalid_area_mode")
	}

	w.areaMode = domain.AreaMode(mode)
	w.areas = domain.InitAreas(w.areaMode, w.catalog)
	return nil
}

const (
	AreaFieldName = "area_name"
	AreaFieldHeat = "heat_level"
	AreaFieldPain = "pain_level"
)

// UpdateArea edits one field of one area entry. Names are locked in
// full-body mode.
func (w *Workflow) UpdateArea(index int, field string, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAreaCapture {
		return httperr.ErrBusiness("invalid_state")
	}
	if index < 0 || index >= len(w.areas) {
		return httperr.ErrBusiness("area_index_out_of_range")
	}

	entry := &w.areas[index]

	switch field {
	case AreaFieldName:
		if entry.NameFixed {
			return httperr.ErrBusiness("area_name_fixed")
		}
		entry.AreaName = value
	case AreaFieldHeat:
		entry.HeatLevel = value
	case AreaFieldPain:
		entry.PainLevel = value
	default:
		return httperr.ErrBusiness("invalid_area_field")
	}

	return nil
}

// AddArea appends a blank entry. Only single mode has a free-length
// list; the full-body list is fixed by the catalog.
func (w *Workflow) AddArea() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepAreaCapture {
		return httperr.ErrBusiness("invalid_state")
	}
	if w.areaMode != domain.ModeSingle {
		return httperr.ErrBusiness("fixed_area_list")
	}

	w.areas = append(w.areas, domain.AreaEntry{})
	return nil
}

// ======================================================
// TRANSITIONS
// ======================================================

// Advance moves forward after the current step's guard passes.
func (w *Workflow) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepAreaCapture:
		if _, err := domain.ParseAreas(w.areas, w.clinic.RequirePainLevel); err != nil {
			return err
		}
		w.step = StepPaymentCapture
		return nil

	case StepPaymentCapture:
		if !domain.IsSettablePayment(w.paymentStatus) {
			return domain.ErrMissingField("payment_status")
		}
		w.step = StepFollowUpCapture
		return nil
	}

	return httperr.ErrBusiness("already_at_final_step")
}

// Retreat moves back one step. Always permitted; passed guards are not
// re-checked.
func (w *Workflow) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step <= StepAreaCapture {
		return httperr.ErrBusiness("already_at_first_step")
	}
	w.step--
	return nil
}

// ======================================================
// PAYMENT / FOLLOW-UP INPUT
// ======================================================

func (w *Workflow) SetPaymentStatus(status string, amount float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepPaymentCapture {
		return httperr.ErrBusiness("invalid_state")
	}
	if !domain.IsSettablePayment(status) {
		return httperr.ErrBusiness("invalid_payment_status")
	}
	if amount < 0 {
		return domain.ErrOutOfRange("payment_amount")
	}

	w.paymentStatus = status
	w.paymentAmount = amount
	return nil
}

func (w *Workflow) SetReminder(requested bool, months int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepFollowUpCapture {
		return httperr.ErrBusiness("invalid_state")
	}

	if requested && !isReminderOption(months) {
		return domain.ErrOutOfRange("reminder_months")
	}

	w.reminderRequested = requested
	if requested {
		w.reminderMonths = months
	} else {
		w.reminderMonths = 0
	}
	return nil
}

func (w *Workflow) SetNotes(notes string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepFollowUpCapture {
		return httperr.ErrBusiness("invalid_state")
	}
	w.notes = notes
	return nil
}

func isReminderOption(months int) bool {
	for _, m := range ReminderMonthOptions {
		if m == months {
			return true
		}
	}
	return false
}

// ======================================================
// COMMIT
// ======================================================

// Commit executes the ordered write sequence:
//
//  1. insert one TreatmentArea row per entry, each carrying the
//     treatment number derived from the history snapshot
//  2. close the appointment with payment and reminder fields
//  3. create the follow-up appointment when a reminder was requested
//
// The steps are independent calls; a failure between them leaves a
// partially-committed state. The workflow then stays in
// FollowUpCapture with its inputs intact so Commit can be retried
// (already-inserted area rows are not deduplicated on retry).
//
// The follow-up is scheduled at commit time + offset, not at the
// original appointment's time + offset; kept as-is pending product
// confirmation.
func (w *Workflow) Commit(ctx context.Context, now time.Time) (*CommitResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.committed {
		return nil, httperr.ErrBusiness("already_committed")
	}
	if w.step != StepFollowUpCapture {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	// Re-validate everything the earlier guards approved.
	parsed, err := domain.ParseAreas(w.areas, w.clinic.RequirePainLevel)
	if err != nil {
		return nil, err
	}
	if !domain.IsSettablePayment(w.paymentStatus) {
		return nil, domain.ErrMissingField("payment_status")
	}
	if err := domain.CanClose(domain.Status(w.appointment.Status)); err != nil {
		return nil, err
	}

	// ---- step 1: area rows ----
	rows := make([]models.TreatmentArea, 0, len(parsed))
	for _, area := range parsed {
		rows = append(rows, models.TreatmentArea{
			AppointmentID:   w.appointment.ID,
			AreaName:        area.AreaName,
			HeatLevel:       area.HeatLevel,
			PainLevel:       area.PainLevel,
			TreatmentNumber: w.history.TreatmentNumberFor(area.AreaName),
		})
	}

	if err := w.repo.CreateTreatmentAreas(ctx, rows); err != nil {
		return nil, &CommitError{Step: CommitStepAreas, Err: err}
	}

	// ---- step 2: close the appointment ----
	updated := *w.appointment
	updated.PaymentStatus = w.paymentStatus
	updated.PaymentAmount = w.paymentAmount
	updated.Status = string(domain.StatusClosed)
	updated.Notes = w.notes
	updated.ClosedAt = &now
	updated.ReminderRequested = w.reminderRequested
	if w.reminderRequested {
		reminder := now.AddDate(0, w.reminderMonths, 0)
		updated.ReminderDate = &reminder
	}

	if err := w.repo.UpdateAppointment(ctx, &updated); err != nil {
		return nil, &CommitError{Step: CommitStepAppointment, Err: err}
	}

	// ---- step 3: follow-up appointment ----
	var followUp *models.Appointment
	if w.reminderRequested {
		followUp = &models.Appointment{
			ClinicID:      w.appointment.ClinicID,
			ClientID:      w.appointment.ClientID,
			StaffMemberID: w.appointment.StaffMemberID,
			PlanID:        w.appointment.PlanID,
			TreatmentType: w.appointment.TreatmentType,
			ScheduledAt:   now.AddDate(0, w.reminderMonths, 0),
			Status:        string(domain.StatusOpen),
			PaymentStatus: string(domain.PaymentUnset),
		}

		if err := w.repo.CreateAppointment(ctx, followUp); err != nil {
			return nil, &CommitError{Step: CommitStepFollowUp, Err: err}
		}
	}

	w.appointment = &updated
	w.committed = true

	staffID := w.appointment.StaffMemberID
	w.audit.Dispatch(audit.Event{
		ClinicID: w.clinic.ID,
		UserID:   staffID,
		Action:   "treatment_committed",
		Entity:   "appointment",
		EntityID: &w.appointment.ID,
		Metadata: map[string]any{
			"areas":          len(rows),
			"payment_status": w.paymentStatus,
			"token":          w.id.String(),
		},
	})

	if followUp != nil {
		w.audit.Dispatch(audit.Event{
			ClinicID: w.clinic.ID,
			UserID:   staffID,
			Action:   "follow_up_created",
			Entity:   "appointment",
			EntityID: &followUp.ID,
		})
	}

	return &CommitResult{
		Token:         w.id.String(),
		Appointment:   w.appointment,
		FollowUp:      followUp,
		AreasInserted: len(rows),
	}, nil
}

package calendar

import (
	"context"
	"sort"
	"time"

	cal "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/calendar"
	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/dto"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BrowseInput struct {
	ClinicID uint
	Date     time.Time
	View     cal.Granularity
	Criteria cal.Criteria
}

// BucketCell is one (staff, slot) cell of the day or week grid.
type BucketCell struct {
	StaffID      uint                     `json:"staff_id"`
	Slot         int                      `json:"slot"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
}

type BrowseOutput struct {
	View         cal.Granularity          `json:"view"`
	Window       cal.Window               `json:"window"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
	Cells        []BucketCell             `json:"cells,omitempty"`
	Staff        []models.User            `json:"staff"`

	// Hour range the day grid renders, from clinic settings.
	DayStartHour int `json:"day_start_hour"`
	DayEndHour   int `json:"day_end_hour"`
}

// ======================================================
// USE CASE
// ======================================================

// Browse resolves the calendar window for a reference date, loads the
// window's appointments, applies the operator's filters and, for day
// and week views, buckets the result per staff member and time slot.
type Browse struct {
	repo domain.Repository
}

func NewBrowse(repo domain.Repository) *Browse {
	return &Browse{repo: repo}
}

func (uc *Browse) Execute(
	ctx context.Context,
	in BrowseInput,
) (*BrowseOutput, error) {

	clinic, err := uc.repo.GetClinicByID(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(clinic.Timezone)
	ref := in.Date.In(loc)
	weekStart := time.Weekday(clinic.WeekStartDay)

	window, err := cal.WindowFor(ref, in.View, weekStart)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		in.ClinicID,
		window.Start,
		window.End,
	)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(clinic.Timezone)
	filtered := cal.Filter(appointments, in.Criteria, now)

	staff, err := uc.repo.ListStaff(ctx, in.ClinicID)
	if err != nil {
		return nil, err
	}

	out := &BrowseOutput{
		View:         in.View,
		Window:       window,
		Appointments: toDTOs(filtered),
		Staff:        staff,
		DayStartHour: clinic.DayStartHour,
		DayEndHour:   clinic.DayEndHour,
	}

	switch in.View {
	case cal.GranularityDay:
		out.Cells = toCells(cal.BucketByStaffAndHour(filtered, staff, window.Start))
	case cal.GranularityWeek:
		out.Cells = toCells(cal.BucketByStaffAndWeekday(filtered, staff, window))
	}

	return out, nil
}

func toDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			ScheduledAt:   ap.ScheduledAt,
			TreatmentType: ap.TreatmentType,
			Status:        ap.Status,
			PaymentStatus: ap.PaymentStatus,
			ClientName:    ap.Client.FullName,
			StaffMemberID: ap.StaffMemberID,
		})
	}
	return out
}

func toCells(buckets map[cal.CellKey][]models.Appointment) []BucketCell {
	cells := make([]BucketCell, 0, len(buckets))
	for key, appointments := range buckets {
		cells = append(cells, BucketCell{
			StaffID:      key.StaffID,
			Slot:         key.Slot,
			Appointments: toDTOs(appointments),
		})
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].StaffID != cells[j].StaffID {
			return cells[i].StaffID < cells[j].StaffID
		}
		return cells[i].Slot < cells[j].Slot
	})

	return cells
}

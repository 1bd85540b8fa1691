package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cal "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/calendar"
	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type stubRepo struct {
	clinic       models.Clinic
	appointments []models.Appointment
	staff        []models.User

	gotStart time.Time
	gotEnd   time.Time
}

func (s *stubRepo) GetClinicByID(_ context.Context, _ uint) (*models.Clinic, error) {
	c := s.clinic
	return &c, nil
}

func (s *stubRepo) GetClient(_ context.Context, _, _ uint) (*models.Client, error) {
	return nil, nil
}

func (s *stubRepo) GetPlan(_ context.Context, _, _ uint) (*models.TreatmentPlan, error) {
	return nil, nil
}

func (s *stubRepo) GetAppointment(_ context.Context, _, _ uint) (*models.Appointment, error) {
	return nil, nil
}

func (s *stubRepo) CreateAppointment(_ context.Context, _ *models.Appointment) error { return nil }
func (s *stubRepo) UpdateAppointment(_ context.Context, _ *models.Appointment) error { return nil }

func (s *stubRepo) ListAppointmentsForPeriod(_ context.Context, _ uint, start, end time.Time) ([]models.Appointment, error) {
	s.gotStart = start
	s.gotEnd = end
	return s.appointments, nil
}

func (s *stubRepo) CreateTreatmentAreas(_ context.Context, _ []models.TreatmentArea) error {
	return nil
}

func (s *stubRepo) ListClosedAreaHistory(_ context.Context, _ uint) ([]domain.ClosedAreaRow, error) {
	return nil, nil
}

func (s *stubRepo) ListActiveBodyAreas(_ context.Context, _ uint) ([]models.BodyAreaConfig, error) {
	return nil, nil
}

func (s *stubRepo) ListStaff(_ context.Context, _ uint) ([]models.User, error) {
	return s.staff, nil
}

var _ domain.Repository = (*stubRepo)(nil)

func staffID(v uint) *uint { return &v }

func TestBrowse_DayView(t *testing.T) {
	day := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	repo := &stubRepo{
		clinic: models.Clinic{
			ID:           1,
			Timezone:     "UTC",
			WeekStartDay: 0,
			DayStartHour: 8,
			DayEndHour:   18,
		},
		staff: []models.User{{ID: 1}, {ID: 2}},
		appointments: []models.Appointment{
			{ID: 1, StaffMemberID: staffID(1), TreatmentType: "laser", ScheduledAt: day.Add(9 * time.Hour), Client: models.Client{FullName: "Dana"}},
			{ID: 2, StaffMemberID: staffID(2), TreatmentType: "electrolysis", ScheduledAt: day.Add(11 * time.Hour)},
		},
	}

	out, err := NewBrowse(repo).Execute(context.Background(), BrowseInput{
		ClinicID: 1,
		Date:     day.Add(12 * time.Hour),
		View:     cal.GranularityDay,
	})
	require.NoError(t, err)

	// The repository is queried with the resolved day window.
	assert.True(t, repo.gotStart.Equal(day))
	assert.True(t, repo.gotEnd.Equal(day.Add(24*time.Hour).Add(-time.Millisecond)))

	require.Len(t, out.Appointments, 2)
	assert.Equal(t, "Dana", out.Appointments[0].ClientName)

	require.Len(t, out.Cells, 2)
	assert.Equal(t, uint(1), out.Cells[0].StaffID)
	assert.Equal(t, 9, out.Cells[0].Slot)
	assert.Equal(t, uint(2), out.Cells[1].StaffID)
	assert.Equal(t, 11, out.Cells[1].Slot)

	assert.Equal(t, 8, out.DayStartHour)
	assert.Equal(t, 18, out.DayEndHour)
}

func TestBrowse_MonthViewAppliesFilters(t *testing.T) {
	day := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	repo := &stubRepo{
		clinic: models.Clinic{ID: 1, Timezone: "UTC"},
		appointments: []models.Appointment{
			{ID: 1, TreatmentType: "laser", PaymentStatus: "debt", ScheduledAt: day.Add(9 * time.Hour)},
			{ID: 2, TreatmentType: "laser", PaymentStatus: "paid", ScheduledAt: day.Add(10 * time.Hour)},
			{ID: 3, TreatmentType: "electrolysis", PaymentStatus: "debt", ScheduledAt: day.Add(11 * time.Hour)},
		},
	}

	out, err := NewBrowse(repo).Execute(context.Background(), BrowseInput{
		ClinicID: 1,
		Date:     day,
		View:     cal.GranularityMonth,
		Criteria: cal.Criteria{Type: "laser", DebtOnly: true},
	})
	require.NoError(t, err)

	require.Len(t, out.Appointments, 1)
	assert.Equal(t, uint(1), out.Appointments[0].ID)

	// Month view has no staff/slot grid.
	assert.Empty(t, out.Cells)
}

func TestBrowse_InvalidView(t *testing.T) {
	repo := &stubRepo{clinic: models.Clinic{ID: 1, Timezone: "UTC"}}

	_, err := NewBrowse(repo).Execute(context.Background(), BrowseInput{
		ClinicID: 1,
		Date:     time.Now(),
		View:     cal.Granularity("year"),
	})
	assert.Error(t, err)
}

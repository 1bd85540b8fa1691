package treatment

import (
	"context"
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Clinic --------
	GetClinicByID(
		ctx context.Context,
		id uint,
	) (*models.Clinic, error)

	// -------- Client --------
	GetClient(
		ctx context.Context,
		clinicID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Plan --------
	GetPlan(
		ctx context.Context,
		clinicID uint,
		planID uint,
	) (*models.TreatmentPlan, error)

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		clinicID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		clinicID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Treatment areas --------
	CreateTreatmentAreas(
		ctx context.Context,
		areas []models.TreatmentArea,
	) error

	// ListClosedAreaHistory returns every treated area belonging to
	// one of the client's closed appointments.
	ListClosedAreaHistory(
		ctx context.Context,
		clientID uint,
	) ([]ClosedAreaRow, error)

	// -------- Catalogs --------
	ListActiveBodyAreas(
		ctx context.Context,
		clinicID uint,
	) ([]models.BodyAreaConfig, error)

	ListStaff(
		ctx context.Context,
		clinicID uint,
	) ([]models.User, error)
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/SilkSkinClinic/clinic-scheduler/internal/domain/treatment"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
)

type TreatmentGormRepository struct {
	db *gorm.DB
}

func NewTreatmentGormRepository(db *gorm.DB) *TreatmentGormRepository {
	return &TreatmentGormRepository{db: db}
}

// --------------------------------------------------
// Clinic
// --------------------------------------------------

func (r *TreatmentGormRepository) GetClinicByID(
	ctx context.Context,
	id uint,
) (*models.Clinic, error) {

	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *TreatmentGormRepository) GetClient(
	ctx context.Context,
	clinicID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", clientID, clinicID).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// --------------------------------------------------
// Plan
// --------------------------------------------------

func (r *TreatmentGormRepository) GetPlan(
	ctx context.Context,
	clinicID uint,
	planID uint,
) (*models.TreatmentPlan, error) {

	var plan models.TreatmentPlan
	if err := r.db.WithContext(ctx).
		Where("id = ? AND clinic_id = ?", planID, clinicID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *TreatmentGormRepository) GetAppointment(
	ctx context.Context,
	clinicID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ? AND clinic_id = ?", appointmentID, clinicID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *TreatmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *TreatmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *TreatmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	clinicID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("TreatmentAreas").
		Where(
			"clinic_id = ? AND scheduled_at >= ? AND scheduled_at <= ?",
			clinicID, start, end,
		).
		Order("scheduled_at ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Treatment areas
// --------------------------------------------------

func (r *TreatmentGormRepository) CreateTreatmentAreas(
	ctx context.Context,
	areas []models.TreatmentArea,
) error {
	if len(areas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&areas).Error
}

func (r *TreatmentGormRepository) ListClosedAreaHistory(
	ctx context.Context,
	clientID uint,
) ([]domain.ClosedAreaRow, error) {

	var rows []domain.ClosedAreaRow
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT ta.area_name, ta.heat_level, a.scheduled_at
			FROM treatment_areas ta
			JOIN appointments a ON a.id = ta.appointment_id
			WHERE a.client_id = ? AND a.status = 'closed'
			ORDER BY a.scheduled_at ASC`,
			clientID,
		).
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Catalogs
// --------------------------------------------------

func (r *TreatmentGormRepository) ListActiveBodyAreas(
	ctx context.Context,
	clinicID uint,
) ([]models.BodyAreaConfig, error) {

	var areas []models.BodyAreaConfig
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("sort_order ASC").
		Find(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *TreatmentGormRepository) ListStaff(
	ctx context.Context,
	clinicID uint,
) ([]models.User, error) {

	var staff []models.User
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ?", clinicID).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// Compile-time check
var _ domain.Repository = (*TreatmentGormRepository)(nil)

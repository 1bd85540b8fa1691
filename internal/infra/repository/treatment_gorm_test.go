package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (*TreatmentGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewTreatmentGormRepository(db), mock
}

func TestListClosedAreaHistory(t *testing.T) {
	repo, mock := newMockRepo(t)

	first := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, time.July, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT ta.area_name, ta.heat_level, a.scheduled_at`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"area_name", "heat_level", "scheduled_at"}).
			AddRow("legs", 20.0, first).
			AddRow("legs", 24.0, second))

	rows, err := repo.ListClosedAreaHistory(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "legs", rows[0].AreaName)
	assert.Equal(t, 20.0, rows[0].HeatLevel)
	assert.True(t, rows[0].ScheduledAt.Equal(first))
	assert.Equal(t, 24.0, rows[1].HeatLevel)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppointmentsForPeriod_Bounds(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.September, 19, 23, 59, 59, 999000000, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE clinic_id = .* AND scheduled_at >= .* AND scheduled_at <=`).
		WithArgs(int64(1), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_id", "client_id", "scheduled_at"}).
			AddRow(int64(10), int64(1), int64(5), start.Add(9*time.Hour)))

	// Preloads for the returned appointment.
	mock.ExpectQuery(`SELECT .* FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(`SELECT .* FROM "treatment_areas"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	aps, err := repo.ListAppointmentsForPeriod(context.Background(), 1, start, end)
	require.NoError(t, err)

	require.Len(t, aps, 1)
	assert.Equal(t, uint(10), aps[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointment_ScopedToClinic(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .* FROM "appointments" WHERE id = .* AND clinic_id =`).
		WithArgs(int64(10), int64(1), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "clinic_id", "client_id"}).
			AddRow(int64(10), int64(1), int64(5)))

	mock.ExpectQuery(`SELECT .* FROM "clients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	ap, err := repo.GetAppointment(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, uint(10), ap.ID)
	assert.Equal(t, uint(5), ap.ClientID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTreatmentAreas_EmptyIsNoOp(t *testing.T) {
	repo, mock := newMockRepo(t)

	// No statement expected for an empty batch.
	require.NoError(t, repo.CreateTreatmentAreas(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

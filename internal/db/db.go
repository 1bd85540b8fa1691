package db

import (
	"log"
	"time"

	"github.com/SilkSkinClinic/clinic-scheduler/internal/config"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/models"
	"github.com/SilkSkinClinic/clinic-scheduler/internal/timezone"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Client{},
		&models.TreatmentPlan{},
		&models.BodyAreaConfig{},
		&models.Appointment{},
		&models.TreatmentArea{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(
		"UPDATE clinics SET timezone = ? WHERE timezone IS NULL OR timezone = ''",
		timezone.DefaultTimezone,
	)

	return db
}

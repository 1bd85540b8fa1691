package models

import "time"

// One treated body area inside an appointment. Written once at
// workflow commit, never updated afterwards.
type TreatmentArea struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	AreaName  string  `gorm:"size:100;not null" json:"area_name"`
	HeatLevel float64 `gorm:"not null" json:"heat_level"`

	// Optional 1-10 rating
	PainLevel *int `json:"pain_level"`

	// Running sequence per (client, area), derived from closed history
	TreatmentNumber int `gorm:"not null" json:"treatment_number"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type TreatmentPlan struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Sessions    int     `json:"sessions"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

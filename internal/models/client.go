package models

import "time"

// Clinic-owned contact record, no login
type Client struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

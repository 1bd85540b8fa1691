package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ClinicID uint   `json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'therapist'" json:"role"`

	// Calendar color assigned in settings
	Color string `gorm:"size:20" json:"color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

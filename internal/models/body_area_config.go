package models

import "time"

// Catalog entry consumed by the full-body area mode
type BodyAreaConfig struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`

	AreaName  string `gorm:"size:100;not null" json:"area_name"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

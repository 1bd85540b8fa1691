package models

import "time"

type Clinic struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	// 0 = Sunday ... 6 = Saturday
	WeekStartDay int `gorm:"default:0" json:"week_start_day"`

	// Hour range rendered by the day view
	DayStartHour int `gorm:"default:7" json:"day_start_hour"`
	DayEndHour   int `gorm:"default:19" json:"day_end_hour"`

	// When true, every treated area must carry a pain rating
	RequirePainLevel bool `gorm:"default:false" json:"require_pain_level"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

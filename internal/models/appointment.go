package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffMemberID *uint `json:"staff_member_id"`
	StaffMember   *User `gorm:"foreignKey:StaffMemberID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff_member,omitempty"`

	PlanID *uint          `json:"plan_id"`
	Plan   *TreatmentPlan `gorm:"foreignKey:PlanID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"plan,omitempty"`

	// laser | electrolysis
	TreatmentType string `gorm:"size:20;not null" json:"treatment_type"`

	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`

	// open | closed
	Status string `gorm:"size:20;default:'open'" json:"status"`

	// unset | paid | partial | debt
	PaymentStatus string  `gorm:"size:20;default:'unset'" json:"payment_status"`
	PaymentAmount float64 `gorm:"default:0" json:"payment_amount"`

	Notes string `gorm:"type:text" json:"notes"`

	ReminderRequested bool       `gorm:"default:false" json:"reminder_requested"`
	ReminderDate      *time.Time `json:"reminder_date"`

	ClosedAt *time.Time `json:"closed_at"`

	TreatmentAreas []TreatmentArea `gorm:"foreignKey:AppointmentID" json:"treatment_areas,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package dto

import "time"

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	TreatmentType string    `json:"treatment_type"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ClientName    string    `json:"client_name"`
	StaffMemberID *uint     `json:"staff_member_id"`
}

package treatment

import "github.com/SilkSkinClinic/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// ===============================
// Treatment Type
// ===============================

type Type string

const (
	TypeLaser        Type = "laser"
	TypeElectrolysis Type = "electrolysis"
)

func IsValidType(t string) bool {
	return t == string(TypeLaser) || t == string(TypeElectrolysis)
}

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentUnset   PaymentStatus = "unset"
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentDebt    PaymentStatus = "debt"
)

// IsSettablePayment reports whether a status may be chosen by the
// operator at payment capture. "unset" is the initial value only.
func IsSettablePayment(p string) bool {
	switch PaymentStatus(p) {
	case PaymentPaid, PaymentPartial, PaymentDebt:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanClose defines whether an appointment may be closed. The only
// transition the core performs is open -> closed.
func CanClose(current Status) error {
	if current != StatusOpen {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusOpen
}

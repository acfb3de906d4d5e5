package booking

import "github.com/barberbook/booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether an appointment in this status still holds its
// time slots.
func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

package httperr

import "errors"

// Stable operation-level error codes. Handlers translate them to HTTP.
const (
	CodeInvalidUserRef    = "invalid_user_reference"
	CodeInvalidBarberRef  = "invalid_barber_reference"
	CodeInvalidSlotRef    = "invalid_slot_reference"
	CodeInvalidServiceRef = "invalid_service_reference"
	CodeSlotAlreadyBooked = "slot_already_booked"

	CodeEmailExists    = "email_already_exists"
	CodePhoneExists    = "phone_already_exists"
	CodeScheduleExists = "schedule_already_exists"
	CodeSlotOverlap    = "slot_overlap"
	CodeAlreadyBarber  = "already_a_barber"
	CodeInvalidState   = "invalid_state"

	CodeIdentityProvider   = "identity_provider_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeInsufficientRole   = "insufficient_role"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode returns the code carried by err, or "" for non-business errors.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

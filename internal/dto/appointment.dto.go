package dto

// AppointmentResponse is an appointment with its association id lists
// resolved, matching what booking callers send in.
type AppointmentResponse struct {
	AppointmentID uint   `json:"appointment_id"`
	UserID        uint   `json:"user_id"`
	BarberID      uint   `json:"barber_id"`
	Status        string `json:"status"`
	TimeSlotIDs   []uint `json:"time_slot"`
	ServiceIDs    []uint `json:"service_id"`
}

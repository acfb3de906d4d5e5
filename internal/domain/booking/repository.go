package booking

import (
	"context"

	"github.com/barberbook/booking-api/internal/models"
)

// Repository is the storage contract for the booking workflow. The Create,
// Update and Delete methods run their multi-statement writes inside one
// transaction; a failed step leaves no partial state behind.
type Repository interface {
	// -------- Reference checks --------
	UserExists(ctx context.Context, id uint) (bool, error)

	BarberExists(ctx context.Context, id uint) (bool, error)

	// FirstMissingSlot returns the first id with no TimeSlot row,
	// preserving the order of ids.
	FirstMissingSlot(ctx context.Context, ids []uint) (uint, bool, error)

	FirstMissingService(ctx context.Context, ids []uint) (uint, bool, error)

	// -------- Booking workflow --------
	CreateBooking(
		ctx context.Context,
		ap *models.Appointment,
		slotIDs []uint,
		serviceIDs []uint,
	) error

	UpdateBooking(
		ctx context.Context,
		ap *models.Appointment,
		in UpdateInput,
	) error

	DeleteBooking(ctx context.Context, id uint) (bool, error)

	// -------- Retrieval --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	ListAppointments(ctx context.Context, limit, offset int) ([]models.Appointment, error)

	SlotIDsByAppointment(ctx context.Context, appointmentIDs []uint) (map[uint][]uint, error)

	ServiceIDsByAppointment(ctx context.Context, appointmentIDs []uint) (map[uint][]uint, error)
}

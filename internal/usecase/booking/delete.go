package booking

import (
	"context"

	"github.com/barberbook/booking-api/internal/audit"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the appointment, its association rows and restores slot
// availability. Returns false when no such appointment exists.
func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) (bool, error) {
	found, err := uc.repo.DeleteBooking(ctx, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})

	return true, nil
}

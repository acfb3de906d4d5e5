package booking

import (
	"context"

	"github.com/barberbook/booking-api/internal/audit"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/dto"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute books an appointment. Validation is fail-fast and ordered: user,
// barber, then each slot; nothing is written until all references resolve.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.CreateInput,
) (*dto.AppointmentResponse, error) {

	ok, err := uc.repo.UserExists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidUserRef)
	}

	ok, err = uc.repo.BarberExists(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidBarberRef)
	}

	if _, missing, err := uc.repo.FirstMissingSlot(ctx, in.SlotIDs); err != nil {
		return nil, err
	} else if missing {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRef)
	}

	if _, missing, err := uc.repo.FirstMissingService(ctx, in.ServiceIDs); err != nil {
		return nil, err
	} else if missing {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidServiceRef)
	}

	status := in.Status
	if status == "" {
		status = domain.InitialStatus()
	}
	// A new booking claims its slots, so it must start in a status that
	// holds them.
	if !domain.IsActive(status) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	ap := &models.Appointment{
		UserID:   in.UserID,
		BarberID: in.BarberID,
		Status:   string(status),
	}

	if err := uc.repo.CreateBooking(ctx, ap, in.SlotIDs, in.ServiceIDs); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": in.BarberID,
			"slots":     in.SlotIDs,
		},
	})

	return &dto.AppointmentResponse{
		AppointmentID: ap.ID,
		UserID:        ap.UserID,
		BarberID:      ap.BarberID,
		Status:        ap.Status,
		TimeSlotIDs:   in.SlotIDs,
		ServiceIDs:    in.ServiceIDs,
	}, nil
}

package booking

import (
	"context"
	"time"

	"github.com/barberbook/booking-api/internal/audit"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/dto"
	"github.com/barberbook/booking-api/internal/httperr"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute applies a sparse patch. Replacing the slot set releases the old
// slots and claims the new ones inside the repository transaction; the
// union of availability across old and new slots reflects exactly the new
// assignment afterwards. Returns (nil, nil) when the appointment is absent.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id uint,
	in domain.UpdateInput,
) (*dto.AppointmentResponse, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, nil
	}

	if in.UserID != nil {
		ok, err := uc.repo.UserExists(ctx, *in.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidUserRef)
		}
		ap.UserID = *in.UserID
	}

	if in.BarberID != nil {
		ok, err := uc.repo.BarberExists(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidBarberRef)
		}
		ap.BarberID = *in.BarberID
	}

	if in.Status != nil {
		current := domain.Status(ap.Status)
		now := time.Now()

		switch *in.Status {
		case domain.StatusCancelled:
			if err := domain.CanCancel(current); err != nil {
				return nil, err
			}
			ap.CancelledAt = &now
		case domain.StatusCompleted:
			if err := domain.CanComplete(current); err != nil {
				return nil, err
			}
			ap.CompletedAt = &now
		case domain.StatusPending, domain.StatusConfirmed:
			// No stamp, but a cancelled or completed appointment no longer
			// holds its slots and cannot come back to life.
			if !domain.IsActive(current) {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
			}
		default:
			return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
		}
		ap.Status = string(*in.Status)
	}

	if in.SlotIDs != nil {
		if _, missing, err := uc.repo.FirstMissingSlot(ctx, *in.SlotIDs); err != nil {
			return nil, err
		} else if missing {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRef)
		}
	}

	if in.ServiceIDs != nil {
		if _, missing, err := uc.repo.FirstMissingService(ctx, *in.ServiceIDs); err != nil {
			return nil, err
		} else if missing {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidServiceRef)
		}
	}

	if err := uc.repo.UpdateBooking(ctx, ap, in); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &ap.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	slots, err := uc.repo.SlotIDsByAppointment(ctx, []uint{id})
	if err != nil {
		return nil, err
	}
	services, err := uc.repo.ServiceIDsByAppointment(ctx, []uint{id})
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentResponse{
		AppointmentID: ap.ID,
		UserID:        ap.UserID,
		BarberID:      ap.BarberID,
		Status:        ap.Status,
		TimeSlotIDs:   emptyIfNil(slots[id]),
		ServiceIDs:    emptyIfNil(services[id]),
	}, nil
}

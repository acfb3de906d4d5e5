package booking

import (
	"context"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/dto"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the appointment with its resolved association lists, or
// (nil, nil) when it does not exist; absence is not an error here.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	id uint,
) (*dto.AppointmentResponse, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, nil
	}

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

func emptyIfNil(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}

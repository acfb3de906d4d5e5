package booking

import (
	"context"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/dto"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns one page of appointments. Association lists are resolved
// with two batched lookups keyed by the page's appointment ids, not one
// query per appointment.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	page int,
	limit int,
) ([]dto.AppointmentResponse, error) {

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit

	aps, err := uc.repo.ListAppointments(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(aps) == 0 {
		return []dto.AppointmentResponse{}, nil
	}

	ids := make([]uint, 0, len(aps))
	for _, ap := range aps {
		ids = append(ids, ap.ID)
	}

	slots, err := uc.repo.SlotIDsByAppointment(ctx, ids)
	if err != nil {
		return nil, err
	}
	services, err := uc.repo.ServiceIDsByAppointment(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentResponse, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentResponse{
			AppointmentID: ap.ID,
			UserID:        ap.UserID,
			BarberID:      ap.BarberID,
			Status:        ap.Status,
			TimeSlotIDs:   emptyIfNil(slots[ap.ID]),
			ServiceIDs:    emptyIfNil(services[ap.ID]),
		})
	}
	return out, nil
}

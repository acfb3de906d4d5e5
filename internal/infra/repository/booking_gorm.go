package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Reference checks
// --------------------------------------------------

func (r *BookingGormRepository) UserExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) BarberExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) FirstMissingSlot(ctx context.Context, ids []uint) (uint, bool, error) {
	return r.firstMissing(ctx, &models.TimeSlot{}, ids)
}

func (r *BookingGormRepository) FirstMissingService(ctx context.Context, ids []uint) (uint, bool, error) {
	return r.firstMissing(ctx, &models.Service{}, ids)
}

func (r *BookingGormRepository) firstMissing(ctx context.Context, model any, ids []uint) (uint, bool, error) {
	if len(ids) == 0 {
		return 0, false, nil
	}

	var found []uint
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return 0, false, err
	}

	existing := make(map[uint]bool, len(found))
	for _, id := range found {
		existing[id] = true
	}

	for _, id := range ids {
		if !existing[id] {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// --------------------------------------------------
// Booking workflow
// --------------------------------------------------

// CreateBooking persists the appointment, its association rows and the
// availability flip as one transaction. The flip is conditional: claiming a
// slot that is already taken aborts the whole write, which is what resolves
// two concurrent bookings of the same slot: the storage engine's row-level
// atomicity decides the winner, not an application lock.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	ap *models.Appointment,
	slotIDs []uint,
	serviceIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		slotLinks := make([]models.AppointmentTimeSlot, 0, len(slotIDs))
		for _, slotID := range slotIDs {
			slotLinks = append(slotLinks, models.AppointmentTimeSlot{
				AppointmentID: ap.ID,
				SlotID:        slotID,
			})
		}
		if err := tx.Create(&slotLinks).Error; err != nil {
			return err
		}

		if err := claimSlots(tx, slotIDs); err != nil {
			return err
		}

		if len(serviceIDs) > 0 {
			serviceLinks := make([]models.AppointmentService, 0, len(serviceIDs))
			for _, serviceID := range serviceIDs {
				serviceLinks = append(serviceLinks, models.AppointmentService{
					AppointmentID: ap.ID,
					ServiceID:     serviceID,
				})
			}
			if err := tx.Create(&serviceLinks).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateBooking applies an already-merged appointment plus association
// replacements in one transaction. Replacing the slot set releases the old
// slots and claims the new ones. Whether slots end up claimed follows the
// merged row's status, not the patch: only an active appointment holds
// availability, so a transition out of the active statuses releases whatever
// the appointment still has.
func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	ap *models.Appointment,
	in domain.UpdateInput,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active := domain.IsActive(domain.Status(ap.Status))

		if in.SlotIDs != nil {
			if err := releaseHeldSlots(tx, ap.ID); err != nil {
				return err
			}
			if err := tx.
				Where("appointment_id = ?", ap.ID).
				Delete(&models.AppointmentTimeSlot{}).Error; err != nil {
				return err
			}

			newSlots := *in.SlotIDs
			if len(newSlots) > 0 {
				slotLinks := make([]models.AppointmentTimeSlot, 0, len(newSlots))
				for _, slotID := range newSlots {
					slotLinks = append(slotLinks, models.AppointmentTimeSlot{
						AppointmentID: ap.ID,
						SlotID:        slotID,
					})
				}
				if err := tx.Create(&slotLinks).Error; err != nil {
					return err
				}
				if active {
					if err := claimSlots(tx, newSlots); err != nil {
						return err
					}
				}
			}
		}

		if in.ServiceIDs != nil {
			if err := tx.
				Where("appointment_id = ?", ap.ID).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}

			newServices := *in.ServiceIDs
			if len(newServices) > 0 {
				serviceLinks := make([]models.AppointmentService, 0, len(newServices))
				for _, serviceID := range newServices {
					serviceLinks = append(serviceLinks, models.AppointmentService{
						AppointmentID: ap.ID,
						ServiceID:     serviceID,
					})
				}
				if err := tx.Create(&serviceLinks).Error; err != nil {
					return err
				}
			}
		}

		if !active {
			if err := releaseHeldSlots(tx, ap.ID); err != nil {
				return err
			}
		}

		return tx.Save(ap).Error
	})
}

// DeleteBooking removes the appointment and its association rows and restores
// availability on every slot it held. Association rows never outlive the
// appointment.
func (r *BookingGormRepository) DeleteBooking(ctx context.Context, id uint) (bool, error) {
	found := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ap models.Appointment
		if err := tx.First(&ap, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := releaseHeldSlots(tx, id); err != nil {
			return err
		}

		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.AppointmentTimeSlot{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Appointment{}, id).Error
	})

	return found, err
}

// claimSlots flips availability only where it is still true. A shortfall in
// affected rows means another booking already took one of the slots.
func claimSlots(tx *gorm.DB, slotIDs []uint) error {
	res := tx.Model(&models.TimeSlot{}).
		Where("id IN ? AND is_available = ?", slotIDs, true).
		Update("is_available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(slotIDs)) {
		return httperr.ErrBusiness(httperr.CodeSlotAlreadyBooked)
	}
	return nil
}

func releaseHeldSlots(tx *gorm.DB, appointmentID uint) error {
	var heldIDs []uint
	if err := tx.Model(&models.AppointmentTimeSlot{}).
		Where("appointment_id = ?", appointmentID).
		Pluck("slot_id", &heldIDs).Error; err != nil {
		return err
	}
	if len(heldIDs) == 0 {
		return nil
	}

	return tx.Model(&models.TimeSlot{}).
		Where("id IN ?", heldIDs).
		Update("is_available", true).Error
}

// --------------------------------------------------
// Retrieval
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) ListAppointments(ctx context.Context, limit, offset int) ([]models.Appointment, error) {
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) SlotIDsByAppointment(
	ctx context.Context,
	appointmentIDs []uint,
) (map[uint][]uint, error) {

	var links []models.AppointmentTimeSlot
	if err := r.db.WithContext(ctx).
		Where("appointment_id IN ?", appointmentIDs).
		Order("slot_id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	out := make(map[uint][]uint, len(appointmentIDs))
	for _, link := range links {
		out[link.AppointmentID] = append(out[link.AppointmentID], link.SlotID)
	}
	return out, nil
}

func (r *BookingGormRepository) ServiceIDsByAppointment(
	ctx context.Context,
	appointmentIDs []uint,
) (map[uint][]uint, error) {

	var links []models.AppointmentService
	if err := r.db.WithContext(ctx).
		Where("appointment_id IN ?", appointmentIDs).
		Order("service_id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	out := make(map[uint][]uint, len(appointmentIDs))
	for _, link := range links {
		out[link.AppointmentID] = append(out[link.AppointmentID], link.ServiceID)
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

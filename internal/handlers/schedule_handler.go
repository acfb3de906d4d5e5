package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/models"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

// ScheduleHandler owns schedule setup and the slot lifecycle outside of
// booking: slots are created here and only ever flipped by the booking
// workflow afterwards.
type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

// --------- Requests ---------

type CreateScheduleRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	IsWorking *bool  `json:"is_working,omitempty"`
}

type UpdateScheduleRequest struct {
	IsWorking *bool `json:"is_working,omitempty"`
}

type CreateTimeSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// --------- Schedules ---------

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be formatted YYYY-MM-DD.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Barber{}).
		Where("id = ?", req.BarberID).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidBarberRef, "Barber does not exist.")
		return
	}

	if err := h.db.Model(&models.Schedule{}).
		Where("barber_id = ? AND date = ?", req.BarberID, req.Date).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, httperr.CodeScheduleExists, "A schedule already exists for this barber and date.")
		return
	}

	schedule := models.Schedule{
		BarberID:  req.BarberID,
		Date:      req.Date,
		IsWorking: true,
	}
	if req.IsWorking != nil {
		schedule.IsWorking = *req.IsWorking
	}

	if err := h.db.Create(&schedule).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, schedule)
}

func (h *ScheduleHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	q := h.db.Model(&models.Schedule{})
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}

	var schedules []models.Schedule
	if err := q.
		Order("date ASC, barber_id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&schedules).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, schedules)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var schedule models.Schedule
	if err := h.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Schedule not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, schedule)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var schedule models.Schedule
	if err := h.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Schedule not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.IsWorking != nil {
		schedule.IsWorking = *req.IsWorking
	}

	if err := h.db.Save(&schedule).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, schedule)
}

// Delete refuses while any slot of the day is held by a booking.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var schedule models.Schedule
	if err := h.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Schedule not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var booked int64
	if err := h.db.Model(&models.TimeSlot{}).
		Where("schedule_id = ? AND is_available = ?", id, false).
		Count(&booked).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if booked > 0 {
		httperr.BadRequest(c, httperr.CodeInvalidState, "Schedule still has booked time slots.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("schedule_id = ?", id).
			Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Schedule{}, id).Error
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "Schedule deleted successfully")
}

// --------- Time slots ---------

func (h *ScheduleHandler) CreateSlot(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var schedule models.Schedule
	if err := h.db.First(&schedule, scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Schedule not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := time.Parse(hourLayout, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "Start time must be formatted HH:MM.")
		return
	}
	end, err := time.Parse(hourLayout, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_time", "End time must be formatted HH:MM.")
		return
	}
	if !start.Before(end) {
		httperr.BadRequest(c, "invalid_time", "Start time must be before end time.")
		return
	}

	// Lexicographic comparison works for zero-padded HH:MM windows.
	var overlapping int64
	if err := h.db.Model(&models.TimeSlot{}).
		Where("schedule_id = ? AND start_time < ? AND end_time > ?",
			scheduleID, req.EndTime, req.StartTime).
		Count(&overlapping).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if overlapping > 0 {
		httperr.Conflict(c, httperr.CodeSlotOverlap, "Time slot overlaps an existing slot.")
		return
	}

	slot := models.TimeSlot{
		ScheduleID:  scheduleID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, slot)
}

func (h *ScheduleHandler) ListSlots(c *gin.Context) {
	scheduleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var slots []models.TimeSlot
	if err := h.db.
		Where("schedule_id = ?", scheduleID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// DeleteSlot only removes slots no booking holds.
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var slot models.TimeSlot
	if err := h.db.First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Time slot not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if !slot.IsAvailable {
		httperr.BadRequest(c, httperr.CodeInvalidState, "Time slot is held by an appointment.")
		return
	}

	if err := h.db.Delete(&models.TimeSlot{}, id).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "Time slot deleted successfully")
}

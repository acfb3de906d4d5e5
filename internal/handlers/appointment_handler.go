package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	ucBooking "github.com/barberbook/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucBooking.CreateAppointment
	getUC    *ucBooking.GetAppointment
	listUC   *ucBooking.ListAppointments
	updateUC *ucBooking.UpdateAppointment
	deleteUC *ucBooking.DeleteAppointment
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateAppointment,
	getUC *ucBooking.GetAppointment,
	listUC *ucBooking.ListAppointments,
	updateUC *ucBooking.UpdateAppointment,
	deleteUC *ucBooking.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		getUC:    getUC,
		listUC:   listUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	BarberID   uint   `json:"barber_id" binding:"required"`
	Status     string `json:"status"`
	SlotIDs    []uint `json:"time_slot" binding:"required,min=1"`
	ServiceIDs []uint `json:"service_id"`
}

type UpdateAppointmentRequest struct {
	UserID     *uint   `json:"user_id,omitempty"`
	BarberID   *uint   `json:"barber_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	SlotIDs    *[]uint `json:"time_slot,omitempty"`
	ServiceIDs *[]uint `json:"service_id,omitempty"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Status != "" && !domain.ValidStatus(req.Status) {
		httperr.BadRequest(c, "invalid_request", "Unknown appointment status.")
		return
	}

	resp, err := h.createUC.Execute(c.Request.Context(), domain.CreateInput{
		UserID:     req.UserID,
		BarberID:   req.BarberID,
		Status:     domain.Status(req.Status),
		SlotIDs:    req.SlotIDs,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, resp)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	resp, err := h.listUC.Execute(c.Request.Context(), page, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, resp)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if resp == nil {
		httperr.NotFound(c, "not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, resp)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := domain.UpdateInput{
		UserID:     req.UserID,
		BarberID:   req.BarberID,
		SlotIDs:    req.SlotIDs,
		ServiceIDs: req.ServiceIDs,
	}
	if req.Status != nil {
		if !domain.ValidStatus(*req.Status) {
			httperr.BadRequest(c, "invalid_request", "Unknown appointment status.")
			return
		}
		status := domain.Status(*req.Status)
		in.Status = &status
	}

	resp, err := h.updateUC.Execute(c.Request.Context(), id, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if resp == nil {
		httperr.NotFound(c, "not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, resp)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	found, err := h.deleteUC.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if !found {
		httperr.NotFound(c, "not_found", "Appointment not found.")
		return
	}

	httpresp.Message(c, "Appointment deleted successfully")
}

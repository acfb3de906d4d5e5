package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/models"
)

// Barber updates and deletion go through the user endpoints; this handler
// only creates profiles and reads them back.
type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

// --------- Requests ---------

type CreateBarberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// --------- Handlers ---------

func (h *BarberHandler) Create(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("id = ?", req.UserID).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidUserRef, "User not found with provided ID.")
		return
	}

	if err := h.db.Model(&models.Barber{}).
		Where("user_id = ?", req.UserID).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, httperr.CodeAlreadyBarber, "User is already a barber.")
		return
	}

	barber := models.Barber{UserID: req.UserID}
	if err := h.db.Create(&barber).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, barber)
}

func (h *BarberHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	var barbers []models.Barber
	if err := h.db.
		Order("id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&barbers).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "No barber found with provided ID.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, barber)
}

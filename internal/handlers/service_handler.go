package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required,min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.Service{
		Name:        req.Name,
		DurationMin: req.DurationMin,
		Price:       req.Price,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	var services []models.Service
	if err := h.db.
		Order("id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&services).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Service not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Service not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, service)
}

// Delete removes the service together with its appointment associations so
// no association row outlives the service.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Service not found with provided ID.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("service_id = ?", id).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Service{}, id).Error
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "Service deleted successfully")
}

package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/models"
)

type ThreadHandler struct {
	db *gorm.DB
}

func NewThreadHandler(db *gorm.DB) *ThreadHandler {
	return &ThreadHandler{db: db}
}

// --------- Requests ---------

type CreateThreadRequest struct {
	SendingUserID   uint `json:"sending_user_id" binding:"required"`
	ReceivingUserID uint `json:"receiving_user_id" binding:"required"`
}

type CreateMessageRequest struct {
	ThreadID uint   `json:"thread_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
	Active   *bool  `json:"active,omitempty"`
}

type UpdateMessageActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --------- Threads ---------

func (h *ThreadHandler) Create(c *gin.Context) {
	var req CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("id IN ?", []uint{req.SendingUserID, req.ReceivingUserID}).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	want := int64(2)
	if req.SendingUserID == req.ReceivingUserID {
		want = 1
	}
	if count != want {
		httperr.BadRequest(c, httperr.CodeInvalidUserRef, "Both thread participants must exist.")
		return
	}

	thread := models.Thread{
		SendingUserID:   req.SendingUserID,
		ReceivingUserID: req.ReceivingUserID,
	}
	if err := h.db.Create(&thread).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, thread)
}

// List returns every thread the user participates in, either side.
func (h *ThreadHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		httperr.BadRequest(c, "invalid_request", "user_id query parameter is required.")
		return
	}

	var threads []models.Thread
	if err := h.db.
		Where("sending_user_id = ? OR receiving_user_id = ?", userID, userID).
		Order("id ASC").
		Find(&threads).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, threads)
}

// --------- Messages ---------

func (h *ThreadHandler) ListMessages(c *gin.Context) {
	threadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var thread models.Thread
	if err := h.db.First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Thread not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var messages []models.Message
	if err := h.db.
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, messages)
}

func (h *ThreadHandler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var count int64
	if err := h.db.Model(&models.Thread{}).
		Where("id = ?", req.ThreadID).
		Count(&count).Error; err != nil {
		httperr.FromError(c, err)
		return
	}
	if count == 0 {
		httperr.BadRequest(c, "invalid_thread_reference", "No thread exists with the provided ID.")
		return
	}

	message := models.Message{
		ThreadID: req.ThreadID,
		Text:     req.Text,
		Active:   true,
	}
	if req.Active != nil {
		message.Active = *req.Active
	}

	if err := h.db.Create(&message).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, message)
}

func (h *ThreadHandler) UpdateMessageActive(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var message models.Message
	if err := h.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "Message not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req UpdateMessageActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		httperr.BadRequest(c, "invalid_request", "active boolean is required.")
		return
	}

	message.Active = *req.Active
	if err := h.db.Save(&message).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, message)
}

func (h *ThreadHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res := h.db.Delete(&models.Message{}, id)
	if res.Error != nil {
		httperr.FromError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "not_found", "Message not found.")
		return
	}

	httpresp.Message(c, "Message deleted successfully")
}

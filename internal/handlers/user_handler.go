package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/audit"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/identity"
	"github.com/barberbook/booking-api/internal/middleware"
	"github.com/barberbook/booking-api/internal/models"
	"github.com/barberbook/booking-api/internal/validators"
)

type UserHandler struct {
	db       *gorm.DB
	provider identity.Provider
	audit    *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, provider identity.Provider, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, provider: provider, audit: audit}
}

// --------- Requests ---------

type CreateUserRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// --------- Handlers ---------

// Create registers a user. The identity provider account is created first;
// if the local insert then fails, the provider account is deleted again so
// the two systems cannot drift apart on this path.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsPhoneNumberValid(req.PhoneNumber) {
		httperr.BadRequest(c, "invalid_phone_number", "Phone number must be 10 digits or less.")
		return
	}
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, httperr.CodeEmailExists, "A user already exists with the provided email.")
		return
	}

	h.db.Model(&models.User{}).Where("phone_number = ?", req.PhoneNumber).Count(&count)
	if count > 0 {
		httperr.Conflict(c, httperr.CodePhoneExists, "A user already exists with the provided phone number.")
		return
	}

	ctx := c.Request.Context()

	externalID, err := h.provider.CreateAccount(ctx, identity.Account{
		Username:  email,
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       email,
		PhoneNumber: req.PhoneNumber,
		ExternalID:  externalID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Compensate: the provider account must not outlive a failed insert.
		if delErr := h.provider.DeleteAccount(ctx, externalID); delErr != nil {
			log.Printf("orphaned identity account %s after failed user insert: %v", externalID, delErr)
		}
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Created(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	var users []models.User
	if err := h.db.
		Order("id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, users)
}

// Search matches the term against first and last names, case-insensitive.
func (h *UserHandler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	if term == "" {
		httperr.BadRequest(c, "invalid_request", "Search term is required.")
		return
	}
	page, limit := parsePagination(c)

	like := "%" + strings.ToLower(term) + "%"

	var users []models.User
	if err := h.db.
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like).
		Order("id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "User not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, user)
}

// Update patches the local record and pushes the profile to the identity
// provider before committing; a provider failure leaves the row untouched.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "User not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))

		var count int64
		h.db.Model(&models.User{}).
			Where("email = ? AND id <> ?", email, id).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, httperr.CodeEmailExists, "A user already exists with the provided email.")
			return
		}
		user.Email = email
	}

	if req.PhoneNumber != nil {
		if !validators.IsPhoneNumberValid(*req.PhoneNumber) {
			httperr.BadRequest(c, "invalid_phone_number", "Phone number must be 10 digits or less.")
			return
		}

		var count int64
		h.db.Model(&models.User{}).
			Where("phone_number = ? AND id <> ?", *req.PhoneNumber, id).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, httperr.CodePhoneExists, "A user already exists with the provided phone number.")
			return
		}
		user.PhoneNumber = *req.PhoneNumber
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	ctx := c.Request.Context()

	if err := h.provider.UpdateAccount(ctx, user.ExternalID, identity.Account{
		Username:  user.Email,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.Save(&user).Error; err != nil {
		// Provider already holds the new profile; log the drift.
		log.Printf("local update failed after provider push for user %d: %v", user.ID, err)
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, user)
}

// UpdatePassword re-authenticates the old password against the provider and
// sets the new one there. No password state exists locally.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "User not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		httperr.BadRequest(c, "password_mismatch", "New password and confirm password do not match.")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.provider.Authenticate(ctx, user.Email, req.OldPassword); err != nil {
		httperr.BadRequest(c, "old_password_incorrect", "Old password is incorrect.")
		return
	}

	if err := h.provider.SetPassword(ctx, user.ExternalID, req.NewPassword); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Message(c, "Password updated successfully")
}

// Delete removes the provider account first, then the local row.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "User not found.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	ctx := c.Request.Context()

	if err := h.provider.DeleteAccount(ctx, user.ExternalID); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.Delete(&models.User{}, id).Error; err != nil {
		log.Printf("local delete failed after provider delete for user %d: %v", id, err)
		httperr.FromError(c, err)
		return
	}

	var actor *uint
	if principal := middleware.MustPrincipal(c); principal != nil {
		var acting models.User
		if err := h.db.Where("external_id = ?", principal.ExternalID).First(&acting).Error; err == nil {
			actor = &acting.ID
		}
	}
	h.audit.Dispatch(audit.Event{
		UserID:   actor,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})

	httpresp.Message(c, "User deleted successfully")
}

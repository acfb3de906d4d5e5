package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/identity"
	"github.com/barberbook/booking-api/internal/middleware"
	"github.com/barberbook/booking-api/internal/models"
)

type AuthHandler struct {
	db       *gorm.DB
	provider identity.Provider
}

func NewAuthHandler(db *gorm.DB, provider identity.Provider) *AuthHandler {
	return &AuthHandler{db: db, provider: provider}
}

// --------- Requests ---------

type TokenRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Token exchanges credentials for an access token issued by the identity
// provider. Password checking happens entirely on the provider side.
func (h *AuthHandler) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Username and password are required.")
		return
	}

	token, err := h.provider.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me resolves the verified caller to their local user record.
func (h *AuthHandler) Me(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	var user models.User
	if err := h.db.
		Where("external_id = ?", principal.ExternalID).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "not_found", "No local user for this account.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	// The token's realm roles are authoritative; mirror the admin role into
	// the local flag whenever it drifts.
	if isAdmin := principal.HasRole("admin"); user.IsAdmin != isAdmin {
		if err := h.db.Model(&user).Update("is_admin", isAdmin).Error; err != nil {
			log.Printf("failed to mirror admin role for user %d: %v", user.ID, err)
		} else {
			user.IsAdmin = isAdmin
		}
	}

	c.JSON(200, gin.H{
		"user":  user,
		"roles": principal.Roles,
	})
}

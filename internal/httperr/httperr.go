package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var statusByCode = map[string]int{
	CodeInvalidUserRef:    http.StatusBadRequest,
	CodeInvalidBarberRef:  http.StatusBadRequest,
	CodeInvalidSlotRef:    http.StatusBadRequest,
	CodeInvalidServiceRef: http.StatusBadRequest,
	CodeEmailExists:       http.StatusConflict,
	CodePhoneExists:       http.StatusConflict,
	CodeScheduleExists:    http.StatusConflict,
	CodeSlotOverlap:       http.StatusConflict,
	CodeSlotAlreadyBooked: http.StatusConflict,
	CodeAlreadyBarber:     http.StatusConflict,
	CodeInvalidState:      http.StatusBadRequest,

	CodeIdentityProvider:   http.StatusBadGateway,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeInvalidToken:       http.StatusUnauthorized,
	CodeInsufficientRole:   http.StatusForbidden,
}

var messageByCode = map[string]string{
	CodeInvalidUserRef:    "User does not exist.",
	CodeInvalidBarberRef:  "Barber does not exist.",
	CodeInvalidSlotRef:    "Time slot does not exist.",
	CodeInvalidServiceRef: "Service does not exist.",
	CodeEmailExists:       "A user already exists with the provided email.",
	CodePhoneExists:       "A user already exists with the provided phone number.",
	CodeScheduleExists:    "A schedule already exists for this barber and date.",
	CodeSlotOverlap:       "Time slot overlaps an existing slot.",
	CodeSlotAlreadyBooked: "One or more time slots are no longer available.",
	CodeAlreadyBarber:     "User is already a barber.",
	CodeInvalidState:      "Operation not allowed in the current state.",

	CodeIdentityProvider:   "Identity provider request failed.",
	CodeInvalidCredentials: "Invalid username or password.",
	CodeInvalidToken:       "Invalid token.",
	CodeInsufficientRole:   "Insufficient role.",
}

// FromError writes err to the response. Business codes get their mapped status
// and message; everything else is a logged 500 with a generic body.
func FromError(c *gin.Context, err error) {
	if code := BusinessCode(err); code != "" {
		status, ok := statusByCode[code]
		if !ok {
			status = http.StatusBadRequest
		}
		msg, ok := messageByCode[code]
		if !ok {
			msg = code
		}
		Write(c, status, code, msg)
		return
	}

	// Unique-index races slip past the pre-insert checks; surface them as
	// conflicts instead of opaque 500s.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		Conflict(c, "duplicate_record", "A record with these values already exists.")
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Internal(c, "internal_error", "An unexpected error occurred.")
}

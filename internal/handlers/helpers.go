package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barberbook/booking-api/internal/httperr"
)

// parseIDParam reads a positive integer path parameter, writing a 400 on
// failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_request", "Invalid "+name+" parameter.")
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/limit query parameters with defaults 1/10.
func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

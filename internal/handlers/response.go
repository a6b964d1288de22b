package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

// All endpoints answer with the same envelope:
// {"success": bool, "message": string, ...}.
func respondOK(c *gin.Context, message string, fields gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// respondServiceError maps business errors onto HTTP codes. Unknown
// errors become a generic 500 so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrCancelPaidOrder),
		errors.Is(err, services.ErrAlreadyPaid),
		errors.Is(err, services.ErrNotLead),
		errors.Is(err, services.ErrVersionConflict):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidCurrency),
		errors.Is(err, services.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "operation failed")
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/optimizerlabs/site/internal/service"
)

// respondError maps service errors onto HTTP status codes. Validation
// failures carry their field list; everything unexpected becomes a 500.
func respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrTreeConstraint),
		errors.Is(err, service.ErrOrderInvalid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrMediaNotFound),
		errors.Is(err, service.ErrSnippetNotFound),
		errors.Is(err, service.ErrSettingNotFound),
		errors.Is(err, service.ErrRootPageUndefined):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newscast/apperrors"
)

// respondError writes err as JSON. Client errors carry only the message; server
// errors add the underlying details and the error type.
func respondError(c *gin.Context, summary string, err error) {
	status, kind := apperrors.HTTPStatus(err)
	if status < http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(status, gin.H{
		"error":   summary,
		"details": err.Error(),
		"type":    kind,
	})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, "invalid request", apperrors.NewValidationError("%s", err.Error()))
}

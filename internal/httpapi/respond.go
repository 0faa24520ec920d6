package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// All endpoints share the envelope {success, data?, error?}.

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// respondError maps backend errors onto HTTP statuses. Unrecognized errors
// become 500s with the message passed through; this is an internal admin
// tool, so leaking detail to the operator is the point.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrInvalidTable),
		errors.Is(err, types.ErrEmptyPayload),
		errors.Is(err, types.ErrEmptyQuery):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrNotSelect):
		status = http.StatusForbidden
	default:
		zap.S().Errorw("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

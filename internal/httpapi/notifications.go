package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oakridgedental/clinichub/internal/notify"
)

// handleNotifyTest exercises the simulated notification channels with a
// caller-supplied booking payload.
func (s *Server) handleNotifyTest(c *gin.Context) {
	var booking notify.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	results, err := s.dispatcher.Dispatch(booking)
	if err != nil {
		if errors.Is(err, notify.ErrNoRecipient) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"channels": results})
}

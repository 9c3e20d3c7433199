package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type cancelRequest struct {
	RequestID string `json:"requestId" binding:"required"`
}

// handleCancel cancels an in-flight request's context, per spec.md §6
// and §7 — an unknown request id is reported as not_found rather than
// an error, since the request may have already finished.
func (s *Server) handleCancel(c *gin.Context) {
	var body cancelRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	if !s.State.Cancel(body.RequestID) {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

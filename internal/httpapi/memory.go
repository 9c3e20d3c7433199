package httpapi

import (
	"net/http"
	"time"

	"github.com/basupportii/ai-router/internal/memory"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memoryStoreRequest struct {
	Prompt   string `json:"prompt" binding:"required"`
	Response string `json:"response" binding:"required"`
	UserID   string `json:"userId"`
	TeamID   string `json:"teamId"`
	Type     string `json:"type"`
	TTLHours *int   `json:"ttlHours"`
}

func (s *Server) handleMemoryStore(c *gin.Context) {
	var body memoryStoreRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	entry := reqtypes.MemoryEntry{
		ID:        uuid.New().String(),
		Prompt:    body.Prompt,
		Response:  body.Response,
		UserID:    body.UserID,
		TeamID:    body.TeamID,
		Type:      body.Type,
		CreatedAt: time.Now(),
	}
	if body.TTLHours != nil {
		expires := entry.CreatedAt.Add(time.Duration(*body.TTLHours) * time.Hour)
		entry.ExpiresAt = &expires
	}
	if err := s.State.Memory.Save(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backend_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) handleMemoryEntries(c *gin.Context) {
	userID := c.Query("userId")
	teamID := c.Query("teamId")
	teamMode := c.Query("teamMode") == "true"
	c.JSON(http.StatusOK, gin.H{"entries": s.State.Memory.Entries(userID, teamID, teamMode)})
}

func (s *Server) handleMemoryDeleteEntry(c *gin.Context) {
	ok, err := s.State.Memory.Delete(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backend_error", "message": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type memoryTTLRequest struct {
	UserID   string `json:"userId"`
	TeamID   string `json:"teamId"`
	TeamMode bool   `json:"teamMode"`
	TTLHours int    `json:"ttlHours" binding:"required"`
}

func (s *Server) handleMemoryTTL(c *gin.Context) {
	var body memoryTTLRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	n, err := s.State.Memory.SetTTLBulk(body.UserID, body.TeamID, body.TeamMode, time.Duration(body.TTLHours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backend_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (s *Server) handleMemoryPurge(c *gin.Context) {
	n, err := s.State.Memory.Purge()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backend_error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purged": n})
}

type memoryMessageRequest struct {
	UserID  string              `json:"userId" binding:"required"`
	Role    reqtypes.MessageRole `json:"role" binding:"required"`
	Content string              `json:"content" binding:"required"`
}

// handleMemoryMessage appends one conversation turn to the in-process
// memory.Tracker rather than internal/memory's durable store, since
// conversation turns (unlike MemoryEntry pairs) are never persisted to
// disk per spec.md §4.8. The response reports whether the turn count
// has reached the N=8 summarization cadence; no summary entry is
// written here.
func (s *Server) handleMemoryMessage(c *gin.Context) {
	var body memoryMessageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	count := s.Tracker.Append(body.UserID, reqtypes.ConversationMessage{
		Role:      body.Role,
		Content:   body.Content,
		Timestamp: time.Now(),
	})
	c.JSON(http.StatusOK, gin.H{"messageCount": count, "shouldSummarize": memory.ShouldSummarize(count)})
}

func (s *Server) handleMemoryContext(c *gin.Context) {
	userID := c.Param("userId")
	c.JSON(http.StatusOK, gin.H{"messages": s.Tracker.Context(userID)})
}

type isFollowUpRequest struct {
	UserID string `json:"userId" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
}

func (s *Server) handleMemoryIsFollowUp(c *gin.Context) {
	var body isFollowUpRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFollowUp": s.Tracker.IsFollowUp(body.UserID, body.Prompt)})
}

func (s *Server) handleMemoryHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": s.Tracker.Context(c.Param("userId"))})
}

func (s *Server) handleMemoryExport(c *gin.Context) {
	userID := c.Param("userId")
	format := memory.ExportFormat(c.DefaultQuery("format", "text"))
	entries := s.State.Memory.Entries(userID, "", false)
	out, err := memory.Export(entries, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	c.String(http.StatusOK, out)
}

func (s *Server) handleMemoryDeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	entries := s.State.Memory.Entries(userID, "", false)
	deleted := 0
	for _, e := range entries {
		if ok, _ := s.State.Memory.Delete(e.ID); ok {
			deleted++
		}
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

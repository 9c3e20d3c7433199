package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/basupportii/ai-router/internal/generate"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// aliasSpec fixes the route task tag (and optionally default model) a
// specialized alias endpoint applies when the request body omits task.
type aliasSpec struct {
	Task  reqtypes.TaskTag
	Model string
}

// aliasRoutes is the specialized-alias table of spec.md §6.
var aliasRoutes = map[string]aliasSpec{
	"/api/chat":            {Task: reqtypes.TaskChat},
	"/api/reason":          {Task: reqtypes.TaskReason},
	"/api/code":            {Task: reqtypes.TaskCode},
	"/api/sql":             {Task: reqtypes.TaskSQL},
	"/api/vision":          {Task: reqtypes.TaskVision},
	"/api/debug":           {Task: reqtypes.TaskDebug},
	"/api/fast":            {Task: reqtypes.TaskFast},
	"/api/report":          {Task: reqtypes.TaskReport},
	"/api/dashboard":       {Task: reqtypes.TaskDashboard},
	"/api/dashboard/vanilla": {Task: reqtypes.TaskDashboardVanilla},
	"/api/chart":           {Task: reqtypes.TaskChart},
	"/api/image_prompt":    {Task: reqtypes.TaskImagePrompt},
	"/api/video_prompt":    {Task: reqtypes.TaskVideoPrompt},
	"/api/research":        {Task: reqtypes.TaskResearch},
	"/api/custom":          {},
}

// handleAuto returns the handler for /api/auto and every alias; spec
// applies its fixed task tag when the request body omits one.
func (s *Server) handleAuto(spec aliasSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body autoRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
			return
		}

		req := body.toRequest(spec.Task, spec.Model)
		req.ID = uuid.New().String()
		req.CreatedAt = time.Now()

		ctx, cancel := context.WithCancel(c.Request.Context())
		s.State.RegisterRequest(&reqtypes.ActiveRequest{
			RequestID: req.ID,
			UserID:    req.UserID,
			StartedAt: req.CreatedAt,
			Cancel:    cancel,
		})
		defer s.State.FinishRequest(req.ID)
		defer cancel()

		emit, events := collectingEmit()
		result, err := s.Pipeline.Run(ctx, req, emit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "backend_error", "message": err.Error()})
			return
		}

		var ragSources int
		for _, ev := range *events {
			if ev.Type == generate.EventWebSearchResults {
				ragSources++
			}
		}

		c.JSON(http.StatusOK, autoResponse{
			Model:    result.Model,
			Response: result.Response,
			Meta: autoMeta{
				Route:           string(result.Route.Task),
				RouteReason:     result.Route.Rationale,
				Files:           len(req.FilePaths),
				MemoryHits:      result.MemoryHits,
				AutoFiles:       req.Options.AutoFiles,
				MemoryRequested: result.Verdict.Intent == reqtypes.IntentMemory,
				WebUsed:         result.WebUsed,
				RAGSources:      ragSources,
				DurationMS:      result.DurationMS,
				CacheHit:        result.CacheHit,
			},
		})
	}
}

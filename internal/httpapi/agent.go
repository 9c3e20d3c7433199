package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type agentRunRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type agentRunResponse struct {
	Text        string   `json:"text"`
	Steps       int      `json:"steps"`
	ToolsCalled []string `json:"toolsCalled"`
	StopReason  string   `json:"stopReason,omitempty"`
}

// handleAgentRun runs the planner-then-executor tool loop of spec.md
// §6's MULTI_STEP path: the agent decides its own tool calls across
// steps rather than the pipeline routing a single model call.
func (s *Server) handleAgentRun(c *gin.Context) {
	var body agentRunRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	if s.Agent == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream_unavailable", "message": "no agent configured"})
		return
	}

	result, err := s.Agent.Execute(c.Request.Context(), body.Prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend_error", "message": err.Error()})
		return
	}

	toolNames := make([]string, 0, len(result.ToolResults))
	for _, tr := range result.ToolResults {
		toolNames = append(toolNames, tr.ToolName)
	}

	c.JSON(http.StatusOK, agentRunResponse{
		Text:        result.Text,
		Steps:       len(result.Steps),
		ToolsCalled: toolNames,
		StopReason:  result.StopReason,
	})
}

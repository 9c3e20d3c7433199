package httpapi

import (
	"net/http"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/pkg/provider"
	"github.com/gin-gonic/gin"
)

type imageRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

func (s *Server) handleImage(c *gin.Context) {
	var body imageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	n := body.N
	if n <= 0 {
		n = 1
	}
	artifact, err := s.Media.GenerateImage(c.Request.Context(), body.Prompt, &provider.ImageGenerateOptions{
		Prompt:  body.Prompt,
		N:       &n,
		Size:    body.Size,
		Quality: body.Quality,
		Style:   body.Style,
	})
	if err != nil {
		writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": artifact.Path, "mimeType": artifact.MimeType, "bytes": artifact.Bytes})
}

type videoRequest struct {
	Prompt    string   `json:"prompt" binding:"required"`
	FrameArgs []string `json:"frameArgs"`
}

func (s *Server) handleVideo(c *gin.Context) {
	var body videoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	artifact, err := s.Media.GenerateVideo(c.Request.Context(), body.Prompt, body.FrameArgs)
	if err != nil {
		writeMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": artifact.Path, "mimeType": artifact.MimeType, "bytes": artifact.Bytes})
}

func writeMediaError(c *gin.Context, err error) {
	if routererr.Is(err, routererr.KindSandboxTimeout) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "sandbox_timeout", "message": err.Error()})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_unavailable", "message": err.Error()})
}

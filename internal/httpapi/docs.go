package httpapi

import (
	"net/http"
	"os"

	"github.com/basupportii/ai-router/internal/index"
	"github.com/gin-gonic/gin"
)

type docsIndexRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

// handleDocsIndex reads each path and adds it to the keyword inverted
// index, per spec.md §4.3's lightweight RAG path.
func (s *Server) handleDocsIndex(c *gin.Context) {
	var body docsIndexRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	indexed := make([]string, 0, len(body.Paths))
	for _, path := range body.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		s.State.Keyword.Add(path, string(data))
		indexed = append(indexed, path)
	}
	c.JSON(http.StatusOK, gin.H{"indexed": indexed})
}

type docsQueryRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

func (s *Server) handleDocsQuery(c *gin.Context) {
	var body docsQueryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	limit := body.Limit
	if limit <= 0 {
		limit = 5
	}
	c.JSON(http.StatusOK, gin.H{"results": s.State.Keyword.Search(body.Query, limit)})
}

type embeddingsIndexRequest struct {
	Paths []string `json:"paths" binding:"required"`
}

// handleEmbeddingsIndex reads each path, chunks it, embeds every chunk
// through the configured EmbeddingModel, and records it in the
// embedding index, per spec.md §4.3's full RAG path.
func (s *Server) handleEmbeddingsIndex(c *gin.Context) {
	var body embeddingsIndexRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	if s.Embedder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream_unavailable", "message": "no embedding model configured"})
		return
	}

	indexed := make([]string, 0, len(body.Paths))
	for _, path := range body.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		chunks := index.Chunk(string(data))
		if len(chunks) == 0 {
			continue
		}
		result, err := s.Embedder.DoEmbedMany(c.Request.Context(), chunks)
		if err != nil {
			continue
		}
		for i, emb := range result.Embeddings {
			s.State.Embedded.AddChunk(path, i, chunks[i], emb)
		}
		indexed = append(indexed, path)
	}
	c.JSON(http.StatusOK, gin.H{"indexed": indexed})
}

type embeddingsQueryRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

func (s *Server) handleEmbeddingsQuery(c *gin.Context) {
	var body embeddingsQueryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	if s.Embedder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "upstream_unavailable", "message": "no embedding model configured"})
		return
	}
	limit := body.Limit
	if limit <= 0 {
		limit = 5
	}
	result, err := s.Embedder.DoEmbed(c.Request.Context(), body.Query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream_unavailable", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": s.State.Embedded.Search(result.Embedding, limit)})
}

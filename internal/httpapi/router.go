// Package httpapi implements the router's HTTP and WebSocket surface
// (spec.md §6) on top of gin, the way the teacher's examples/gin-server
// wires routes onto a single *gin.Engine: CORS, one handler per route,
// JSON in/out.
package httpapi

import (
	"net/http"

	"github.com/basupportii/ai-router/internal/appstate"
	"github.com/basupportii/ai-router/internal/generate"
	"github.com/basupportii/ai-router/internal/media"
	"github.com/basupportii/ai-router/internal/memory"
	"github.com/basupportii/ai-router/internal/pipeline"
	"github.com/basupportii/ai-router/internal/toolchain"
	"github.com/basupportii/ai-router/pkg/agent"
	"github.com/basupportii/ai-router/pkg/provider"
	"github.com/gin-gonic/gin"
)

// Server bundles everything the route handlers close over.
type Server struct {
	State    *appstate.AppState
	Pipeline *pipeline.Pipeline
	Tools    *toolchain.Registry
	Media    *media.Generator
	Agent    *agent.ToolLoopAgent
	Tracker  *memory.Tracker
	Embedder provider.EmbeddingModel // used by /api/docs and /api/embeddings
}

// NewRouter builds the *gin.Engine with every route from spec.md §6
// registered.
func (s *Server) NewRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", s.handleHealth)

	r.POST("/api/auto", s.handleAuto(aliasSpec{}))
	for path, spec := range aliasRoutes {
		r.POST(path, s.handleAuto(spec))
	}

	r.POST("/api/memory/store", s.handleMemoryStore)
	r.GET("/api/memory/entries", s.handleMemoryEntries)
	r.DELETE("/api/memory/entries/:id", s.handleMemoryDeleteEntry)
	r.POST("/api/memory/entries/ttl", s.handleMemoryTTL)
	r.POST("/api/memory/entries/purge", s.handleMemoryPurge)
	r.POST("/api/memory/message", s.handleMemoryMessage)
	r.GET("/api/memory/context/:userId", s.handleMemoryContext)
	r.POST("/api/memory/is-followup", s.handleMemoryIsFollowUp)
	r.GET("/api/memory/history/:userId", s.handleMemoryHistory)
	r.GET("/api/memory/export/:userId", s.handleMemoryExport)
	r.DELETE("/api/memory/:userId", s.handleMemoryDeleteUser)

	r.POST("/api/tools/:name", s.handleTool)

	r.POST("/api/docs/index", s.handleDocsIndex)
	r.POST("/api/docs/query", s.handleDocsQuery)
	r.POST("/api/embeddings/index", s.handleEmbeddingsIndex)
	r.POST("/api/embeddings/query", s.handleEmbeddingsQuery)

	r.POST("/api/image", s.handleImage)
	r.POST("/api/video", s.handleVideo)

	r.POST("/api/reports/generate", s.handleReportGenerate)
	r.GET("/api/reports/:reportId", s.handleReportStatus)
	r.POST("/api/reports/export/html", s.handleReportExportHTML)
	r.POST("/api/reports/export/pdf", s.handleReportExportPDF)

	r.POST("/api/agent/run", s.handleAgentRun)

	r.POST("/api/cancel", s.handleCancel)

	r.GET("/ws", s.handleWebSocket)

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ai-router"})
}

// collectingEmit turns an in-process generate.Emit sink into a slice
// collector, used by the synchronous HTTP handlers that only need the
// final text (unlike the WS path, which forwards every event live).
func collectingEmit() (generate.Emit, *[]generate.Event) {
	events := make([]generate.Event, 0, 8)
	return func(e generate.Event) { events = append(events, e) }, &events
}

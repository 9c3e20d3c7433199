package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/basupportii/ai-router/internal/generate"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Single-page local client served from the same origin; spec.md
	// does not describe a cross-origin WS deployment.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebSocket serves the single streaming path of spec.md §6: one
// request per connection, every generate.Event forwarded as its own
// JSON frame in write order, ending with "done" or "error".
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var body autoRequest
	if err := conn.ReadJSON(&body); err != nil {
		return
	}

	req := body.toRequest("", "")
	req.ID = uuid.New().String()
	req.CreatedAt = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	s.State.RegisterRequest(&reqtypes.ActiveRequest{
		RequestID: req.ID,
		UserID:    req.UserID,
		StartedAt: req.CreatedAt,
		Cancel:    cancel,
	})
	defer s.State.FinishRequest(req.ID)
	defer cancel()

	// A second read loop watches for a client-sent {"cancel": true}
	// frame while the pipeline runs.
	go func() {
		for {
			var frame struct {
				Cancel    bool   `json:"cancel"`
				RequestID string `json:"requestId"`
			}
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			if frame.Cancel {
				cancel()
				return
			}
		}
	}()

	emit := func(ev generate.Event) {
		_ = conn.WriteJSON(ev)
	}

	// Run emits the closing "done" or "error" frame itself.
	_, _ = s.Pipeline.Run(ctx, req, emit)
}

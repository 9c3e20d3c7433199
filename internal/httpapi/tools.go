package httpapi

import (
	"net/http"

	"github.com/basupportii/ai-router/internal/toolchain"
	"github.com/gin-gonic/gin"
)

// toolRequest is the JSON body for every /api/tools/:name endpoint of
// spec.md §6 — the tool name aliases (python, execute, analyze,
// summarize, sql, schema, sympy, ingest, search, fetch, visualize)
// share one bounded-Args shape; "chain" additionally carries Steps.
type toolRequest struct {
	Code       string            `json:"code"`
	Query      string            `json:"query"`
	Path       string            `json:"path"`
	URL        string            `json:"url"`
	Text       string            `json:"text"`
	AllowWrite bool              `json:"allowWrite"`
	Extra      map[string]string `json:"extra"`
	Steps      []struct {
		Name string            `json:"name"`
		Args map[string]string `json:"args"`
	} `json:"steps"`
}

var toolNameAliases = map[string]toolchain.Kind{
	"python":    toolchain.KindPython,
	"execute":   toolchain.KindPython,
	"analyze":   toolchain.KindAnalyze,
	"summarize": toolchain.KindSummarize,
	"sql":       toolchain.KindSQL,
	"schema":    toolchain.KindSQLSchema,
	"sympy":     toolchain.KindSympy,
	"ingest":    toolchain.KindIngest,
	"search":    toolchain.KindSearch,
	"fetch":     toolchain.KindFetch,
	"visualize": toolchain.KindVisualize,
}

// handleTool dispatches /api/tools/:name, per spec.md §4.6 and §6. The
// "chain" name runs an ordered sequence of steps, each step seeing the
// prior step's error string (if any) rather than aborting the chain.
func (s *Server) handleTool(c *gin.Context) {
	name := c.Param("name")

	if name == "chain" {
		s.handleToolChain(c)
		return
	}

	kind, ok := toolNameAliases[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tool_not_found", "message": name})
		return
	}

	var body toolRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	result, err := s.Tools.Dispatch(c.Request.Context(), kind, toolchain.Args{
		Code:       body.Code,
		Query:      body.Query,
		Path:       body.Path,
		URL:        body.URL,
		Text:       body.Text,
		AllowWrite: body.AllowWrite,
		Extra:      body.Extra,
	})
	if err != nil {
		writeToolError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"output": result.Output})
}

func (s *Server) handleToolChain(c *gin.Context) {
	var body toolRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	type stepOutcome struct {
		Name   string `json:"name"`
		Output string `json:"output,omitempty"`
		Error  string `json:"error,omitempty"`
	}
	outcomes := make([]stepOutcome, 0, len(body.Steps))

	var lastError string
	for _, step := range body.Steps {
		kind, ok := toolchain.ResolveKind(step.Name)
		if !ok {
			outcomes = append(outcomes, stepOutcome{Name: step.Name, Error: "tool_not_found"})
			continue
		}
		args := toolchain.Args{
			Code:  step.Args["code"],
			Query: step.Args["query"],
			Path:  step.Args["path"],
			URL:   step.Args["url"],
			Text:  step.Args["text"] + lastError,
		}
		result, err := s.Tools.Dispatch(c.Request.Context(), kind, args)
		if err != nil {
			lastError = err.Error()
			outcomes = append(outcomes, stepOutcome{Name: step.Name, Error: lastError})
			continue
		}
		lastError = ""
		outcomes = append(outcomes, stepOutcome{Name: step.Name, Output: result.Output})
	}
	c.JSON(http.StatusOK, gin.H{"steps": outcomes})
}

func writeToolError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "unsafe_code", "message": err.Error()})
}

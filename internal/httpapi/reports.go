package httpapi

import (
	"net/http"
	"time"

	"github.com/basupportii/ai-router/internal/format"
	"github.com/basupportii/ai-router/internal/generate"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type reportGenerateRequest struct {
	Prompt   string   `json:"prompt" binding:"required"`
	UserID   string   `json:"userId"`
	Sections []string `json:"sections"`
}

// handleReportGenerate kicks off an ANALYSIS_REPORT run and returns the
// job id immediately, per spec.md §6 — the pipeline runs synchronously
// here (no background worker pool exists yet) but the job record lets
// a client poll GET /api/reports/:reportId the same way it would if
// generation ran async.
func (s *Server) handleReportGenerate(c *gin.Context) {
	var body reportGenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	reportID := uuid.New().String()
	job := &reqtypes.ReportJob{
		ReportID:  reportID,
		UserID:    body.UserID,
		Status:    reqtypes.ReportGenerating,
		StartTime: time.Now(),
		Sections:  body.Sections,
	}
	s.State.PutReportJob(job)

	task := reqtypes.TaskReport
	req := reqtypes.Request{
		ID:           reportID,
		UserID:       body.UserID,
		Prompt:       body.Prompt,
		TaskOverride: &task,
		CreatedAt:    time.Now(),
	}

	result, err := s.Pipeline.Run(c.Request.Context(), req, func(generate.Event) {})
	if err != nil {
		job.Status = reqtypes.ReportFailed
		s.State.PutReportJob(job)
		c.JSON(http.StatusOK, gin.H{"reportId": reportID, "status": job.Status})
		return
	}

	job.Status = reqtypes.ReportComplete
	job.Progress = 100
	job.Tokens = len(result.Response)
	s.State.PutReportJob(job)

	c.JSON(http.StatusOK, gin.H{"reportId": reportID, "status": job.Status})
}

func (s *Server) handleReportStatus(c *gin.Context) {
	job, ok := s.State.GetReportJob(c.Param("reportId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

type reportExportRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (s *Server) handleReportExportHTML(c *gin.Context) {
	var body reportExportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	rendered := format.Format(body.Body)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<h1>"+body.Title+"</h1>"+rendered.HTML))
}

func (s *Server) handleReportExportPDF(c *gin.Context) {
	var body reportExportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}
	pdf := format.RenderPDF(body.Title, body.Body)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Package appstate lifts the process's one block of shared mutable
// state into a single struct, constructed once at startup and handed
// down to every request handler, per the teacher's "no global mutable
// state" convention (mirrored by the router's own config.Config
// immutability rule).
package appstate

import (
	"sync"
	"time"

	"github.com/basupportii/ai-router/internal/cache"
	"github.com/basupportii/ai-router/internal/config"
	"github.com/basupportii/ai-router/internal/index"
	"github.com/basupportii/ai-router/internal/memory"
	"github.com/basupportii/ai-router/internal/reqtypes"
)

// AppState owns every collaborator that outlives a single request.
type AppState struct {
	Config config.Config

	Cache    *cache.Cache
	Memory   *memory.Store
	Keyword  *index.Keyword
	Embedded *index.Embedded

	activeMu sync.Mutex
	active   map[string]*reqtypes.ActiveRequest

	statsMu sync.Mutex
	stats   map[string]*reqtypes.ModelStat

	reportsMu sync.Mutex
	reports   map[string]*reqtypes.ReportJob
}

// New constructs the AppState for one process lifetime. Called exactly
// once, from run in cmd/router.
func New(cfg config.Config) (*AppState, error) {
	memStore, err := memory.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	respCache, err := cache.NewCache(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return &AppState{
		Config:   cfg,
		Cache:    respCache,
		Memory:   memStore,
		Keyword:  index.NewKeyword(),
		Embedded: index.NewEmbedded(),
		active:   make(map[string]*reqtypes.ActiveRequest),
		stats:    make(map[string]*reqtypes.ModelStat),
		reports:  make(map[string]*reqtypes.ReportJob),
	}, nil
}

// RegisterRequest records an in-flight request for cancellation and
// inspection; the caller removes it via FinishRequest when the final
// event is sent or the client disconnects.
func (a *AppState) RegisterRequest(req *reqtypes.ActiveRequest) {
	a.activeMu.Lock()
	defer a.activeMu.Unlock()
	a.active[req.RequestID] = req
}

// FinishRequest removes a completed or cancelled request's entry.
func (a *AppState) FinishRequest(requestID string) {
	a.activeMu.Lock()
	defer a.activeMu.Unlock()
	delete(a.active, requestID)
}

// Cancel looks up an active request and invokes its cancel func,
// per POST /api/cancel.
func (a *AppState) Cancel(requestID string) bool {
	a.activeMu.Lock()
	req, ok := a.active[requestID]
	a.activeMu.Unlock()
	if !ok || req.Cancel == nil {
		return false
	}
	req.Cancel()
	return true
}

// ActiveRequests returns a snapshot of in-flight requests.
func (a *AppState) ActiveRequests() []reqtypes.ActiveRequest {
	a.activeMu.Lock()
	defer a.activeMu.Unlock()
	out := make([]reqtypes.ActiveRequest, 0, len(a.active))
	for _, r := range a.active {
		out = append(out, *r)
	}
	return out
}

// RecordModelCall is advisory, process-local usage tracking; never
// persisted, reset on restart.
func (a *AppState) RecordModelCall(model string, duration time.Duration, failed bool) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	stat, ok := a.stats[model]
	if !ok {
		stat = &reqtypes.ModelStat{}
		a.stats[model] = stat
	}
	stat.Count++
	stat.SumDurations += duration
	if failed {
		stat.Errors++
	}
}

// ModelStats returns a snapshot of per-model usage counters.
func (a *AppState) ModelStats() map[string]reqtypes.ModelStat {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	out := make(map[string]reqtypes.ModelStat, len(a.stats))
	for k, v := range a.stats {
		out[k] = *v
	}
	return out
}

// PutReportJob inserts or updates a report job's tracked state.
func (a *AppState) PutReportJob(job *reqtypes.ReportJob) {
	a.reportsMu.Lock()
	defer a.reportsMu.Unlock()
	a.reports[job.ReportID] = job
}

// GetReportJob returns the tracked state for a report job, if any.
func (a *AppState) GetReportJob(reportID string) (reqtypes.ReportJob, bool) {
	a.reportsMu.Lock()
	defer a.reportsMu.Unlock()
	job, ok := a.reports[reportID]
	if !ok {
		return reqtypes.ReportJob{}, false
	}
	return *job, true
}

// RemoveReportJob drops a terminal-state report job from tracking.
func (a *AppState) RemoveReportJob(reportID string) {
	a.reportsMu.Lock()
	defer a.reportsMu.Unlock()
	delete(a.reports, reportID)
}

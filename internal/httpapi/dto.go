package httpapi

import "github.com/basupportii/ai-router/internal/reqtypes"

// autoRequest is the JSON body shape for POST /api/auto and every
// specialized alias, per spec.md §6.
type autoRequest struct {
	Prompt           string   `json:"prompt" binding:"required"`
	Task             string   `json:"task"`
	Model            string   `json:"model"`
	Fast             bool     `json:"fast"`
	AutoFiles        bool     `json:"autoFiles"`
	AutoWeb          bool     `json:"autoWeb"`
	FilePaths        []string `json:"filePaths"`
	ImageDescription string   `json:"imageDescription"`
	UserID           string   `json:"userId"`
	TeamID           string   `json:"teamId"`
	TeamMode         bool     `json:"teamMode"`
	UseDocIndex      bool     `json:"useDocIndex"`
	UseEmbeddings    bool     `json:"useEmbeddings"`
	Force            bool     `json:"force"`
	Language         string   `json:"language"`
	ResponseSpec     struct {
		Format string `json:"format"`
	} `json:"responseSpec"`
	RequestID string `json:"requestId"`
}

// autoMeta is the meta block accompanying every /api/auto-family
// response, per spec.md §6.
type autoMeta struct {
	Route            string `json:"route"`
	RouteReason      string `json:"routeReason"`
	Files            int    `json:"files"`
	MemoryHits       int    `json:"memoryHits"`
	AutoFiles        bool   `json:"autoFiles"`
	MemoryRequested  bool   `json:"memoryRequested"`
	WebUsed          bool   `json:"webUsed"`
	RAGSources       int    `json:"ragSources"`
	DurationMS       int64  `json:"durationMs"`
	CacheHit         bool   `json:"cacheHit"`
}

type autoResponse struct {
	Model    string   `json:"model"`
	Response string   `json:"response"`
	Meta     autoMeta `json:"meta"`
}

// toRequest converts the wire DTO into the internal pipeline Request,
// resolving the task tag override if one was supplied.
func (r autoRequest) toRequest(defaultTask reqtypes.TaskTag, defaultModel string) reqtypes.Request {
	var taskOverride *reqtypes.TaskTag
	switch {
	case r.Task != "":
		t := reqtypes.TaskTag(r.Task)
		taskOverride = &t
	case defaultTask != "":
		taskOverride = &defaultTask
	}

	model := r.Model
	if model == "" {
		model = defaultModel
	}

	return reqtypes.Request{
		UserID:           r.UserID,
		TeamID:           r.TeamID,
		Prompt:           r.Prompt,
		Language:         r.Language,
		TaskOverride:     taskOverride,
		ModelOverride:    model,
		ImageDescription: r.ImageDescription,
		FilePaths:        r.FilePaths,
		Options: reqtypes.Options{
			Fast:          r.Fast,
			AutoWeb:       r.AutoWeb,
			AutoFiles:     r.AutoFiles,
			UseDocIndex:   r.UseDocIndex,
			UseEmbeddings: r.UseEmbeddings,
			TeamMode:      r.TeamMode,
			Force:         r.Force,
		},
		ResponseSpec: reqtypes.ResponseSpec{Format: r.ResponseSpec.Format},
	}
}

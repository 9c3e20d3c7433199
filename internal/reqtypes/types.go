// Package reqtypes holds the data model shared across every pipeline
// stage: the inbound Request, the classifier's verdict, the chosen
// Route, and the long-lived entities (conversation turns, memory
// entries, cache entries, doc index rows) that stages read and write.
package reqtypes

import "time"

// Intent is a closed catalog tag produced by the classifier.
type Intent string

const (
	IntentSimpleQA           Intent = "SIMPLE_QA"
	IntentGrammarCorrection  Intent = "GRAMMAR_CORRECTION"
	IntentWorldKnowledge     Intent = "WORLD_KNOWLEDGE"
	IntentRankingQuery       Intent = "RANKING_QUERY"
	IntentCodeTask           Intent = "CODE_TASK"
	IntentMathReasoning      Intent = "MATH_REASONING"
	IntentSQLQuery           Intent = "SQL_QUERY"
	IntentDataAnalysis       Intent = "DATA_ANALYSIS"
	IntentCreative           Intent = "CREATIVE"
	IntentDecisionMaking     Intent = "DECISION_MAKING"
	IntentLearning           Intent = "LEARNING"
	IntentMemory             Intent = "MEMORY"
	IntentMultiStep          Intent = "MULTI_STEP"
	IntentDebugLog           Intent = "DEBUG_LOG"
	IntentHTMLMarkup         Intent = "HTML_MARKUP"
	IntentAnalysisReport     Intent = "ANALYSIS_REPORT"
	IntentVisualization      Intent = "VISUALIZATION"
	IntentProofSolving       Intent = "PROOF_SOLVING"
	IntentSystemDesign       Intent = "SYSTEM_DESIGN"
	IntentFormulaGeneration  Intent = "FORMULA_GENERATION"
	IntentRiddle             Intent = "RIDDLE"
)

// ConfidenceTier is the classifier's coarse confidence label.
type ConfidenceTier string

const (
	ConfidenceLow      ConfidenceTier = "LOW"
	ConfidenceMedium   ConfidenceTier = "MEDIUM"
	ConfidenceHigh     ConfidenceTier = "HIGH"
	ConfidenceVeryHigh ConfidenceTier = "VERY_HIGH"
)

// ComplexityTier is the classifier's coarse complexity label, used by
// routing to pick model size.
type ComplexityTier string

const (
	ComplexityTrivial ComplexityTier = "TRIVIAL"
	ComplexityLow     ComplexityTier = "LOW"
	ComplexityMedium  ComplexityTier = "MEDIUM"
	ComplexityHigh    ComplexityTier = "HIGH"
	ComplexityVeryHigh ComplexityTier = "VERY_HIGH"
)

// TaskTag is the closed set of route task tags.
type TaskTag string

const (
	TaskChat             TaskTag = "chat"
	TaskReason           TaskTag = "reason"
	TaskCode             TaskTag = "code"
	TaskSQL              TaskTag = "sql"
	TaskDebug            TaskTag = "debug"
	TaskChart            TaskTag = "chart"
	TaskVision           TaskTag = "vision"
	TaskResearch         TaskTag = "research"
	TaskReport           TaskTag = "report"
	TaskDashboard        TaskTag = "dashboard"
	TaskDashboardVanilla TaskTag = "dashboard_vanilla"
	TaskImagePrompt      TaskTag = "image_prompt"
	TaskVideoPrompt      TaskTag = "video_prompt"
	TaskFast             TaskTag = "fast"
	TaskGrammar          TaskTag = "grammar"
	TaskPersonal         TaskTag = "personal"
	TaskGreeting         TaskTag = "greeting"
)

// ResponseSpec describes what shape the caller wants the answer in;
// left loose (free-form hints) since the formatter decides the final
// envelope regardless.
type ResponseSpec struct {
	Format string `json:"format,omitempty"`
}

// Options carries the per-request boolean flags and generation knobs
// from spec.md's Request entity.
type Options struct {
	Temperature   *float64
	MaxTokens     *int
	Fast          bool
	AutoWeb       bool
	AutoFiles     bool
	UseDocIndex   bool
	UseEmbeddings bool
	TeamMode      bool
	Force         bool // force:true bypasses the save-to-memory trigger phrase check
}

// Request is the internal representation both HTTP and WS ingress
// paths normalize into before the pipeline runs.
type Request struct {
	ID                string
	UserID            string
	TeamID            string
	Prompt            string
	NormalizedPrompt  string
	Language          string
	TaskOverride      *TaskTag
	ModelOverride     string
	Options           Options
	FilePaths         []string
	ImageDescription  string
	ResponseSpec      ResponseSpec
	CreatedAt         time.Time
}

// Alternative is one runner-up intent score, included in IntentVerdict
// for inspection/debugging.
type Alternative struct {
	Intent Intent
	Score  int
}

// ShapeFacts are boolean/numeric observations about the prompt surfaced
// for inspection but never consulted by routing.
type ShapeFacts struct {
	HasQuestionMark bool
	HasCode         bool
	HasSQL          bool
	HasHTML         bool
	HasFormula      bool
	HasMath         bool
	WordCount       int
}

// IntentVerdict is the pure, total output of the classifier.
type IntentVerdict struct {
	Intent          Intent
	Confidence      ConfidenceTier
	Score           int
	RequiresWeb     bool
	PreferredModel  string
	PrimaryTools    []string
	FlexibleTools   bool
	Complexity      ComplexityTier
	Alternatives    []Alternative
	Shape           ShapeFacts
}

// Route is the derived task/model/system-prompt selection for one request.
type Route struct {
	Task           TaskTag
	Model          string
	SystemPromptID string
	Rationale      string
}

// MessageRole mirrors provider/types.MessageRole for conversation turns
// kept outside the LM call boundary (memory ring buffer).
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// ConversationMessage is one ring-buffer entry of per-user chat history.
type ConversationMessage struct {
	Role      MessageRole
	Content   string
	Timestamp time.Time
	Intent    Intent // user messages only
	Quality   float64 // user messages only
	CodeLang  string  // optional code metadata
}

// MemoryEntry is a durable user<->assistant pair recalled across sessions.
type MemoryEntry struct {
	ID          string     `json:"id"`
	Prompt      string     `json:"prompt"`
	Response    string     `json:"response"`
	Keywords    []string   `json:"keywords"`
	Embedding   []float64  `json:"embedding,omitempty"`
	UserID      string     `json:"userId"`
	TeamID      string     `json:"teamId,omitempty"`
	Type        string     `json:"type,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// DocChunk is one embedded slice of an indexed local file.
type DocChunk struct {
	Path       string    `json:"path"`
	ChunkIndex int       `json:"chunkIndex"`
	Text       string    `json:"text"`
	Embedding  []float64 `json:"embedding"`
	Hash       string    `json:"hash"`
}

// DocEntry is one keyword-indexed local file.
type DocEntry struct {
	Path     string   `json:"path"`
	Keywords []string `json:"keywords"`
	Snippet  string   `json:"snippet"`
}

// CacheEntry is one exact/semantic cache row.
type CacheEntry struct {
	Key       string    `json:"key"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Embedding []float64 `json:"embedding,omitempty"`
	Intent    Intent    `json:"intent"`
	Hits      int       `json:"hits"`
}

// ModelStat is advisory, process-local usage tracking for a backend model.
type ModelStat struct {
	Count        int64
	Errors       int64
	SumDurations time.Duration
}

// ReportJobStatus is the closed set of report lifecycle states.
type ReportJobStatus string

const (
	ReportQueued     ReportJobStatus = "queued"
	ReportGenerating ReportJobStatus = "generating"
	ReportFormatting ReportJobStatus = "formatting"
	ReportComplete   ReportJobStatus = "complete"
	ReportFailed     ReportJobStatus = "failed"
)

// ReportJob tracks one async report generation.
type ReportJob struct {
	ReportID  string
	UserID    string
	Status    ReportJobStatus
	Progress  int
	StartTime time.Time
	Tokens    int
	Sections  []string
}

// ActiveRequest tracks one in-flight request for cancellation and
// inspection; entries are created at ingress and removed when the
// final event is sent or the client disconnects.
type ActiveRequest struct {
	RequestID string
	UserID    string
	Intent    Intent
	Model     string
	StartedAt time.Time
	Cancel    func()
}

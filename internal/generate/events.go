package generate

import "time"

// EventType is the closed set of server events a streaming client can
// observe, per spec.md §6's WebSocket protocol.
type EventType string

const (
	EventIntentClassification EventType = "intent_classification"
	EventReasoningPhase       EventType = "reasoning_phase"
	EventWebSearchResults     EventType = "web_search_results"
	EventToken                EventType = "token"
	EventModelFallback        EventType = "model_fallback"
	EventModelRetryStart      EventType = "model_retry_start"
	EventModelRetryDone       EventType = "model_retry_done"
	EventModelRetryFailed     EventType = "model_retry_failed"
	EventDone                 EventType = "done"
	EventError                EventType = "error"
)

// Event is one server-to-client message. Only the fields relevant to
// Type are populated; the rest are zero.
type Event struct {
	Type EventType `json:"type"`

	// intent_classification
	Intent     string `json:"intent,omitempty"`
	Confidence string `json:"confidence,omitempty"`

	// reasoning_phase
	Phase Phase `json:"phase,omitempty"`

	// web_search_results
	Citations string `json:"citations,omitempty"`

	// token
	Text string `json:"text,omitempty"`

	// model_fallback / model_retry_*
	FromModel string `json:"fromModel,omitempty"`
	ToModel   string `json:"toModel,omitempty"`
	Reason    string `json:"reason,omitempty"`

	// done
	Meta *DoneMeta `json:"meta,omitempty"`

	// error
	ErrorMessage string `json:"error,omitempty"`
	ErrorKind    string `json:"errorKind,omitempty"`
}

// DoneMeta is the mandatory trailer on a done event.
type DoneMeta struct {
	DurationMS  int64             `json:"durationMs"`
	Model       string            `json:"model"`
	ToolsUsed   []string          `json:"toolsUsed"`
	ToolTimings map[string]int64  `json:"toolTimings"` // tool name -> ms
	Format      string            `json:"format"`
}

// Emit is how the supervisor hands an Event to its caller. Kept as a
// plain func type (not a channel) so HTTP and WS ingress paths can
// adapt it to their own transport without the supervisor knowing
// which one it is talking to.
type Emit func(Event)

func durationMS(d time.Duration) int64 { return d.Milliseconds() }

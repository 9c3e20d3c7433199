// Package routererr defines the closed set of error kinds surfaced at
// the HTTP/WS boundary (spec §7), modeled the way the teacher's
// pkg/provider/errors models ProviderError/ValidationError: one typed
// struct whose Kind field carries a stable string, with Unwrap exposing
// the underlying cause.
package routererr

import "fmt"

// Kind is the stable string serialized to clients in error responses.
type Kind string

const (
	KindBadRequest          Kind = "bad_request"
	KindToolsDisabled       Kind = "tools_disabled"
	KindUnsafeCode          Kind = "unsafe_code"
	KindSandboxTimeout      Kind = "sandbox_timeout"
	KindSandboxError        Kind = "sandbox_error"
	KindBackendError        Kind = "backend_error"
	KindInsufficientMemory  Kind = "insufficient_memory"
	KindTimeout             Kind = "timeout"
	KindCancelled           Kind = "cancelled"
	KindNotFound            Kind = "not_found"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindToolNotFound        Kind = "tool_not_found"
	KindInvalidPath         Kind = "invalid_path"
)

// Error is the router's boundary error type. Every error kind in §7 is
// a *Error distinguished by Kind, so callers can errors.As into one
// type and switch on the Kind field instead of matching N types.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs a *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs a *Error of the given kind wrapping cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	re, ok := err.(*Error)
	return ok && re.Kind == kind
}

// MemoryPressureSentinel matches backend error bodies that indicate the
// model host is out of memory, per spec §4.5's RETRY transition.
// Ollama reports this as a plain-text "model requires more system
// memory" style message in the HTTP body rather than a status code, so
// matching is a substring search, not a typed error.
func MemoryPressureSentinel(body string) bool {
	return containsFold(body, "not enough memory") ||
		containsFold(body, "requires more system memory") ||
		containsFold(body, "out of memory")
}

func containsFold(s, substr string) bool {
	return len(s) >= len(substr) && indexFold(s, substr) >= 0
}

func indexFold(s, substr string) int {
	sl, bl := len(s), len(substr)
	if bl == 0 {
		return 0
	}
	for i := 0; i+bl <= sl; i++ {
		if equalFold(s[i:i+bl], substr) {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

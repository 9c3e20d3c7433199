package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// TracerName identifies spans emitted by the router's generation
	// path (pkg/ai.GenerateText/StreamText, reached from
	// internal/generate.Supervisor) in whatever OTel backend the
	// operator points this at.
	TracerName = "ai-router"
)

// GetTracer picks the tracer a generation/embedding call should record
// spans against: a no-op tracer when settings disables telemetry (the
// router's own default, since most local single-user installs never
// configure an OTel collector), the caller's own *Tracer when one is
// supplied, or the process-global tracer otherwise.
func GetTracer(settings *Settings) trace.Tracer {
	if settings == nil || !settings.IsEnabled {
		return noop.NewTracerProvider().Tracer(TracerName)
	}

	if settings.Tracer != nil {
		return settings.Tracer
	}

	return otel.Tracer(TracerName)
}

// Package generate implements the generation supervisor of spec.md
// §4.5: it streams tokens from the selected backend model, interleaves
// cosmetic reasoning-phase events, and runs the two-attempt fallback
// state machine on memory-pressure errors and per-attempt timeouts.
package generate

import (
	"context"
	"time"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/internal/route"
	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/pkg/ai"
	"github.com/basupportii/ai-router/pkg/provider"
)

// defaultAttemptTimeout bounds a single ATTEMPT for every model except
// the reasoning model, which per spec.md §4.5 has no deadline.
const defaultAttemptTimeout = 45 * time.Second

// ResolveModel looks up a provider.LanguageModel by its route-assigned
// name (registry lookup lives in cmd/router, which builds the resolver
// over pkg/registry).
type ResolveModel func(name string) (provider.LanguageModel, error)

// Supervisor runs one request's ATTEMPT/RETRY/DONE/FAILED generation
// state machine.
type Supervisor struct {
	Models         route.ModelSet
	Resolve        ResolveModel
	AttemptTimeout time.Duration
}

func NewSupervisor(models route.ModelSet, resolve ResolveModel) *Supervisor {
	return &Supervisor{Models: models, Resolve: resolve, AttemptTimeout: defaultAttemptTimeout}
}

// Run streams the answer for one request, emitting events as it goes.
// It returns the final accumulated text and the model that ultimately
// produced it.
func (s *Supervisor) Run(ctx context.Context, v reqtypes.IntentVerdict, prompt, system, initialModel string, emit Emit) (string, string, error) {
	go s.emitPhases(ctx, v, emit)

	model := initialModel
	text, err := s.attempt(ctx, model, prompt, system, emit)
	if err == nil {
		return text, model, nil
	}

	kind := routererr.Kind("")
	if rerr, ok := err.(*routererr.Error); ok {
		kind = rerr.Kind
	}

	reason := ""
	switch {
	case routererr.MemoryPressureSentinel(err.Error()):
		reason = "insufficient_memory"
	case kind == routererr.KindTimeout:
		reason = "timeout"
	case kind == routererr.KindCancelled:
		return "", model, err
	default:
		reason = "backend_error"
	}

	fallback := FallbackModel(v, model, s.Models)
	emit(Event{Type: EventModelFallback, FromModel: model, ToModel: fallback, Reason: reason})
	emit(Event{Type: EventModelRetryStart, FromModel: model, ToModel: fallback, Reason: reason})

	text, err2 := s.attempt(ctx, fallback, prompt, system, emit)
	if err2 != nil {
		emit(Event{Type: EventModelRetryFailed, FromModel: model, ToModel: fallback, Reason: "timeout"})
		return "", fallback, routererr.Wrap(routererr.KindTimeout, "retry attempt failed", err2)
	}
	emit(Event{Type: EventModelRetryDone, FromModel: model, ToModel: fallback})
	return text, fallback, nil
}

// attempt runs a single ATTEMPT(model) transition: stream until a
// final token, a deadline, or a client cancel.
func (s *Supervisor) attempt(ctx context.Context, model, prompt, system string, emit Emit) (string, error) {
	lm, err := s.Resolve(model)
	if err != nil {
		return "", routererr.Wrap(routererr.KindBackendError, "resolve model", err)
	}

	attemptCtx := ctx
	var cancel context.CancelFunc
	if model != s.Models.Reason {
		attemptCtx, cancel = context.WithTimeout(ctx, s.timeout())
		defer cancel()
	}

	done := make(chan struct{})
	var finalErr error
	result, err := ai.StreamText(attemptCtx, ai.StreamTextOptions{
		Model:  lm,
		Prompt: prompt,
		System: system,
		OnChunk: func(chunk provider.StreamChunk) {
			if chunk.Type == provider.ChunkTypeText && chunk.Text != "" {
				emit(Event{Type: EventToken, Text: chunk.Text})
			}
		},
		OnFinish: func(r *ai.StreamTextResult) {
			finalErr = r.Err()
			close(done)
		},
	})
	if err != nil {
		return "", routererr.Wrap(routererr.KindBackendError, "start stream", err)
	}

	select {
	case <-done:
	case <-attemptCtx.Done():
		if ctx.Err() != nil && ctx.Err() == context.Canceled {
			return "", routererr.New(routererr.KindCancelled, "client cancelled")
		}
		return "", routererr.New(routererr.KindTimeout, "attempt deadline exceeded")
	}

	if finalErr != nil {
		if routererr.MemoryPressureSentinel(finalErr.Error()) {
			return "", routererr.Wrap(routererr.KindInsufficientMemory, "backend reported memory pressure", finalErr)
		}
		return "", routererr.Wrap(routererr.KindBackendError, "stream error", finalErr)
	}
	return result.Text(), nil
}

func (s *Supervisor) timeout() time.Duration {
	if s.AttemptTimeout > 0 {
		return s.AttemptTimeout
	}
	return defaultAttemptTimeout
}

// emitPhases fires the cosmetic reasoning-phase sequence on its own
// goroutine, independent of token delivery.
func (s *Supervisor) emitPhases(ctx context.Context, v reqtypes.IntentVerdict, emit Emit) {
	for _, p := range PhaseSequence(v.Intent, v.Complexity, v.RequiresWeb) {
		select {
		case <-ctx.Done():
			return
		default:
		}
		emit(Event{Type: EventReasoningPhase, Phase: p})
		time.Sleep(150 * time.Millisecond)
	}
}

// FallbackModel deterministically picks the retry model: first from the
// model that just failed (reason and vision fall back to chat, coder to
// fast), otherwise fast for every intent. Complexity is not consulted,
// so math prompts of any complexity fall back to the fast model.
func FallbackModel(v reqtypes.IntentVerdict, current string, models route.ModelSet) string {
	switch {
	case current == models.Reason:
		return models.Chat
	case current == models.Coder:
		return models.Fast
	case current == models.Vision:
		return models.Chat
	case v.Intent == reqtypes.IntentMathReasoning:
		return models.Fast
	default:
		return models.Fast
	}
}

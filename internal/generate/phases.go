package generate

import "github.com/basupportii/ai-router/internal/reqtypes"

// Phase is one step of the cosmetic reasoning-phase sequence emitted
// alongside token streaming (spec.md §4.5).
type Phase string

const (
	PhaseUnderstanding Phase = "UNDERSTANDING"
	PhasePlanning      Phase = "PLANNING"
	PhaseResearch      Phase = "RESEARCH"
	PhaseReasoning     Phase = "REASONING"
	PhaseGenerating    Phase = "GENERATING"
)

// PhaseSequence returns the fixed phase list for an intent/complexity
// pair. Phase emission is independent of and MUST NOT block token
// delivery — callers fire these on their own goroutine.
func PhaseSequence(intent reqtypes.Intent, complexity reqtypes.ComplexityTier, requiresWeb bool) []Phase {
	if intent == reqtypes.IntentMathReasoning {
		if complexity == reqtypes.ComplexityTrivial {
			return []Phase{PhaseGenerating}
		}
		if complexity == reqtypes.ComplexityLow {
			return []Phase{PhaseReasoning, PhaseGenerating}
		}
	}
	if intent == reqtypes.IntentSimpleQA {
		return []Phase{PhaseGenerating}
	}
	seq := []Phase{PhaseUnderstanding, PhasePlanning}
	if requiresWeb {
		seq = append(seq, PhaseResearch)
	}
	seq = append(seq, PhaseReasoning, PhaseGenerating)
	return seq
}

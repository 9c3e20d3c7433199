package classify

import (
	"strings"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

var vagueFollowUpPatterns = []string{
	"what about", "and that", "what else", "more on that", "continue",
	"what's next", "go on", "keep going", "same for", "also",
}

// IsVagueFollowUp reports whether prompt is a vague continuation of
// the previous turn rather than a self-contained request — a bare
// pronoun reference or "what about X" style elaboration with no intent
// markers of its own.
func IsVagueFollowUp(prompt string) bool {
	lower := strings.ToLower(strings.TrimSpace(prompt))
	if lower == "" {
		return false
	}
	for _, p := range vagueFollowUpPatterns {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// ExpandFollowUp grounds a vague follow-up in the previous turn by
// prefixing it with the last user prompt, giving the classifier real
// shape to score against instead of scoring "what about" in isolation.
func ExpandFollowUp(prompt, previousUserPrompt string) string {
	if previousUserPrompt == "" {
		return prompt
	}
	return previousUserPrompt + " — " + prompt
}

// ClassifyTurn is the entry point httpapi/assemble call for each
// inbound message: it re-opens the previous turn when the prompt reads
// as a vague follow-up, then classifies the EXPANDED prompt rather
// than the bare fragment.
//
// The upstream source reopens the previous turn as grounded context
// but leaves open whether intent should be re-derived from the
// expansion. We re-classify on the expansion: scoring "what about
// latency?" alone starves every pattern list, while scoring it against
// "compare postgres and mysql — what about latency?" recovers the
// WORLD_KNOWLEDGE/SYSTEM_DESIGN signal the bare fragment lacks.
func ClassifyTurn(prompt string, previousUserPrompt string, ctx Context) (reqtypes.IntentVerdict, bool) {
	if !IsVagueFollowUp(prompt) {
		return Classify(prompt, ctx), false
	}
	expanded := ExpandFollowUp(prompt, previousUserPrompt)
	return Classify(expanded, ctx), true
}

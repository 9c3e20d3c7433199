package validate

import (
	"context"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// riskReviewIntents is the closed set of intents that get a single
// reviewer-model pass before the answer is finalized.
var riskReviewIntents = map[reqtypes.Intent]bool{
	reqtypes.IntentSystemDesign:   true,
	reqtypes.IntentDecisionMaking: true,
}

// ReviewFunc runs one reviewer-model pass over the draft answer,
// returning a corrected final answer.
type ReviewFunc func(ctx context.Context, prompt, draft string) (string, error)

// RiskReview runs the reviewer pass when intent warrants it.
func RiskReview(ctx context.Context, intent reqtypes.Intent, review ReviewFunc, prompt, draft string) (string, error) {
	if !riskReviewIntents[intent] || review == nil {
		return draft, nil
	}
	corrected, err := review(ctx, prompt, draft)
	if err != nil {
		return draft, err
	}
	if corrected == "" {
		return draft, nil
	}
	return corrected, nil
}

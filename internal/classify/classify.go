// Package classify implements the intent classifier: a pure, total
// scoring function over a closed catalog of intents, grounded on the
// teacher's pattern-matching style in pkg/ai (stop-condition predicates
// evaluated over accumulated state) generalized to a scored catalog.
package classify

import (
	"strings"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// Context carries the optional signals the scorer adjusts for:
// conversational continuity, an explicit user preference, and any
// intents the caller wants excluded from consideration (e.g. a
// follow-up that should never re-resolve to MEMORY).
type Context struct {
	PreviousIntent  reqtypes.Intent
	UserPreference  reqtypes.Intent
	ExcludedIntents []reqtypes.Intent
}

const (
	previousIntentBoost = 1
	userPreferenceBoost = 2
	excludedPenalty     = -5
)

// Classify scores every intent profile against prompt and ctx and
// returns the total, never-failing verdict. It never touches disk or
// the network; all backend-dependent enrichment (web requirement,
// model resolution) is purely table-driven.
func Classify(prompt string, ctx Context) reqtypes.IntentVerdict {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	hasDigit := containsDigit(normalized)
	excluded := toSet(ctx.ExcludedIntents)

	scores := make(map[reqtypes.Intent]int, len(profiles))
	for _, p := range profiles {
		score := 0
		for _, pattern := range p.Patterns {
			if strings.Contains(normalized, pattern) {
				score += 2
			}
		}
		if p.Intent == reqtypes.IntentMathReasoning && reHowMuchMany.MatchString(normalized) && hasDigit {
			score += howMuchManyBoost
		}
		if p.AdvancedCheck != nil && p.AdvancedCheck(normalized) {
			score += advancedBoost
		}
		if ctx.PreviousIntent == p.Intent {
			score += previousIntentBoost
		}
		if ctx.UserPreference == p.Intent {
			score += userPreferenceBoost
		}
		if excluded[p.Intent] {
			score += excludedPenalty
		}
		if score < 0 {
			score = 0
		}
		scores[p.Intent] = score
	}

	top, topScore, second := pickTop(scores)
	confidence := confidenceTier(topScore, second)
	complexity := scoreComplexity(prompt)
	shape := extractShape(prompt, normalized)

	winner := findProfile(top)

	return reqtypes.IntentVerdict{
		Intent:         top,
		Confidence:     confidence,
		Score:          topScore,
		RequiresWeb:    winner.RequiresWeb,
		PreferredModel: winner.PreferredModel,
		PrimaryTools:   winner.PrimaryTools,
		FlexibleTools:  winner.FlexibleTools,
		Complexity:     complexity,
		Alternatives:   alternatives(scores, top),
		Shape:          shape,
	}
}

func pickTop(scores map[reqtypes.Intent]int) (top reqtypes.Intent, topScore, second int) {
	for _, p := range profiles {
		s := scores[p.Intent]
		if s > topScore || (s == topScore && top == "") {
			second = topScore
			top = p.Intent
			topScore = s
		} else if s > second {
			second = s
		}
	}
	return top, topScore, second
}

// confidenceTier applies the fixed threshold ladder from spec.md §4.1,
// tested in strictest-first order.
func confidenceTier(top, second int) reqtypes.ConfidenceTier {
	margin := top - second
	switch {
	case top >= 5 && margin >= 3:
		return reqtypes.ConfidenceVeryHigh
	case top >= 4 && margin >= 2:
		return reqtypes.ConfidenceHigh
	case top >= 2 && second > 0 && float64(top)/float64(second) > 1.5:
		return reqtypes.ConfidenceHigh
	case top >= 2 && margin >= 1:
		return reqtypes.ConfidenceMedium
	case top >= 1:
		return reqtypes.ConfidenceMedium
	default:
		return reqtypes.ConfidenceLow
	}
}

func findProfile(intent reqtypes.Intent) profile {
	for _, p := range profiles {
		if p.Intent == intent {
			return p
		}
	}
	return profile{}
}

func alternatives(scores map[reqtypes.Intent]int, top reqtypes.Intent) []reqtypes.Alternative {
	alts := make([]reqtypes.Alternative, 0, len(scores)-1)
	for _, p := range profiles {
		if p.Intent == top {
			continue
		}
		if s := scores[p.Intent]; s > 0 {
			alts = append(alts, reqtypes.Alternative{Intent: p.Intent, Score: s})
		}
	}
	return alts
}

func toSet(intents []reqtypes.Intent) map[reqtypes.Intent]bool {
	set := make(map[reqtypes.Intent]bool, len(intents))
	for _, i := range intents {
		set[i] = true
	}
	return set
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

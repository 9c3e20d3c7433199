package classify

import (
	"strings"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

var complexityKeywords = []string{
	"architecture", "scalable", "distributed", "optimize", "algorithm",
	"trade-off", "tradeoff", "edge case", "concurrency", "recursive",
	"asymptotic", "proof", "multi-step", "end-to-end",
}

// scoreComplexity is a separate scorer from intent classification: it
// accumulates signal from prompt length, bracket nesting depth,
// boolean-operator density, fenced-code-block count, and
// complexity-keyword hits, then maps the total onto the four-tier
// ladder. Thresholds are calibrated so a short single-clause question
// lands TRIVIAL/LOW and a multi-paragraph prompt with nested brackets
// and several fences lands HIGH/VERY_HIGH.
func scoreComplexity(prompt string) reqtypes.ComplexityTier {
	score := 0

	length := len(prompt)
	switch {
	case length > 1200:
		score += 4
	case length > 600:
		score += 3
	case length > 250:
		score += 2
	case length > 80:
		score += 1
	}

	depth, maxDepth := 0, 0
	for _, r := range prompt {
		switch r {
		case '(', '[', '{':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
	}
	if maxDepth >= 4 {
		score += 3
	} else if maxDepth >= 2 {
		score += 1
	}

	lower := strings.ToLower(prompt)
	boolOps := strings.Count(lower, " and ") + strings.Count(lower, " or ") +
		strings.Count(lower, " not ") + strings.Count(lower, " && ") + strings.Count(lower, " || ")
	if boolOps >= 4 {
		score += 2
	} else if boolOps >= 1 {
		score += 1
	}

	fences := strings.Count(prompt, "```") / 2
	switch {
	case fences >= 2:
		score += 3
	case fences == 1:
		score += 1
	}

	keywordHits := 0
	for _, kw := range complexityKeywords {
		if strings.Contains(lower, kw) {
			keywordHits++
		}
	}
	if keywordHits >= 3 {
		score += 3
	} else if keywordHits >= 1 {
		score += 1
	}

	switch {
	case score >= 9:
		return reqtypes.ComplexityVeryHigh
	case score >= 6:
		return reqtypes.ComplexityHigh
	case score >= 3:
		return reqtypes.ComplexityMedium
	case score >= 1:
		return reqtypes.ComplexityLow
	default:
		return reqtypes.ComplexityTrivial
	}
}

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reNumberedOne = regexp.MustCompile(`(?m)^\s*1\.\s`)
	reNumberedTwo = regexp.MustCompile(`(?m)^\s*2\.\s`)
	reCitation    = regexp.MustCompile(`\[\d+\]`)
	reListItem    = regexp.MustCompile(`(?m)^\s*\d+\.\s`)
	reTopTen      = regexp.MustCompile(`(?i)\btop\s*10\b`)
)

// RankingVerdict is the structural check result for a ranking answer.
type RankingVerdict struct {
	Valid   bool
	Refused bool
	Answer  string
}

// ValidateRanking enforces spec.md §4.7's ranking structural contract:
// at least a "1." + "2." numbered pattern and one "[n]" citation; ≥10
// enumerated items for a literal "top 10" prompt (otherwise an honest
// "only N items" notice is prepended); a refusal if nothing grounds
// the list (no citations at all).
func ValidateRanking(prompt, answer string) RankingVerdict {
	hasNumbering := reNumberedOne.MatchString(answer) && reNumberedTwo.MatchString(answer)
	citations := reCitation.FindAllString(answer, -1)

	if len(citations) == 0 {
		return RankingVerdict{Valid: false, Refused: true, Answer: refusalText()}
	}
	if !hasNumbering {
		return RankingVerdict{Valid: false, Refused: true, Answer: refusalText()}
	}

	itemCount := len(reListItem.FindAllString(answer, -1))
	if reTopTen.MatchString(prompt) && itemCount < 10 {
		notice := fmt.Sprintf("Note: only %d items could be confidently grounded (fewer than the requested 10).\n\n", itemCount)
		return RankingVerdict{Valid: true, Answer: notice + answer}
	}
	return RankingVerdict{Valid: true, Answer: answer}
}

func refusalText() string {
	return "I don't have enough grounded sources to produce a reliable ranking for this request."
}

// IsRankingAnswer is the guard WriteCache uses to skip ranking-shaped
// answers.
func IsRankingAnswer(answer string) bool {
	return strings.Contains(answer, "[") && reNumberedOne.MatchString(answer)
}

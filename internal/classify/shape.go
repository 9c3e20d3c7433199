package classify

import (
	"strings"
	"unicode"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// extractShape derives the boolean/numeric observations spec.md §4.1
// exposes for inspection. These never feed back into scoring.
func extractShape(raw, normalized string) reqtypes.ShapeFacts {
	return reqtypes.ShapeFacts{
		HasQuestionMark: strings.Contains(raw, "?"),
		HasCode:         reCodeFence.MatchString(raw) || strings.Contains(raw, "\t"),
		HasSQL:          reSQLShape.MatchString(normalized),
		HasHTML:         reHTMLTag.MatchString(normalized),
		HasFormula:      reExcelFormula.MatchString(normalized),
		HasMath:         reArithmeticShape.MatchString(normalized),
		WordCount:       wordCount(raw),
	}
}

func wordCount(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

// Package validate implements the post-validation pass of spec.md
// §4.7: math re-verification, a code self-check, a risk-review pass,
// ranking structural checks, and the cache-write policy they gate.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/basupportii/ai-router/internal/solve"
)

// mathTolerance is the divergence threshold that triggers an answer
// replacement.
const mathTolerance = 1e-6

var reArithFragment = regexp.MustCompile(`[0-9][0-9.\s()+\-*/xX×÷]*[0-9)]`)
var reLastNumber = regexp.MustCompile(`-?[0-9]+(?:\.[0-9]+)?`)

// VerifyMath extracts the last arithmetic expression in prompt,
// evaluates it in-process with internal/solve's shunting-yard
// evaluator (the same engine the fast path uses), and
// compares it to the last number appearing in the generated answer.
// If they differ by more than mathTolerance, it returns a replacement
// answer built from the sandbox value.
func VerifyMath(prompt, answer string) (replacement string, replaced bool) {
	expr := lastArithmeticExpr(prompt)
	if expr == "" {
		return "", false
	}
	want, ok := solve.EvalArithmetic(expr)
	if !ok || math.IsNaN(want) {
		return "", false
	}

	got, ok := lastNumber(answer)
	if !ok {
		return buildMathAnswer(want), true
	}
	if math.Abs(got-want) <= mathTolerance {
		return "", false
	}
	return buildMathAnswer(want), true
}

func lastArithmeticExpr(prompt string) string {
	matches := reArithFragment.FindAllString(prompt, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		candidate := strings.TrimSpace(matches[i])
		if _, ok := solve.EvalArithmetic(candidate); ok {
			return candidate
		}
	}
	return ""
}

func lastNumber(text string) (float64, bool) {
	matches := reLastNumber.FindAllString(text, -1)
	if len(matches) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(matches[len(matches)-1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func buildMathAnswer(value float64) string {
	ans := solve.Answer{Result: formatFloat(value)}
	return ans.Envelope()
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

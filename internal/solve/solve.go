// Package solve implements the local fast-path solvers: small, total,
// side-effect-free functions that answer a prompt without ever calling
// a backend model. Grounded on the teacher's StopCondition shape
// (pkg/ai/stop_condition.go): each solver is a pure predicate+producer
// pair, evaluated in a fixed order, first hit wins.
package solve

import "strings"

// Answer is the canonical envelope spec.md §4.2 requires every solver
// to wrap its result in.
type Answer struct {
	Result string

	// Kind tags which solver produced Result, for callers that need to
	// distinguish "greeting" from the generic local-math/-utility
	// solvers (e.g. to set the route/model label on the response).
	// Empty for every solver except the conversational reply table.
	Kind string
}

// KindGreeting is Answer.Kind's value for a conversational reply table
// hit (spec.md §4.2's greeting/small-talk fast path).
const KindGreeting = "greeting"

// Envelope renders the canonical "Thinking / Result" text block.
func (a Answer) Envelope() string {
	var b strings.Builder
	b.WriteString("Thinking\n- (omitted by request)\n\nResult\n- ")
	b.WriteString(a.Result)
	return b.String()
}

// solver is one entry in the fixed evaluation order.
type solver func(normalized string) (Answer, bool)

// order is fixed per spec.md §4.2 and MUST NOT be reordered: each
// solver assumes prior solvers already rejected the prompt.
var order = []solver{
	solveArithmetic,
	solvePercent,
	solveUnitConversion,
	solveDateMath,
	solveLinearEquation,
	solveStats,
	solveSetOps,
	solveSortFilter,
	solveStringUtil,
	solveValidity,
	solveRegexLiteral,
	solveGeometry,
	solveFormula,
	solveRiddle,
	solveConversational,
}

// TrySolve runs the fixed solver chain against prompt and returns the
// first non-nil answer, or nil if no solver recognized the shape. It
// never panics and never performs I/O.
func TrySolve(prompt string) *Answer {
	normalized := strings.TrimSpace(prompt)
	for _, s := range order {
		if answer, ok := s(normalized); ok {
			return &answer
		}
	}
	return nil
}

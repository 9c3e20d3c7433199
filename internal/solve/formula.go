package solve

import (
	"regexp"
	"strings"
)

var (
	reFormulaTrim       = regexp.MustCompile(`(?i)^\s*=\s*TRIM\(\s*"([^"]*)"\s*\)\s*$`)
	reFormulaUpper      = regexp.MustCompile(`(?i)^\s*=\s*UPPER\(\s*"([^"]*)"\s*\)\s*$`)
	reFormulaLower      = regexp.MustCompile(`(?i)^\s*=\s*LOWER\(\s*"([^"]*)"\s*\)\s*$`)
	reFormulaSubstitute = regexp.MustCompile(`(?i)^\s*=\s*SUBSTITUTE\(\s*"([^"]*)"\s*,\s*"([^"]*)"\s*,\s*"([^"]*)"\s*\)\s*$`)
)

// solveFormula evaluates the small set of Excel-style formula
// shortcuts named in spec.md §4.2 directly, without a spreadsheet
// engine.
func solveFormula(prompt string) (Answer, bool) {
	if m := reFormulaTrim.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strings.TrimSpace(m[1])}, true
	}
	if m := reFormulaUpper.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strings.ToUpper(m[1])}, true
	}
	if m := reFormulaLower.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strings.ToLower(m[1])}, true
	}
	if m := reFormulaSubstitute.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strings.ReplaceAll(m[1], m[2], m[3])}, true
	}
	return Answer{}, false
}

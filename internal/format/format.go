// Package format implements the response formatter of spec.md §4.9: a
// pure function mapping raw answer text to a display shape, plus the
// HTML and PDF renderers report export builds on.
package format

import (
	"regexp"
	"strings"
)

// Shape is the closed set of display shapes the formatter detects.
type Shape string

const (
	ShapeChart   Shape = "chart"
	ShapeTable   Shape = "table"
	ShapeRanking Shape = "ranking"
	ShapeList    Shape = "list"
	ShapeText    Shape = "text"
)

var (
	rePipeRow     = regexp.MustCompile(`(?m)^\s*\|.+\|\s*$`)
	reNumberedLine = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+\S`)
	reBulletLine  = regexp.MustCompile(`(?m)^\s*[-*•]\s+\S`)
	reCitation    = regexp.MustCompile(`\[\d+\]`)
	reRankValue   = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(points?|votes?|%|stars?)`)
)

// Detect classifies raw answer text into one Shape, in the fixed
// priority order spec.md §4.9 specifies.
func Detect(text string) Shape {
	if strings.Contains(text, "CHART_JSON:") {
		return ShapeChart
	}
	if rePipeRow.MatchString(text) {
		return ShapeTable
	}
	if isRankingShape(text) {
		return ShapeRanking
	}
	if reNumberedLine.MatchString(text) || reBulletLine.MatchString(text) {
		return ShapeList
	}
	return ShapeText
}

// isRankingShape matches numbered lines that carry a citation or a
// scored value — the signal that distinguishes a ranking from a plain
// numbered list.
func isRankingShape(text string) bool {
	if !reNumberedLine.MatchString(text) {
		return false
	}
	return reCitation.MatchString(text) || reRankValue.MatchString(text)
}

// Rendered is the formatter's output: the original text, its detected
// shape, and an HTML rendering of that shape.
type Rendered struct {
	Shape Shape
	Text  string
	HTML  string
}

// Format detects the shape and renders both text and HTML views.
func Format(text string) Rendered {
	shape := Detect(text)
	return Rendered{Shape: shape, Text: text, HTML: RenderHTML(shape, text)}
}

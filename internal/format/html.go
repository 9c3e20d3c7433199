package format

import (
	"html"
	"strings"
)

// RenderHTML renders text into an HTML fragment appropriate for shape.
// Escaping is mandatory and unconditional — every code path routes
// through html.EscapeString before any markup is added.
func RenderHTML(shape Shape, text string) string {
	switch shape {
	case ShapeTable:
		return renderTableHTML(text)
	case ShapeList, ShapeRanking:
		return renderListHTML(text)
	case ShapeChart:
		return "<pre>" + html.EscapeString(text) + "</pre>"
	default:
		return "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
	}
}

func renderTableHTML(text string) string {
	var b strings.Builder
	b.WriteString("<table>\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		b.WriteString("<tr>")
		for _, c := range cells {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(strings.TrimSpace(c)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>")
	return b.String()
}

func renderListHTML(text string) string {
	var b strings.Builder
	b.WriteString("<ol>\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(stripListMarker(line)))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>")
	return b.String()
}

func stripListMarker(line string) string {
	line = strings.TrimLeft(line, "0123456789.)-*• \t")
	return line
}

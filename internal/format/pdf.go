package format

import (
	"bytes"
	"fmt"
	"strings"
)

// pageWidth/pageHeight are US-Letter points; lineHeight is a 12pt font
// with comfortable leading.
const (
	pageWidth   = 612
	pageHeight  = 792
	marginX     = 56
	marginY     = 56
	lineHeight  = 16
	maxLineRune = 92
)

// RenderPDF writes a minimal single-font PDF document for title/body,
// wrapping body at a fixed column width and paginating when the body
// overflows one page. No third-party PDF library exists anywhere in
// the example pack (see DESIGN.md), so this builds the object graph —
// catalog, pages, one Helvetica font, a content stream per page — by
// hand, in the PDF 1.4 object/xref format.
func RenderPDF(title, body string) []byte {
	lines := wrapLines(title, body)
	pages := paginate(lines)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	nextObj := 1

	// Object 1: catalog, object 2: pages root, allocated after we know page count.
	catalogObj := nextObj
	nextObj++
	pagesObj := nextObj
	nextObj++
	fontObj := nextObj
	nextObj++

	pageObjs := make([]int, len(pages))
	contentObjs := make([]int, len(pages))
	for i := range pages {
		pageObjs[i] = nextObj
		nextObj++
		contentObjs[i] = nextObj
		nextObj++
	}

	recordOffset := func(objNum int) {
		for len(offsets) < objNum {
			offsets = append(offsets, 0)
		}
		offsets[objNum-1] = buf.Len()
	}

	recordOffset(catalogObj)
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Catalog /Pages %d 0 R >>\nendobj\n", catalogObj, pagesObj)

	recordOffset(pagesObj)
	kids := make([]string, len(pageObjs))
	for i, p := range pageObjs {
		kids[i] = fmt.Sprintf("%d 0 R", p)
	}
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		pagesObj, strings.Join(kids, " "), len(pageObjs))

	recordOffset(fontObj)
	fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n", fontObj)

	for i, pageLines := range pages {
		recordOffset(pageObjs[i])
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %d %d] "+
			"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			pageObjs[i], pagesObj, pageWidth, pageHeight, fontObj, contentObjs[i])

		stream := buildContentStream(pageLines)
		recordOffset(contentObjs[i])
		fmt.Fprintf(&buf, "%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contentObjs[i], len(stream), stream)
	}

	xrefStart := buf.Len()
	totalObjs := nextObj - 1
	fmt.Fprintf(&buf, "xref\n0 %d\n", totalObjs+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF",
		totalObjs+1, catalogObj, xrefStart)

	return buf.Bytes()
}

func buildContentStream(lines []string) string {
	var b strings.Builder
	b.WriteString("BT\n/F1 12 Tf\n")
	y := pageHeight - marginY
	for _, line := range lines {
		fmt.Fprintf(&b, "1 0 0 1 %d %d Tm (%s) Tj\n", marginX, y, escapePDFText(line))
		y -= lineHeight
	}
	b.WriteString("ET")
	return b.String()
}

func escapePDFText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}

func wrapLines(title, body string) []string {
	var out []string
	if title != "" {
		out = append(out, title, "")
	}
	for _, paragraph := range strings.Split(body, "\n") {
		out = append(out, wrapParagraph(paragraph)...)
	}
	return out
}

func wrapParagraph(p string) []string {
	if p == "" {
		return []string{""}
	}
	var lines []string
	words := strings.Fields(p)
	var cur strings.Builder
	for _, w := range words {
		if cur.Len()+len(w)+1 > maxLineRune {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func paginate(lines []string) [][]string {
	perPage := (pageHeight - 2*marginY) / lineHeight
	if perPage < 1 {
		perPage = 1
	}
	var pages [][]string
	for i := 0; i < len(lines); i += perPage {
		end := i + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[i:end])
	}
	if len(pages) == 0 {
		pages = [][]string{{}}
	}
	return pages
}

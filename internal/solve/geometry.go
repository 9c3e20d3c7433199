package solve

import (
	"math"
	"regexp"
	"strconv"
)

var (
	reRectArea     = regexp.MustCompile(`(?i)area\s+of\s+a?\s*rectangle\s+(?:with\s+)?(?:sides?\s+)?([\d.]+)\s*(?:x|by|,)\s*([\d.]+)`)
	reTriangleArea = regexp.MustCompile(`(?i)area\s+of\s+a?\s*triangle\s+(?:with\s+)?base\s+([\d.]+)\s+(?:and\s+)?height\s+([\d.]+)`)
	reCircleArea   = regexp.MustCompile(`(?i)area\s+of\s+a?\s*circle\s+(?:with\s+)?radius\s+([\d.]+)`)
	reCircleCirc   = regexp.MustCompile(`(?i)circumference\s+of\s+a?\s*circle\s+(?:with\s+)?radius\s+([\d.]+)`)
)

func solveGeometry(prompt string) (Answer, bool) {
	if m := reRectArea.FindStringSubmatch(prompt); m != nil {
		w, err1 := strconv.ParseFloat(m[1], 64)
		h, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return Answer{}, false
		}
		return Answer{Result: formatNumber(w * h)}, true
	}
	if m := reTriangleArea.FindStringSubmatch(prompt); m != nil {
		base, err1 := strconv.ParseFloat(m[1], 64)
		height, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return Answer{}, false
		}
		return Answer{Result: formatNumber(0.5 * base * height)}, true
	}
	if m := reCircleArea.FindStringSubmatch(prompt); m != nil {
		r, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Answer{}, false
		}
		return Answer{Result: formatNumber(math.Pi * r * r)}, true
	}
	if m := reCircleCirc.FindStringSubmatch(prompt); m != nil {
		r, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Answer{}, false
		}
		return Answer{Result: formatNumber(2 * math.Pi * r)}, true
	}
	return Answer{}, false
}

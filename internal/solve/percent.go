package solve

import (
	"regexp"
	"strconv"
)

var (
	reWhatPercentOf = regexp.MustCompile(`(?i)what\s+is\s+([\d.]+)\s*%\s+of\s+([\d.]+)`)
	reXIsWhatPctOfY = regexp.MustCompile(`(?i)([\d.]+)\s+is\s+what\s+percent(?:age)?\s+of\s+([\d.]+)`)
	rePercentChange = regexp.MustCompile(`(?i)percent(?:age)?\s+change\s+from\s+([\d.]+)\s+to\s+([\d.]+)`)
)

func solvePercent(prompt string) (Answer, bool) {
	if m := reWhatPercentOf.FindStringSubmatch(prompt); m != nil {
		pct, err1 := strconv.ParseFloat(m[1], 64)
		base, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return Answer{}, false
		}
		return Answer{Result: formatNumber(pct / 100 * base)}, true
	}
	if m := reXIsWhatPctOfY.FindStringSubmatch(prompt); m != nil {
		x, err1 := strconv.ParseFloat(m[1], 64)
		y, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || y == 0 {
			return Answer{}, false
		}
		return Answer{Result: formatNumber(x/y*100) + "%"}, true
	}
	if m := rePercentChange.FindStringSubmatch(prompt); m != nil {
		from, err1 := strconv.ParseFloat(m[1], 64)
		to, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil || from == 0 {
			return Answer{}, false
		}
		return Answer{Result: formatNumber((to-from)/from*100) + "%"}, true
	}
	return Answer{}, false
}

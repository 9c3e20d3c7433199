package solve

import (
	"regexp"
	"strconv"
	"time"
)

var (
	reDaysBetween = regexp.MustCompile(`(?i)days?\s+between\s+(\d{4}-\d{2}-\d{2})\s+and\s+(\d{4}-\d{2}-\d{2})`)
	reAgeFromYear = regexp.MustCompile(`(?i)(?:age|how old).*\bborn\s+in\s+(\d{4})`)
)

// nowFunc is swappable in tests; production always uses time.Now.
var nowFunc = time.Now

func solveDateMath(prompt string) (Answer, bool) {
	if m := reDaysBetween.FindStringSubmatch(prompt); m != nil {
		a, err1 := time.Parse("2006-01-02", m[1])
		b, err2 := time.Parse("2006-01-02", m[2])
		if err1 != nil || err2 != nil {
			return Answer{}, false
		}
		diff := b.Sub(a).Hours() / 24
		if diff < 0 {
			diff = -diff
		}
		return Answer{Result: strconv.Itoa(int(diff)) + " days"}, true
	}
	if m := reAgeFromYear.FindStringSubmatch(prompt); m != nil {
		birthYear, err := strconv.Atoi(m[1])
		if err != nil {
			return Answer{}, false
		}
		age := nowFunc().Year() - birthYear
		if age < 0 {
			return Answer{}, false
		}
		return Answer{Result: strconv.Itoa(age) + " years"}, true
	}
	return Answer{}, false
}

package solve

import (
	"regexp"
	"strconv"
)

// reRegexLiteral matches prompts like: does /^\d+$/ match "12345"
var reRegexLiteral = regexp.MustCompile(`(?i)does\s+/(.+)/\s+match\s+"([^"]*)"`)

func solveRegexLiteral(prompt string) (Answer, bool) {
	m := reRegexLiteral.FindStringSubmatch(prompt)
	if m == nil {
		return Answer{}, false
	}
	pattern, err := regexp.Compile(m[1])
	if err != nil {
		return Answer{}, false
	}
	return Answer{Result: strconv.FormatBool(pattern.MatchString(m[2]))}, true
}

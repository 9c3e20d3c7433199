package solve

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reReverseString = regexp.MustCompile(`(?i)reverse\s+(?:the\s+string\s+)?"([^"]*)"`)
	reUppercase     = regexp.MustCompile(`(?i)uppercase\s+"([^"]*)"`)
	reLowercase     = regexp.MustCompile(`(?i)lowercase\s+"([^"]*)"`)
	reCountChars    = regexp.MustCompile(`(?i)(?:count|length of)\s+"([^"]*)"`)
	reIsPalindrome  = regexp.MustCompile(`(?i)is\s+"([^"]*)"\s+a\s+palindrome`)
)

func solveStringUtil(prompt string) (Answer, bool) {
	if m := reReverseString.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: reverseRunes(m[1])}, true
	}
	if m := reUppercase.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strings.ToUpper(m[1])}, true
	}
	if m := reLowercase.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strings.ToLower(m[1])}, true
	}
	if m := reIsPalindrome.FindStringSubmatch(prompt); m != nil {
		s := strings.ToLower(strings.ReplaceAll(m[1], " ", ""))
		return Answer{Result: strconv.FormatBool(s == reverseRunes(s))}, true
	}
	if m := reCountChars.FindStringSubmatch(prompt); m != nil {
		return Answer{Result: strconv.Itoa(len([]rune(m[1])))}, true
	}
	return Answer{}, false
}

func reverseRunes(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

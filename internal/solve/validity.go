package solve

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
)

var (
	reIsValidEmail = regexp.MustCompile(`(?i)is\s+"([^"]*)"\s+a\s+valid\s+email`)
	reIsValidURL   = regexp.MustCompile(`(?i)is\s+"([^"]*)"\s+a\s+valid\s+url`)
)

func solveValidity(prompt string) (Answer, bool) {
	if m := reIsValidEmail.FindStringSubmatch(prompt); m != nil {
		_, err := mail.ParseAddress(m[1])
		return Answer{Result: strconv.FormatBool(err == nil)}, true
	}
	if m := reIsValidURL.FindStringSubmatch(prompt); m != nil {
		u, err := url.ParseRequestURI(m[1])
		valid := err == nil && u.Scheme != "" && u.Host != ""
		return Answer{Result: strconv.FormatBool(valid)}, true
	}
	return Answer{}, false
}

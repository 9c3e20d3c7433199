package solve

import (
	"regexp"
	"sort"
	"strings"
)

var reSetOp = regexp.MustCompile(`(?i)(union|intersection|difference)\s+of\s+\[([^\]]*)\]\s+and\s+\[([^\]]*)\]`)

func solveSetOps(prompt string) (Answer, bool) {
	m := reSetOp.FindStringSubmatch(prompt)
	if m == nil {
		return Answer{}, false
	}
	op := strings.ToLower(m[1])
	a := splitSetItems(m[2])
	b := splitSetItems(m[3])

	var result []string
	switch op {
	case "union":
		result = setUnion(a, b)
	case "intersection":
		result = setIntersection(a, b)
	case "difference":
		result = setDifference(a, b)
	default:
		return Answer{}, false
	}
	sort.Strings(result)
	return Answer{Result: "{" + strings.Join(result, ", ") + "}"}, true
}

func splitSetItems(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			items = append(items, p)
		}
	}
	return items
}

func setUnion(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func setIntersection(a, b []string) []string {
	inB := toStringSet(b)
	var out []string
	seen := map[string]bool{}
	for _, s := range a {
		if inB[s] && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func setDifference(a, b []string) []string {
	inB := toStringSet(b)
	var out []string
	for _, s := range a {
		if !inB[s] {
			out = append(out, s)
		}
	}
	return out
}

func toStringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}

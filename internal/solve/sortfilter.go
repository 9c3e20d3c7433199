package solve

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	reSort   = regexp.MustCompile(`(?i)sort\s+\[([^\]]*)\]\s*(ascending|descending|asc|desc)?`)
	reFilter = regexp.MustCompile(`(?i)filter\s+\[([^\]]*)\]\s*(>=|<=|>|<|==)\s*([\d.-]+)`)
)

func solveSortFilter(prompt string) (Answer, bool) {
	if m := reSort.FindStringSubmatch(prompt); m != nil {
		nums, ok := parseNumberList(m[1])
		if !ok || len(nums) == 0 {
			return Answer{}, false
		}
		sorted := append([]float64(nil), nums...)
		sort.Float64s(sorted)
		if strings.HasPrefix(strings.ToLower(m[2]), "desc") {
			for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
		return Answer{Result: formatNumberList(sorted)}, true
	}
	if m := reFilter.FindStringSubmatch(prompt); m != nil {
		nums, ok := parseNumberList(m[1])
		if !ok {
			return Answer{}, false
		}
		threshold, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return Answer{}, false
		}
		op := m[2]
		var out []float64
		for _, n := range nums {
			if compareWithOp(n, op, threshold) {
				out = append(out, n)
			}
		}
		return Answer{Result: formatNumberList(out)}, true
	}
	return Answer{}, false
}

func compareWithOp(n float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return n > threshold
	case "<":
		return n < threshold
	case ">=":
		return n >= threshold
	case "<=":
		return n <= threshold
	case "==":
		return n == threshold
	default:
		return false
	}
}

func formatNumberList(nums []float64) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = formatNumber(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

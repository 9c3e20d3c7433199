package solve

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	reBracketedNumbers = regexp.MustCompile(`\[([^\]]*\d[^\]]*)\]`)
	reStatsVerb        = regexp.MustCompile(`(?i)\b(mean|average|median|mode|stdev|standard deviation|variance|sum|min|max)\b`)
)

// solveStats answers a basic descriptive-statistics question over a
// bracketed number list, e.g. "mean of [1, 2, 3, 4]".
func solveStats(prompt string) (Answer, bool) {
	if !reStatsVerb.MatchString(prompt) {
		return Answer{}, false
	}
	m := reBracketedNumbers.FindStringSubmatch(prompt)
	if m == nil {
		return Answer{}, false
	}
	nums, ok := parseNumberList(m[1])
	if !ok || len(nums) == 0 {
		return Answer{}, false
	}

	verb := strings.ToLower(reStatsVerb.FindString(prompt))
	var result float64
	switch {
	case strings.Contains(verb, "mean") || strings.Contains(verb, "average"):
		result = mean(nums)
	case strings.Contains(verb, "median"):
		result = median(nums)
	case strings.Contains(verb, "mode"):
		return Answer{Result: formatNumber(mode(nums))}, true
	case strings.Contains(verb, "stdev") || strings.Contains(verb, "standard deviation"):
		result = math.Sqrt(variance(nums))
	case strings.Contains(verb, "variance"):
		result = variance(nums)
	case strings.Contains(verb, "sum"):
		result = sum(nums)
	case strings.Contains(verb, "min"):
		result = nums[0]
		for _, n := range nums {
			if n < result {
				result = n
			}
		}
	case strings.Contains(verb, "max"):
		result = nums[0]
		for _, n := range nums {
			if n > result {
				result = n
			}
		}
	default:
		return Answer{}, false
	}
	return Answer{Result: formatNumber(result)}, true
}

func parseNumberList(raw string) ([]float64, bool) {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' })
	nums := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

func sum(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}

func mean(nums []float64) float64 { return sum(nums) / float64(len(nums)) }

func median(nums []float64) float64 {
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mode(nums []float64) float64 {
	counts := make(map[float64]int)
	for _, n := range nums {
		counts[n]++
	}
	best, bestCount := nums[0], 0
	for _, n := range nums {
		if counts[n] > bestCount {
			best, bestCount = n, counts[n]
		}
	}
	return best
}

func variance(nums []float64) float64 {
	m := mean(nums)
	total := 0.0
	for _, n := range nums {
		d := n - m
		total += d * d
	}
	return total / float64(len(nums))
}

package solve

import "strings"

// riddleTable is a small canonical set of common-sense riddles with
// one-line answers, per spec.md §4.2. Matching is a normalized
// substring containment check against the riddle's key phrase, not an
// exact-string match, so minor wording variation still resolves.
var riddleTable = []struct {
	key    string
	answer string
}{
	{"what has keys but no locks", "a piano"},
	{"what has a face and two hands but no arms or legs", "a clock"},
	{"what gets wetter the more it dries", "a towel"},
	{"what has a neck but no head", "a bottle"},
	{"what comes down but never goes up", "rain"},
	{"the more you take the more you leave behind", "footsteps"},
	{"what can travel around the world while staying in a corner", "a stamp"},
	{"what has many teeth but cannot bite", "a comb"},
	{"what month of the year has 28 days", "all of them"},
	{"what is full of holes but still holds water", "a sponge"},
}

func solveRiddle(prompt string) (Answer, bool) {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	for _, entry := range riddleTable {
		if strings.Contains(normalized, entry.key) {
			return Answer{Result: entry.answer}, true
		}
	}
	return Answer{}, false
}

package memory

import (
	"strings"
	"sync"

	"github.com/basupportii/ai-router/internal/reqtypes"
)

// ringSize bounds each user's in-process conversation window; once it
// is full, each new turn drops the oldest one from the front.
const ringSize = 50

// Tracker is the ConversationMemory Design Notes §9 singles out as one
// of the three collaborators needing an owning type (alongside
// InstantResponseEngine and ReportGenerator's in-flight table): an
// in-process, per-user ring buffer of conversation turns, distinct
// from the durable file-backed Store. It never touches disk, and
// nothing folds its turns into a Store entry: callers only get the
// running count, which ShouldSummarize checks against the N=8 cadence.
type Tracker struct {
	mu       sync.Mutex
	messages map[string][]reqtypes.ConversationMessage
}

// NewTracker constructs an empty, process-local Tracker.
func NewTracker() *Tracker {
	return &Tracker{messages: make(map[string][]reqtypes.ConversationMessage)}
}

// Append records one turn for userID and returns the user's running
// message count.
func (t *Tracker) Append(userID string, msg reqtypes.ConversationMessage) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	turns := append(t.messages[userID], msg)
	if len(turns) > ringSize {
		turns = turns[len(turns)-ringSize:]
	}
	t.messages[userID] = turns
	return len(turns)
}

// Context returns a snapshot of userID's tracked turns, oldest first.
func (t *Tracker) Context(userID string) []reqtypes.ConversationMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	turns := t.messages[userID]
	out := make([]reqtypes.ConversationMessage, len(turns))
	copy(out, turns)
	return out
}

// IsFollowUp reports whether prompt reads as a continuation of
// userID's most recent turn: at most 60 characters, and either
// starting with a pronoun/continuation cue or at most six words long.
// It only detects the follow-up; re-classifying intent on the expanded
// prompt is done by internal/classify.ClassifyTurn.
func (t *Tracker) IsFollowUp(userID, prompt string) bool {
	t.mu.Lock()
	turns := t.messages[userID]
	t.mu.Unlock()
	if len(turns) == 0 {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	if len(normalized) > 60 {
		return false
	}
	for _, cue := range followUpCues {
		if strings.HasPrefix(normalized, cue) {
			return true
		}
	}
	return len(strings.Fields(normalized)) <= 6
}

var followUpCues = []string{
	"what about", "and what", "why", "how about", "can you explain",
	"what does that mean", "more detail", "go on", "continue", "it ", "that ",
}

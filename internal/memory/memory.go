// Package memory implements the file-backed memory store of spec.md
// §4.8: durable user<->assistant pairs, recalled by keyword and
// embedding score, TTL-pruned, summarized every N messages.
package memory

import (
	"math"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/internal/store"
)

// maxEntries is the tail-trim bound on save, per spec.md §4.8.
const maxEntries = 500

// summarizeEvery is the conversation-tracker cadence for summary
// entries.
const summarizeEvery = 8

// MinRecallScore gates which recalled entries are considered relevant
// enough to surface in context assembly.
const MinRecallScore = 0.15

// Store is the single-writer, mutex-guarded memory file.
type Store struct {
	mu      sync.Mutex
	path    string
	entries []reqtypes.MemoryEntry
}

func NewStore(dataDir string) (*Store, error) {
	s := &Store{path: filepath.Join(dataDir, "memory.json")}
	if err := store.LoadJSON(s.path, &s.entries); err != nil {
		return nil, err
	}
	s.pruneExpiredLocked()
	return s, nil
}

// Save appends entry, tail-trims to maxEntries, and persists.
func (s *Store) Save(entry reqtypes.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) > maxEntries {
		s.entries = s.entries[len(s.entries)-maxEntries:]
	}
	return store.SaveJSON(s.path, s.entries)
}

// Entries returns a scoped, filtered copy — never the live slice.
func (s *Store) Entries(userID, teamID string, teamMode bool) []reqtypes.MemoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []reqtypes.MemoryEntry
	for _, e := range s.entries {
		if matchesScope(e, userID, teamID, teamMode) {
			out = append(out, e)
		}
	}
	return out
}

func matchesScope(e reqtypes.MemoryEntry, userID, teamID string, teamMode bool) bool {
	if teamMode && teamID != "" {
		return e.TeamID == teamID
	}
	return e.UserID == userID
}

// Delete removes the entry with the given id, returning whether it
// was found.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, store.SaveJSON(s.path, s.entries)
		}
	}
	return false, nil
}

// Purge removes every expired entry and persists the result.
func (s *Store) Purge() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.entries)
	s.pruneExpiredLocked()
	removed := before - len(s.entries)
	if removed > 0 {
		return removed, store.SaveJSON(s.path, s.entries)
	}
	return 0, nil
}

func (s *Store) pruneExpiredLocked() {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !IsExpired(e) {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// IsExpired reports whether e's TTL has elapsed. An entry with no
// ExpiresAt never expires. Per the recorded Open Question decision, an
// unparsable/zero-but-malformed ExpiresAt is treated as NOT expired —
// preserving the upstream source's behavior rather than discarding
// ambiguous entries.
func IsExpired(e reqtypes.MemoryEntry) bool {
	if e.ExpiresAt == nil {
		return false
	}
	if e.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(*e.ExpiresAt)
}

// SetTTLBulk updates ExpiresAt for every entry scoped to userID/teamID.
func (s *Store) SetTTLBulk(userID, teamID string, teamMode bool, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expires := time.Now().Add(ttl)
	count := 0
	for i := range s.entries {
		if matchesScope(s.entries[i], userID, teamID, teamMode) {
			s.entries[i].ExpiresAt = &expires
			count++
		}
	}
	if count > 0 {
		return count, store.SaveJSON(s.path, s.entries)
	}
	return 0, nil
}

// Recalled is one scored recall hit.
type Recalled struct {
	Entry reqtypes.MemoryEntry
	Score float64
}

// Recall scores every scoped entry as (keyword match count) +
// (embedding-weighted cosine similarity when both sides have vectors)
// and returns the top 4 above MinRecallScore, per spec.md §4.3/§4.8.
func Recall(entries []reqtypes.MemoryEntry, queryKeywords []string, queryEmbedding []float64) []Recalled {
	var scored []Recalled
	for _, e := range entries {
		score := keywordOverlap(e.Keywords, queryKeywords)
		if len(queryEmbedding) > 0 && len(e.Embedding) > 0 {
			score += cosineSimilarity(e.Embedding, queryEmbedding)
		}
		if score >= MinRecallScore {
			scored = append(scored, Recalled{Entry: e, Score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > 4 {
		scored = scored[:4]
	}
	return scored
}

func keywordOverlap(stored, query []string) float64 {
	set := make(map[string]bool, len(stored))
	for _, k := range stored {
		set[strings.ToLower(k)] = true
	}
	matches := 0
	for _, k := range query {
		if set[strings.ToLower(k)] {
			matches++
		}
	}
	return float64(matches)
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ShouldSummarize reports whether messageCount has just crossed a
// summarize-every-N boundary.
func ShouldSummarize(messageCount int) bool {
	return messageCount > 0 && messageCount%summarizeEvery == 0
}

// saveTriggerPhrases is the "memory-save trigger" normalization step
// of spec.md §3/§4.8's MemoryEntry lifecycle: a durable entry is only
// written when the user's prompt contains one of these phrases, or the
// caller passes force:true. Ordinary chat turns are never persisted.
var saveTriggerPhrases = []string{
	"save this to memory", "save that to memory", "save to memory",
	"remember this for later", "remember this for me",
}

// TriggersSave reports whether normalized (already lower-cased/
// trimmed) contains one of the explicit save-to-memory phrases.
func TriggersSave(normalized string) bool {
	for _, phrase := range saveTriggerPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

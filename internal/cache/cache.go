// Package cache implements the exact and semantic response caches of
// spec.md §4.7: a bounded, FIFO-evicted exact-key store plus an
// optional cosine-similarity lookup over the same entries.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/internal/store"
)

// maxEntries bounds the cache to a FIFO-evicted 500 entries.
const maxEntries = 500

// defaultTTL is the standard entry lifetime; fastQueryTTL applies to
// entries written for intents solved on the fast path.
const (
	defaultTTL   = 12 * time.Hour
	fastQueryTTL = 7 * 24 * time.Hour
)

// semanticThreshold is the minimum cosine similarity for a semantic
// cache hit.
const semanticThreshold = 0.92

// Cache is the single-writer, mutex-guarded response cache.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries []reqtypes.CacheEntry
	order   []string // insertion order of keys, for FIFO eviction
	ttl     map[string]time.Time
}

func NewCache(dataDir string) (*Cache, error) {
	c := &Cache{path: filepath.Join(dataDir, "response_cache.json"), ttl: make(map[string]time.Time)}
	if err := store.LoadJSON(c.path, &c.entries); err != nil {
		return nil, err
	}
	for _, e := range c.entries {
		c.order = append(c.order, e.Key)
		c.ttl[e.Key] = e.Timestamp.Add(defaultTTL)
	}
	return c, nil
}

// Key derives the exact-cache key from intent and the normalized
// prompt, per spec.md §4.7.
func Key(intent reqtypes.Intent, normalizedPrompt string) string {
	sum := sha256.Sum256([]byte(string(intent) + "\x00" + normalizedPrompt))
	return hex.EncodeToString(sum[:])
}

// Get returns the entry for key if present and unexpired.
func (c *Cache) Get(key string) (reqtypes.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.Key == key {
			if exp, ok := c.ttl[key]; ok && time.Now().After(exp) {
				return reqtypes.CacheEntry{}, false
			}
			return e, true
		}
	}
	return reqtypes.CacheEntry{}, false
}

// Put writes or overwrites entry, evicting the oldest entry past
// maxEntries. Concurrent writers for the same key race benignly —
// last writer wins, matching spec.md §5's idempotent-write guarantee.
func (c *Cache) Put(entry reqtypes.CacheEntry, fastQuery bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := defaultTTL
	if fastQuery {
		ttl = fastQueryTTL
	}
	c.ttl[entry.Key] = entry.Timestamp.Add(ttl)

	replaced := false
	for i, e := range c.entries {
		if e.Key == entry.Key {
			c.entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		c.entries = append(c.entries, entry)
		c.order = append(c.order, entry.Key)
		if len(c.entries) > maxEntries {
			oldestKey := c.order[0]
			c.order = c.order[1:]
			c.entries = removeByKey(c.entries, oldestKey)
			delete(c.ttl, oldestKey)
		}
	}
	return store.SaveJSON(c.path, c.entries)
}

func removeByKey(entries []reqtypes.CacheEntry, key string) []reqtypes.CacheEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.Key != key {
			out = append(out, e)
		}
	}
	return out
}

// SemanticLookup returns the highest-similarity entry whose embedding
// similarity to queryEmbedding meets semanticThreshold, distinct from
// the exact-key cache.
func (c *Cache) SemanticLookup(queryEmbedding []float64) (reqtypes.CacheEntry, bool) {
	if len(queryEmbedding) == 0 {
		return reqtypes.CacheEntry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var best reqtypes.CacheEntry
	bestScore := 0.0
	found := false
	for _, e := range c.entries {
		if len(e.Embedding) == 0 {
			continue
		}
		if exp, ok := c.ttl[e.Key]; ok && time.Now().After(exp) {
			continue
		}
		score := cosine(e.Embedding, queryEmbedding)
		if score >= semanticThreshold && score > bestScore {
			best, bestScore, found = e, score, true
		}
	}
	return best, found
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

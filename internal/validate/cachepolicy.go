package validate

import (
	"time"

	"github.com/basupportii/ai-router/internal/cache"
	"github.com/basupportii/ai-router/internal/reqtypes"
)

// nowFunc is swappable in tests.
var nowFunc = time.Now

// WriteCache applies spec.md §4.7's cache-write rule: non-ranking
// answers are written to the exact cache, and to the semantic cache
// too when an embedding is available; ranking answers are never
// cached.
func WriteCache(c *cache.Cache, intent reqtypes.Intent, normalizedPrompt, answer string, embedding []float64, fastQuery bool) error {
	if intent == reqtypes.IntentRankingQuery || IsRankingAnswer(answer) {
		return nil
	}
	entry := reqtypes.CacheEntry{
		Key:       cache.Key(intent, normalizedPrompt),
		Response:  answer,
		Timestamp: nowFunc(),
		Intent:    intent,
	}
	if len(embedding) > 0 {
		entry.Embedding = embedding
	}
	return c.Put(entry, fastQuery)
}

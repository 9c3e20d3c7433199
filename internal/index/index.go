// Package index implements the hybrid RAG collaborators of spec.md
// §4.3: a keyword inverted index and an embedding chunk index over
// local files, unioned and optionally reranked.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"sort"
	"strings"

	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/pkg/provider"
)

// maxChunksPerFile bounds embedding-index growth per indexed file.
const maxChunksPerFile = 120

// chunkOverlap is the configurable overlap between adjacent chunks.
const chunkOverlap = 50

// chunkSize is the target chunk length in runes.
const chunkSize = 500

// Keyword is an inverted index: token -> file paths containing it.
type Keyword struct {
	postings map[string]map[string]bool
	entries  map[string]reqtypes.DocEntry
}

func NewKeyword() *Keyword {
	return &Keyword{postings: make(map[string]map[string]bool), entries: make(map[string]reqtypes.DocEntry)}
}

// Add tokenizes text and records path against every distinct token.
func (k *Keyword) Add(path, text string) {
	tokens := tokenize(text)
	for _, tok := range tokens {
		if k.postings[tok] == nil {
			k.postings[tok] = make(map[string]bool)
		}
		k.postings[tok][path] = true
	}
	snippet := text
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	k.entries[path] = reqtypes.DocEntry{Path: path, Keywords: dedupe(tokens), Snippet: snippet}
}

// Search returns paths whose token set overlaps query, ranked by
// overlap count descending.
func (k *Keyword) Search(query string, limit int) []reqtypes.DocEntry {
	counts := make(map[string]int)
	for _, tok := range tokenize(query) {
		for path := range k.postings[tok] {
			counts[path]++
		}
	}
	type scored struct {
		path  string
		count int
	}
	var ranked []scored
	for path, count := range counts {
		ranked = append(ranked, scored{path, count})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].count > ranked[j].count })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]reqtypes.DocEntry, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, k.entries[r.path])
	}
	return out
}

func tokenize(text string) []string {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	var out []string
	for _, f := range fields {
		if len(f) >= 3 {
			out = append(out, f)
		}
	}
	return out
}

func dedupe(tokens []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Embedded is a chunk-level embedding index over indexed files.
type Embedded struct {
	chunks []reqtypes.DocChunk
}

func NewEmbedded() *Embedded {
	return &Embedded{}
}

// Chunk splits text into overlapping windows, bounded to
// maxChunksPerFile, and returns the chunk boundaries (text only — the
// caller embeds each chunk and calls AddChunk).
func Chunk(text string) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes) && len(out) < maxChunksPerFile; {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
		start = end - chunkOverlap
	}
	return out
}

// AddChunk records one embedded chunk, content-hashed so re-indexing
// an unchanged file is a no-op for the caller to detect.
func (e *Embedded) AddChunk(path string, index int, text string, embedding []float64) {
	sum := sha256.Sum256([]byte(text))
	e.chunks = append(e.chunks, reqtypes.DocChunk{
		Path: path, ChunkIndex: index, Text: text, Embedding: embedding, Hash: hex.EncodeToString(sum[:]),
	})
}

// Search returns the top-N chunks by cosine similarity to queryEmbedding.
func (e *Embedded) Search(queryEmbedding []float64, limit int) []reqtypes.DocChunk {
	type scored struct {
		chunk reqtypes.DocChunk
		score float64
	}
	var ranked []scored
	for _, c := range e.chunks {
		ranked = append(ranked, scored{c, cosine(c.Embedding, queryEmbedding)})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]reqtypes.DocChunk, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.chunk)
	}
	return out
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

// Rerank runs query/candidates through a provider.RerankingModel pass
// and returns the candidate texts in ranking order; the relevance
// scores are not returned.
func Rerank(ctx context.Context, model provider.RerankingModel, query string, candidates []string, topN int) ([]string, error) {
	opts := &provider.RerankOptions{Documents: candidates, Query: query}
	if topN > 0 {
		opts.TopN = &topN
	}
	result, err := model.DoRerank(ctx, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(result.Ranking))
	for _, item := range result.Ranking {
		if item.Index >= 0 && item.Index < len(candidates) {
			out = append(out, candidates[item.Index])
		}
	}
	return out, nil
}

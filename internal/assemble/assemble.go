// Package assemble implements context assembly (spec.md §4.3): given a
// request and its Route, it composes the final prompt sent to the
// backend model by concatenating, in fixed order, only the sections
// that are non-empty.
package assemble

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/basupportii/ai-router/internal/index"
	"github.com/basupportii/ai-router/internal/memory"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/internal/route"
	"github.com/basupportii/ai-router/internal/web"
)

// maxFileBytes bounds each file-context section, maxAutoFiles and
// maxFileCandidates bound auto-selection, per spec.md §4.3 item 3.
const (
	maxFileBytes       = 120_000
	maxAutoFiles       = 4
	maxFileCandidates  = 120
	maxRAGHits         = 6
	minMemoryScore     = memory.MinRecallScore
)

// FileReader abstracts reading an attached or auto-selected file's
// text, letting the caller plug in sandboxed ingest resolution.
type FileReader func(path string) (string, error)

// RewriteFunc rewrites a short, messy prompt via a cheap auxiliary
// model — used only for item 1's grammar rewrite.
type RewriteFunc func(ctx context.Context, prompt string) (string, error)

// PlanFunc produces the short numbered plan preamble for MULTI_STEP.
type PlanFunc func(ctx context.Context, prompt string) (string, error)

// Input bundles everything the assembler needs to build one prompt.
type Input struct {
	Request           reqtypes.Request
	Verdict           reqtypes.IntentVerdict
	Route             reqtypes.Route
	RankingOverridden bool
	IsFollowUp        bool

	CandidateFiles []string // ≤120 scanned file paths, auto-selection pool
	ReadFile       FileReader

	Keyword  *index.Keyword
	Embedded *index.Embedded

	Searcher *web.Searcher
	Fetcher  *web.Fetcher

	MemoryEntries  []reqtypes.MemoryEntry
	QueryEmbedding []float64

	SQLSchema string // pre-fetched, empty when no store path configured

	Rewrite RewriteFunc
	Plan    PlanFunc
}

// Assemble builds the final composed prompt.
func Assemble(ctx context.Context, in Input) (string, error) {
	var sections []string

	effective, err := effectivePrompt(ctx, in)
	if err != nil {
		return "", err
	}
	sections = append(sections, effective)

	if hint := vagueLeaderboardHint(in); hint != "" {
		sections = append(sections, hint)
	}

	if route.BypassHeavy(in.Request.NormalizedPrompt) {
		if extra := intentExtras(in); extra != "" {
			sections = append(sections, extra)
		}
		return strings.Join(sections, "\n\n"), nil
	}

	if fc := fileContext(in); fc != "" {
		sections = append(sections, fc)
	}

	if rag := hybridRAGContext(in); rag != "" {
		sections = append(sections, rag)
	}

	if wc, err := webContext(ctx, in); err != nil {
		return "", err
	} else if wc != "" {
		sections = append(sections, wc)
	}

	if mc := memoryContext(in); mc != "" {
		sections = append(sections, mc)
	}

	if in.Route.Task == reqtypes.TaskSQL && in.SQLSchema != "" {
		sections = append(sections, "Database schema:\n"+in.SQLSchema)
	}

	if in.Verdict.Intent == reqtypes.IntentMultiStep && in.Plan != nil {
		plan, err := in.Plan(ctx, effective)
		if err != nil {
			return "", err
		}
		if plan != "" {
			sections = append(sections, "Plan:\n"+plan)
		}
	}

	if extra := intentExtras(in); extra != "" {
		sections = append(sections, extra)
	}

	return strings.Join(sections, "\n\n"), nil
}

// effectivePrompt returns the raw prompt, rewritten for grammar when a
// small auxiliary model is enabled and the prompt is short and messy.
func effectivePrompt(ctx context.Context, in Input) (string, error) {
	prompt := in.Request.Prompt
	if in.Verdict.Intent == reqtypes.IntentGrammarCorrection && in.Rewrite != nil && len(prompt) <= 200 {
		rewritten, err := in.Rewrite(ctx, prompt)
		if err != nil {
			return "", err
		}
		if rewritten != "" {
			return rewritten, nil
		}
	}
	return prompt, nil
}

// vagueLeaderboardHint nudges the model toward a concrete ranking
// category when the user asked for a ranking with no category token.
func vagueLeaderboardHint(in Input) string {
	if in.Verdict.Intent != reqtypes.IntentRankingQuery {
		return ""
	}
	lower := strings.ToLower(in.Request.NormalizedPrompt)
	for _, token := range []string{"language", "framework", "movie", "book", "country", "city", "player", "team", "product", "company"} {
		if strings.Contains(lower, token) {
			return ""
		}
	}
	return "Note: no explicit ranking category was detected — pick the most likely category from context and state it up front."
}

// fileContext reads attached files (or the bounded auto-selected set)
// and truncates each to maxFileBytes.
func fileContext(in Input) string {
	if in.ReadFile == nil {
		return ""
	}
	paths := in.Request.FilePaths
	if len(paths) == 0 {
		paths = autoSelectFiles(in)
	}
	var b strings.Builder
	for _, p := range paths {
		text, err := in.ReadFile(p)
		if err != nil {
			continue
		}
		if len(text) > maxFileBytes {
			text = text[:maxFileBytes]
		}
		fmt.Fprintf(&b, "--- %s ---\n%s\n\n", p, text)
	}
	return strings.TrimSpace(b.String())
}

// autoSelectFiles picks ≤4 files by keyword overlap with the
// normalized prompt, taken from the keyword index's top hits. The
// candidate list is capped at 120 entries but does not restrict the
// choice: a hit is returned whether or not it is among the candidates.
func autoSelectFiles(in Input) []string {
	if !in.Request.Options.AutoFiles || in.Keyword == nil {
		return nil
	}
	candidates := in.CandidateFiles
	if len(candidates) > maxFileCandidates {
		candidates = candidates[:maxFileCandidates]
	}
	hits := in.Keyword.Search(in.Request.NormalizedPrompt, maxAutoFiles)
	var out []string
	for _, h := range hits {
		out = append(out, h.Path)
	}
	return out
}

// hybridRAGContext unions keyword-index and embedding-index hits, over
// the doc index (not the candidate-file scan above), optionally
// reranked upstream by the caller before Keyword/Embedded are queried.
func hybridRAGContext(in Input) string {
	if !in.Request.Options.UseDocIndex || in.Keyword == nil {
		return ""
	}
	seen := map[string]bool{}
	var lines []string
	for _, e := range in.Keyword.Search(in.Request.NormalizedPrompt, maxRAGHits) {
		if !seen[e.Path] {
			seen[e.Path] = true
			lines = append(lines, fmt.Sprintf("%s: %s", e.Path, e.Snippet))
		}
	}
	if in.Request.Options.UseEmbeddings && in.Embedded != nil && len(in.QueryEmbedding) > 0 {
		for _, c := range in.Embedded.Search(in.QueryEmbedding, maxRAGHits) {
			key := fmt.Sprintf("%s#%d", c.Path, c.ChunkIndex)
			if !seen[key] {
				seen[key] = true
				lines = append(lines, fmt.Sprintf("%s (chunk %d): %s", c.Path, c.ChunkIndex, c.Text))
			}
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "Relevant local documents:\n" + strings.Join(lines, "\n")
}

// webContext fetches URLs present in the prompt, or falls back to a
// search-engine lookup, producing a citation-friendly listing.
func webContext(ctx context.Context, in Input) (string, error) {
	if in.IsFollowUp {
		return "", nil
	}
	if !in.Verdict.RequiresWeb && !in.Request.Options.AutoWeb {
		return "", nil
	}
	if urls := extractURLs(in.Request.Prompt); len(urls) > 0 && in.Fetcher != nil {
		var b strings.Builder
		for _, u := range urls {
			text, err := in.Fetcher.FetchText(ctx, u, maxFileBytes)
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "--- %s ---\n%s\n\n", u, text)
		}
		if b.Len() > 0 {
			return strings.TrimSpace(b.String()), nil
		}
	}
	if in.Searcher == nil {
		return "", nil
	}
	results, err := in.Searcher.Search(ctx, in.Request.NormalizedPrompt, 5)
	if err != nil {
		return "", nil
	}
	if len(results) == 0 {
		return "", nil
	}
	return "Web search results:\n" + web.FormatCitations(results), nil
}

func extractURLs(prompt string) []string {
	var urls []string
	for _, word := range strings.Fields(prompt) {
		if strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") {
			urls = append(urls, strings.Trim(word, ".,;:!?)"))
		}
	}
	return urls
}

// memoryContext recalls the top-4 scoped MemoryEntrys above minMemoryScore.
func memoryContext(in Input) string {
	if len(in.MemoryEntries) == 0 {
		return ""
	}
	recalled := memory.Recall(in.MemoryEntries, strings.Fields(in.Request.NormalizedPrompt), in.QueryEmbedding)
	if len(recalled) == 0 {
		return ""
	}
	sort.Slice(recalled, func(i, j int) bool { return recalled[i].Score > recalled[j].Score })
	var b strings.Builder
	b.WriteString("Relevant past exchanges:\n")
	for _, r := range recalled {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", r.Entry.Prompt, r.Entry.Response)
	}
	return strings.TrimSpace(b.String())
}

// intentExtras appends the fixed, intent-specific trailer spec.md §4.3
// item 9 calls for.
func intentExtras(in Input) string {
	switch in.Verdict.Intent {
	case reqtypes.IntentCreative:
		return "Respond in an engaging, stylistically rich voice appropriate to the request."
	case reqtypes.IntentVisualization:
		return "Respond with a CHART_JSON: block containing {type, labels, values}."
	case reqtypes.IntentSystemDesign:
		return "Include a Mermaid diagram (```mermaid fenced block) describing the architecture."
	case reqtypes.IntentHTMLMarkup:
		return "Respond with valid, escaped HTML markup only."
	default:
		return ""
	}
}

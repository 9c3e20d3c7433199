// Package pipeline wires the request → assembly → routing → generation
// → validation → cache → egress data flow spec.md §9 describes as a
// DAG with no cyclic reference graphs. It is the single orchestrator
// both the HTTP and WebSocket ingress paths in internal/httpapi drive,
// so the two transports never duplicate routing/generation logic.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/basupportii/ai-router/internal/assemble"
	"github.com/basupportii/ai-router/internal/cache"
	"github.com/basupportii/ai-router/internal/classify"
	"github.com/basupportii/ai-router/internal/format"
	"github.com/basupportii/ai-router/internal/generate"
	"github.com/basupportii/ai-router/internal/index"
	"github.com/basupportii/ai-router/internal/memory"
	"github.com/basupportii/ai-router/internal/reqtypes"
	"github.com/basupportii/ai-router/internal/route"
	"github.com/basupportii/ai-router/internal/solve"
	"github.com/basupportii/ai-router/internal/toolchain"
	"github.com/basupportii/ai-router/internal/validate"
	"github.com/basupportii/ai-router/internal/web"
)

// Pipeline owns every collaborator a request needs, grounded against
// appstate.AppState plus the route-model table and side-fetch clients
// resolved once at startup.
type Pipeline struct {
	Models    route.ModelSet
	Resolve   generate.ResolveModel
	Cache     *cache.Cache
	Memory    *memory.Store
	Tracker   *memory.Tracker // per-user conversation ring buffer, for follow-up grounding
	Tools     *toolchain.Registry // explicit "/tool"/"tool:" bypass, per spec.md §4.6 and §2 step 2
	Keyword   *index.Keyword
	Embedded  *index.Embedded
	Searcher  *web.Searcher
	Fetcher   *web.Fetcher
	ReadFile  assemble.FileReader
	Files     []string // candidate file pool for auto-selection
}

// Result is the outcome of running one request end to end.
type Result struct {
	Model       string
	Response    string
	Route       reqtypes.Route
	Verdict     reqtypes.IntentVerdict
	Format      format.Shape
	HTML        string
	CacheHit    bool
	WebUsed     bool
	MemoryHits  int
	DurationMS  int64
}

// Run executes one request synchronously; emit receives every
// generate.Event the supervisor and side-fetches produce, in write
// order, with Event{Type: EventDone} always last on success and
// EventError last on failure — callers MUST NOT emit anything after
// Run returns.
func (p *Pipeline) Run(ctx context.Context, req reqtypes.Request, emit generate.Emit) (Result, error) {
	start := time.Now()
	if emit == nil {
		emit = func(generate.Event) {}
	}

	normalized := strings.ToLower(strings.TrimSpace(req.Prompt))
	req.NormalizedPrompt = normalized

	// Explicit "/tool ..." or "tool: ..." invocations bypass the LM
	// entirely (spec.md §4.6, §2 step 2) — checked before classification
	// and the local solvers, since neither applies to a tool command.
	if p.Tools != nil {
		if inv, ok := toolchain.ParseExplicit(req.Prompt); ok {
			return p.runExplicitTool(ctx, inv, start, emit)
		}
	}

	entries := p.Memory.Entries(req.UserID, req.TeamID, req.Options.TeamMode)
	recalled := memory.Recall(entries, keywordsOf(normalized), nil)

	var previousUserPrompt string
	if p.Tracker != nil {
		previousUserPrompt = lastUserPrompt(p.Tracker.Context(req.UserID))
	}
	verdict, isFollowUp := classify.ClassifyTurn(req.Prompt, previousUserPrompt, classify.Context{})
	emit(generate.Event{Type: generate.EventIntentClassification, Intent: string(verdict.Intent), Confidence: string(verdict.Confidence)})

	if answer := solve.TrySolve(req.Prompt); answer != nil {
		text := answer.Envelope()
		model := "local-math"
		rt := reqtypes.Route{}
		if answer.Kind == solve.KindGreeting {
			model = "local-greeting"
			rt = reqtypes.Route{Task: reqtypes.TaskGreeting, Model: model, Rationale: "conversational reply table match"}
		}
		emit(generate.Event{Type: generate.EventToken, Text: text})
		meta := &generate.DoneMeta{DurationMS: time.Since(start).Milliseconds(), Model: model, Format: string(format.Detect(text))}
		emit(generate.Event{Type: generate.EventDone, Meta: meta})
		return Result{Model: model, Response: text, Route: rt, Verdict: verdict, Format: format.Detect(text), DurationMS: meta.DurationMS}, nil
	}

	rt := route.Select(route.Input{
		Verdict:       verdict,
		TaskOverride:  req.TaskOverride,
		ModelOverride: req.ModelOverride,
		ImageDesc:     req.ImageDescription,
		PreferFast:    req.Options.Fast,
	}, p.Models, normalized)

	cacheKey := cache.Key(verdict.Intent, normalized)
	if entry, ok := p.Cache.Get(cacheKey); ok {
		emit(generate.Event{Type: generate.EventToken, Text: entry.Response})
		meta := &generate.DoneMeta{DurationMS: time.Since(start).Milliseconds(), Model: rt.Model, Format: string(format.Detect(entry.Response))}
		emit(generate.Event{Type: generate.EventDone, Meta: meta})
		return Result{Model: rt.Model, Response: entry.Response, Route: rt, Verdict: verdict, CacheHit: true, Format: format.Detect(entry.Response), DurationMS: meta.DurationMS}, nil
	}

	var webUsed bool
	asmIn := assemble.Input{
		Request:        req,
		Verdict:        verdict,
		Route:          rt,
		IsFollowUp:     isFollowUp,
		CandidateFiles: p.Files,
		ReadFile:       p.ReadFile,
		Keyword:        p.Keyword,
		Embedded:       p.Embedded,
		Searcher:       p.Searcher,
		Fetcher:        p.Fetcher,
		MemoryEntries:  recalled10(recalled),
	}
	prompt, err := assemble.Assemble(ctx, asmIn)
	if err != nil {
		emit(generate.Event{Type: generate.EventError, ErrorMessage: err.Error()})
		return Result{}, err
	}
	if req.Options.AutoWeb && p.Searcher != nil {
		webUsed = true
	}

	if verdict.Intent == reqtypes.IntentRankingQuery && webUsed {
		if results, serr := p.Searcher.Search(ctx, req.Prompt, 5); serr == nil && len(results) > 0 {
			emit(generate.Event{Type: generate.EventWebSearchResults, Citations: web.FormatCitations(results)})
		}
	}

	supervisor := generate.NewSupervisor(p.Models, p.Resolve)
	answer, modelUsed, err := supervisor.Run(ctx, verdict, prompt, rt.SystemPromptID, rt.Model, emit)
	if err != nil {
		emit(generate.Event{Type: generate.EventError, ErrorMessage: err.Error()})
		return Result{}, err
	}

	if verdict.Intent == reqtypes.IntentRankingQuery {
		answer = validate.ValidateRanking(req.Prompt, answer).Answer
	}

	if replacement, replaced := validate.VerifyMath(req.Prompt, answer); replaced {
		answer = replacement
	}

	rendered := format.Format(answer)

	if werr := validate.WriteCache(p.Cache, verdict.Intent, normalized, answer, nil, req.Options.Fast); werr != nil {
		// cache writes are best-effort; never fail the request over them
		_ = werr
	}

	// spec.md §3's MemoryEntry lifecycle writes a durable entry only
	// when the prompt carries the explicit save-to-memory trigger
	// phrase or the caller passes force:true — not on every turn.
	if memory.TriggersSave(normalized) || req.Options.Force {
		if err := p.Memory.Save(reqtypes.MemoryEntry{
			ID:        req.ID,
			Prompt:    req.Prompt,
			Response:  answer,
			Keywords:  keywordsOf(normalized),
			UserID:    req.UserID,
			TeamID:    req.TeamID,
			CreatedAt: time.Now(),
		}); err != nil {
			_ = err
		}
	}

	if p.Tracker != nil {
		now := time.Now()
		p.Tracker.Append(req.UserID, reqtypes.ConversationMessage{Role: reqtypes.RoleUser, Content: req.Prompt, Timestamp: now, Intent: verdict.Intent})
		p.Tracker.Append(req.UserID, reqtypes.ConversationMessage{Role: reqtypes.RoleAssistant, Content: answer, Timestamp: now})
	}

	meta := &generate.DoneMeta{
		DurationMS: time.Since(start).Milliseconds(),
		Model:      modelUsed,
		Format:     string(rendered.Shape),
	}
	emit(generate.Event{Type: generate.EventDone, Meta: meta})

	return Result{
		Model:      modelUsed,
		Response:   answer,
		Route:      rt,
		Verdict:    verdict,
		Format:     rendered.Shape,
		HTML:       rendered.HTML,
		WebUsed:    webUsed,
		MemoryHits: len(recalled),
		DurationMS: meta.DurationMS,
	}, nil
}

// runExplicitTool dispatches an ExplicitInvocation straight to
// p.Tools, wraps the output in the canonical envelope, and returns
// without ever touching the classifier, solvers, or a backend model.
func (p *Pipeline) runExplicitTool(ctx context.Context, inv toolchain.ExplicitInvocation, start time.Time, emit generate.Emit) (Result, error) {
	args := toolchain.Args{Code: inv.Body, Query: inv.Body, Text: inv.Body, URL: inv.Body}
	out, err := p.Tools.Dispatch(ctx, inv.Kind, args)
	model := "tool:" + string(inv.Kind)
	rt := reqtypes.Route{Model: model, Rationale: "explicit tool invocation"}
	if err != nil {
		emit(generate.Event{Type: generate.EventError, ErrorMessage: err.Error()})
		return Result{}, err
	}

	text := (solve.Answer{Result: out.Output}).Envelope()
	emit(generate.Event{Type: generate.EventToken, Text: text})
	meta := &generate.DoneMeta{DurationMS: time.Since(start).Milliseconds(), Model: model, Format: string(format.Detect(text))}
	emit(generate.Event{Type: generate.EventDone, Meta: meta})
	return Result{Model: model, Response: text, Route: rt, Format: format.Detect(text), DurationMS: meta.DurationMS}, nil
}

func keywordsOf(normalized string) []string {
	fields := strings.Fields(normalized)
	seen := make(map[string]bool, len(fields))
	var out []string
	for _, w := range fields {
		if len(w) < 3 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func recalled10(recalled []memory.Recalled) []reqtypes.MemoryEntry {
	out := make([]reqtypes.MemoryEntry, 0, len(recalled))
	for _, r := range recalled {
		out = append(out, r.Entry)
	}
	return out
}

// lastUserPrompt scans turns (oldest first) for the most recent
// user-authored message, the grounding context classify.ClassifyTurn
// expands a vague follow-up against.
func lastUserPrompt(turns []reqtypes.ConversationMessage) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == reqtypes.RoleUser {
			return turns[i].Content
		}
	}
	return ""
}

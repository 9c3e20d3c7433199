// Package toolchain implements tool dispatch and chaining (spec.md
// §4.6). Per Design Notes §9 ("Dynamic tool dispatch"), tools are a
// closed tagged variant rather than a string-keyed registry: Kind is
// the tag, Tool is the trait every concrete tool implements, and
// Dispatch is an exhaustive switch over Kind instead of a map lookup.
package toolchain

import (
	"context"
	"time"

	"github.com/basupportii/ai-router/internal/routererr"
)

// Kind is the closed set of tool tags.
type Kind string

const (
	KindPython     Kind = "python"
	KindJS         Kind = "js"
	KindTS         Kind = "ts"
	KindSQL        Kind = "sql"
	KindSQLSchema  Kind = "sql_schema"
	KindSympy      Kind = "sympy"
	KindVisualize  Kind = "visualize"
	KindIngest     Kind = "ingest"
	KindSearch     Kind = "search"
	KindFetch      Kind = "fetch"
	KindSummarize  Kind = "summarize"
	KindAnalyze    Kind = "analyze"
)

// Args is the bounded input to a single tool invocation.
type Args struct {
	Code     string
	Query    string
	Path     string
	URL      string
	Text     string
	AllowWrite bool
	Extra    map[string]string
}

// maxInputChars is the bounded-input-size contract of spec.md §4.6.
const maxInputChars = 12_000

// Result is the output of one tool invocation.
type Result struct {
	Output   string
	Cached   bool
	Duration time.Duration
}

// Tool is the trait every tagged variant implements.
type Tool interface {
	Kind() Kind
	Run(ctx context.Context, args Args) (Result, error)
}

// Registry holds one constructed Tool per Kind, wired at startup from
// internal/sandbox and internal/web collaborators.
type Registry struct {
	tools map[Kind]Tool
}

// NewRegistry builds a Registry from the given tools, keyed by their
// own Kind() — duplicates overwrite, last one wins.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[Kind]Tool, len(tools))}
	for _, t := range tools {
		r.tools[t.Kind()] = t
	}
	return r
}

// Dispatch runs the tool named by kind against args, enforcing the
// bounded-input-size contract before handing off. The switch below is
// exhaustive over Kind: adding a new Kind without a case here is a
// compile-time-visible gap, caught by the default branch at runtime
// until a case is added.
func (r *Registry) Dispatch(ctx context.Context, kind Kind, args Args) (Result, error) {
	if len(args.Code) > maxInputChars || len(args.Query) > maxInputChars || len(args.Text) > maxInputChars {
		return Result{}, routererr.New(routererr.KindBadRequest, "tool input exceeds bounded size")
	}

	switch kind {
	case KindPython, KindJS, KindTS, KindSQL, KindSQLSchema, KindSympy,
		KindVisualize, KindIngest, KindSearch, KindFetch, KindSummarize, KindAnalyze:
		t, ok := r.tools[kind]
		if !ok {
			return Result{}, routererr.New(routererr.KindToolNotFound, string(kind))
		}
		start := time.Now()
		out, err := t.Run(ctx, args)
		out.Duration = time.Since(start)
		return out, err
	default:
		return Result{}, routererr.New(routererr.KindToolNotFound, string(kind))
	}
}

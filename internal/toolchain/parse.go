package toolchain

import "strings"

// aliasToKind maps the prompt-facing tool names of spec.md §4.6
// (python, code_execute, code_analysis, summarize, sql, sql_schema,
// sympy, visualize, ingest, search, fetch/url) onto the tagged Kind.
var aliasToKind = map[string]Kind{
	"python":        KindPython,
	"code_execute":  KindPython,
	"code_analysis": KindAnalyze,
	"summarize":     KindSummarize,
	"sql":           KindSQL,
	"sql_schema":    KindSQLSchema,
	"sympy":         KindSympy,
	"visualize":     KindVisualize,
	"ingest":        KindIngest,
	"search":        KindSearch,
	"fetch":         KindFetch,
	"url":           KindFetch,
	"js":            KindJS,
	"javascript":    KindJS,
	"ts":            KindTS,
	"typescript":    KindTS,
}

// ExplicitInvocation is a parsed "/tool ..." or "tool: ..." prefix
// that bypasses the LM entirely, per spec.md §4.6.
type ExplicitInvocation struct {
	Kind Kind
	Body string
}

// ParseExplicit detects the two explicit-invocation prefixes. It
// returns ok=false when prompt does not start with a recognized tool
// name in either form, so the caller falls through to the normal
// generation pipeline.
func ParseExplicit(prompt string) (ExplicitInvocation, bool) {
	trimmed := strings.TrimSpace(prompt)

	if strings.HasPrefix(trimmed, "/") {
		rest := trimmed[1:]
		name, body, _ := strings.Cut(rest, " ")
		if kind, ok := aliasToKind[strings.ToLower(name)]; ok {
			return ExplicitInvocation{Kind: kind, Body: strings.TrimSpace(body)}, true
		}
		return ExplicitInvocation{}, false
	}

	if idx := strings.Index(trimmed, ":"); idx > 0 {
		name := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		if kind, ok := aliasToKind[name]; ok {
			return ExplicitInvocation{Kind: kind, Body: strings.TrimSpace(trimmed[idx+1:])}, true
		}
	}

	return ExplicitInvocation{}, false
}

// ChainStep is one ordered entry of a chain request.
type ChainStep struct {
	Name string
	Args Args
}

// ResolveKind maps a chain step's prompt-facing tool name onto its Kind.
func ResolveKind(name string) (Kind, bool) {
	k, ok := aliasToKind[strings.ToLower(name)]
	return k, ok
}

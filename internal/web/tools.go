package web

import (
	"context"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/internal/toolchain"
)

// maxFetchChars bounds a single fetched page the same way every other
// tool input is bounded.
const maxFetchChars = 12_000

// SearchTool implements toolchain.Tool for the "search" alias.
type SearchTool struct {
	Searcher *Searcher
}

func (t SearchTool) Kind() toolchain.Kind { return toolchain.KindSearch }

func (t SearchTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	if args.Query == "" {
		return toolchain.Result{}, routererr.New(routererr.KindBadRequest, "search requires a query")
	}
	results, err := t.Searcher.Search(ctx, args.Query, 5)
	if err != nil {
		return toolchain.Result{}, err
	}
	return toolchain.Result{Output: FormatCitations(results)}, nil
}

// FetchTool implements toolchain.Tool for the "fetch"/"url" alias.
type FetchTool struct {
	Fetcher *Fetcher
}

func (t FetchTool) Kind() toolchain.Kind { return toolchain.KindFetch }

func (t FetchTool) Run(ctx context.Context, args toolchain.Args) (toolchain.Result, error) {
	if args.URL == "" {
		return toolchain.Result{}, routererr.New(routererr.KindBadRequest, "fetch requires a url")
	}
	text, err := t.Fetcher.FetchText(ctx, args.URL, maxFetchChars)
	if err != nil {
		return toolchain.Result{}, err
	}
	return toolchain.Result{Output: text}, nil
}

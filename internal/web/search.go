// Package web implements the web-context collaborators of spec.md
// §4.3: search with a provider fallback chain, URL fetch, and page
// text extraction — built on the teacher's pkg/internal/http.Client
// the same way pkg/providers/ollama is, and on pkg/internal/retry for
// the same exponential-backoff-with-jitter policy the backend calls use.
package web

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/pkg/internal/http"
	"github.com/basupportii/ai-router/pkg/internal/retry"
)

// SearchResult is one citation-ready hit.
type SearchResult struct {
	Title string
	URL   string
}

// Config resolves the three engines in fallback order: SerpAPI,
// SearXNG, DuckDuckGo — matching internal/config's SEARCH_API/
// SEARCH_API_KEY/SEARXNG_URL knobs.
type Config struct {
	SearchAPI    string // "serpapi" to enable
	SearchAPIKey string
	SearXNGURL   string
}

// Searcher runs web search with the configured fallback chain.
type Searcher struct {
	cfg     Config
	serpAPI *http.Client
	searx   *http.Client
	ddg     *http.Client
}

func NewSearcher(cfg Config) *Searcher {
	s := &Searcher{cfg: cfg}
	if strings.EqualFold(cfg.SearchAPI, "serpapi") && cfg.SearchAPIKey != "" {
		s.serpAPI = http.NewClient(http.Config{BaseURL: "https://serpapi.com"})
	}
	if cfg.SearXNGURL != "" {
		s.searx = http.NewClient(http.Config{BaseURL: cfg.SearXNGURL})
	}
	s.ddg = http.NewClient(http.Config{BaseURL: "https://lite.duckduckgo.com"})
	return s
}

// retryConfig applies IsRetryable so a malformed query never burns the
// full backoff budget against all three engines before Search gives up.
func retryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.ShouldRetry = retry.IsRetryable
	return cfg
}

// Search tries SerpAPI, then SearXNG, then DuckDuckGo, returning the
// first engine's results. All engine calls go through retry.Do so a
// transient failure at one tier still gets the teacher's standard
// backoff before falling through to the next tier.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if s.serpAPI != nil {
		if results, err := s.searchSerpAPI(ctx, query, limit); err == nil {
			return results, nil
		}
	}
	if s.searx != nil {
		if results, err := s.searchSearXNG(ctx, query, limit); err == nil {
			return results, nil
		}
	}
	results, err := s.searchDuckDuckGo(ctx, query, limit)
	if err != nil {
		return nil, routererr.Wrap(routererr.KindUpstreamUnavailable, "all search engines failed", err)
	}
	return results, nil
}

func (s *Searcher) searchSerpAPI(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	var out []SearchResult
	err := retry.Do(ctx, retryConfig(), func(ctx context.Context) error {
		var body struct {
			OrganicResults []struct {
				Title string `json:"title"`
				Link  string `json:"link"`
			} `json:"organic_results"`
		}
		if err := s.serpAPI.GetJSON(ctx, "/search.json?engine=google&api_key="+s.cfg.SearchAPIKey+"&q="+queryEscape(query), &body); err != nil {
			return err
		}
		out = nil
		for i, r := range body.OrganicResults {
			if i >= limit {
				break
			}
			out = append(out, SearchResult{Title: r.Title, URL: r.Link})
		}
		return nil
	})
	return out, err
}

func (s *Searcher) searchSearXNG(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	var out []SearchResult
	err := retry.Do(ctx, retryConfig(), func(ctx context.Context) error {
		var body struct {
			Results []struct {
				Title string `json:"title"`
				URL   string `json:"url"`
			} `json:"results"`
		}
		if err := s.searx.GetJSON(ctx, "/search?format=json&q="+queryEscape(query), &body); err != nil {
			return err
		}
		out = nil
		for i, r := range body.Results {
			if i >= limit {
				break
			}
			out = append(out, SearchResult{Title: r.Title, URL: r.URL})
		}
		return nil
	})
	return out, err
}

// searchDuckDuckGo scrapes the lite HTML endpoint, which requires no
// API key, and extracts result anchors via extractLinks.
func (s *Searcher) searchDuckDuckGo(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	var out []SearchResult
	err := retry.Do(ctx, retryConfig(), func(ctx context.Context) error {
		resp, err := s.ddg.Get(ctx, "/lite/?q="+queryEscape(query))
		if err != nil {
			return err
		}
		links := extractLinks(string(resp.Body))
		out = nil
		for i, l := range links {
			if i >= limit {
				break
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func queryEscape(q string) string {
	var b strings.Builder
	for _, r := range q {
		if r == ' ' {
			b.WriteString("+")
		} else if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteString("%")
			b.WriteString(strconv.FormatInt(int64(r), 16))
		}
	}
	return b.String()
}

// FormatCitations renders results in the "[n] Title — URL" listing
// spec.md §4.3 requires for citation-friendly web context.
func FormatCitations(results []SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s — %s\n", i+1, r.Title, r.URL)
	}
	return b.String()
}

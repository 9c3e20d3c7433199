package web

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/basupportii/ai-router/internal/routererr"
	"github.com/basupportii/ai-router/pkg/internal/http"
)

// Fetcher retrieves a URL and extracts its visible text.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: http.NewClient(http.Config{})}
}

// FetchText retrieves url and returns its extracted body text,
// stripped of script/style content, truncated to maxChars.
func (f *Fetcher) FetchText(ctx context.Context, url string, maxChars int) (string, error) {
	resp, err := f.client.Do(ctx, http.Request{Method: "GET", Path: url})
	if err != nil {
		return "", routererr.Wrap(routererr.KindUpstreamUnavailable, "fetch "+url, err)
	}
	text := extractText(string(resp.Body))
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return text, nil
}

// extractLinks walks a DuckDuckGo lite results page for result
// anchors, since the endpoint returns raw HTML rather than JSON.
func extractLinks(pageHTML string) []SearchResult {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}
	var out []SearchResult
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var href string
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = attr.Val
				}
				if attr.Key == "class" && strings.Contains(attr.Val, "result-link") {
					title := textContent(n)
					if href != "" && title != "" {
						out = append(out, SearchResult{Title: title, URL: href})
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// extractText walks the DOM collecting text nodes, skipping <script>
// and <style> subtrees entirely.
func extractText(pageHTML string) string {
	doc, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				b.WriteString(trimmed)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

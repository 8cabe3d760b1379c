// Package goquery extracts README content from rendered repository pages
// using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/zerosource"
)

// ReadmeSelectors are tried in order; the first match wins. They cover the
// README containers rendered by common code hosts.
var ReadmeSelectors = []string{
	"article.markdown-body",  // GitHub
	"#readme .markdown-body", // GitHub (repository overview)
	".readme-holder .md",     // GitLab
	".file-view.markdown",    // Gitea / Forgejo
	"#readme",
	"main article",
}

// Ensure ReadmeExtractor implements zerosource.Extractor at compile time.
var _ zerosource.Extractor = (*ReadmeExtractor)(nil)

// ReadmeExtractor selects the rendered README from a repository page.
// When no known container matches it delegates to Fallback, or returns an
// empty ContentHTML so callers convert the whole page.
type ReadmeExtractor struct {
	Selectors []string
	Fallback  zerosource.Extractor
}

// NewReadmeExtractor creates a ReadmeExtractor using ReadmeSelectors.
func NewReadmeExtractor(fallback zerosource.Extractor) *ReadmeExtractor {
	return &ReadmeExtractor{
		Selectors: ReadmeSelectors,
		Fallback:  fallback,
	}
}

// Extract returns the README container's HTML and the page title.
func (e *ReadmeExtractor) Extract(html string) (*zerosource.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range e.Selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		content, err := sel.Html()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		return &zerosource.ExtractResult{
			Title:       pageTitle(doc),
			ContentHTML: content,
		}, nil
	}

	if e.Fallback != nil {
		return e.Fallback.Extract(html)
	}

	return &zerosource.ExtractResult{Title: pageTitle(doc)}, nil
}

// pageTitle prefers og:title over <title>.
func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Package readability extracts the main article from HTML pages using the
// Mozilla Readability algorithm.
package readability

import (
	"strings"

	"github.com/fwojciec/zerosource"
	"github.com/go-shiori/go-readability"
)

var _ zerosource.Extractor = (*Extractor)(nil)

// Extractor is the alternative to the trafilatura extractor, selected with
// --extractor=readability. It suits project pages laid out as a single
// article.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article content of rawHTML. A page without article
// text is rejected instead of becoming an empty document.
func (e *Extractor) Extract(rawHTML string) (*zerosource.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "no readable content: %v", err)
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "page has no readable article")
	}

	return &zerosource.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}

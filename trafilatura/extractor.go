// Package trafilatura extracts the main content of arbitrary HTML pages.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/zerosource"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ zerosource.Extractor = (*Extractor)(nil)

// Extractor pulls the main body out of project pages that are not hosted
// as plain markdown. It is the fallback used when the page has no
// recognisable README container.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML. trafilatura strips the page
// heading into metadata, so when the content has no H1 the metadata title is
// put back as one. The project title is then recoverable from the markdown.
func (e *Extractor) Extract(rawHTML string) (*zerosource.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "no readable content: %v", err)
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if result.ContentNode == nil {
		return &zerosource.ExtractResult{Title: title}, nil
	}

	var buf bytes.Buffer
	if title != "" && !hasHeading(result.ContentNode) {
		buf.WriteString("<h1>")
		buf.WriteString(html.EscapeString(title))
		buf.WriteString("</h1>\n")
	}
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, err
	}

	return &zerosource.ExtractResult{
		Title:       title,
		ContentHTML: buf.String(),
	}, nil
}

// hasHeading reports whether n contains an H1 element.
func hasHeading(n *html.Node) bool {
	if n.Type == html.ElementNode && n.DataAtom == atom.H1 {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasHeading(c) {
			return true
		}
	}
	return false
}

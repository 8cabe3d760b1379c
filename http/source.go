package http

import (
	"context"
	"fmt"

	"github.com/fwojciec/zerosource"
)

// Ensure Source implements zerosource.Source at compile time.
var _ zerosource.Source = (*Source)(nil)

// Source loads documents from URLs. Markdown and plain text responses are
// used verbatim; HTML pages are reduced to their main content and converted
// to markdown.
type Source struct {
	Fetcher   zerosource.Fetcher
	Extractor zerosource.Extractor // optional
	Converter zerosource.Converter
}

// Load fetches the document at the given URL.
func (s *Source) Load(ctx context.Context, location string) (*zerosource.Document, error) {
	res, err := s.Fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	doc := &zerosource.Document{
		Location: location,
		Content:  res.Body,
	}

	if !res.IsHTML() {
		return doc, nil
	}

	if s.Converter == nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "%s is an HTML page and no converter is configured", location)
	}

	html := res.Body
	if s.Extractor != nil {
		result, err := s.Extractor.Extract(html)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", location, err)
		}
		doc.Title = result.Title
		if result.ContentHTML != "" {
			html = result.ContentHTML
		}
	}

	markdown, err := s.Converter.Convert(html)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", location, err)
	}
	doc.Content = markdown

	return doc, nil
}

package zerosource

import "context"

// Document is a markdown document loaded from a source.
type Document struct {
	// Location is where the document was loaded from (path, URL, or
	// "github:owner/repo").
	Location string `json:"location"`

	// Content is the full markdown text.
	Content string `json:"content"`

	// Title is the title reported by the source itself, such as a front
	// matter field or an HTML <title>. Empty when the source has none.
	Title string `json:"title,omitempty"`

	// Metadata holds source-specific attributes, e.g. parsed front matter.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Location == "" {
		return Errorf(EINVALID, "document location required")
	}
	return nil
}

// ProjectTitle returns the title callers should display for a document: the
// first level-1 heading, then the source-reported title, then
// DefaultProjectTitle.
func ProjectTitle(doc *Document) string {
	if doc == nil {
		return DefaultProjectTitle
	}
	if title, ok := ExtractTitle(doc.Content); ok {
		return title
	}
	if doc.Title != "" {
		return doc.Title
	}
	return DefaultProjectTitle
}

// Source loads documents by location.
type Source interface {
	// Load reads the document at location.
	// Returns ENOTFOUND if the document does not exist.
	Load(ctx context.Context, location string) (*Document, error)
}

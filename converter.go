package zerosource

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// Renderer renders Markdown to HTML.
type Renderer interface {
	// Render transforms Markdown into an HTML fragment.
	Render(markdown string) (string, error)
}

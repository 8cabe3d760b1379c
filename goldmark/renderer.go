// Package goldmark renders markdown section bodies to HTML.
package goldmark

import (
	"bytes"
	"fmt"

	"github.com/fwojciec/zerosource"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements zerosource.Renderer at compile time.
var _ zerosource.Renderer = (*Renderer)(nil)

// Renderer renders GitHub-flavored markdown to HTML. It is stateless and
// safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	unsafe bool
}

// WithUnsafeHTML passes raw HTML in the markdown through to the output.
// Raw HTML is omitted by default.
func WithUnsafeHTML() Option {
	return func(o *options) {
		o.unsafe = true
	}
}

// NewRenderer creates a Renderer with GFM, linkify and task list support.
func NewRenderer(opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var rendererOptions []goldmark.Option
	if o.unsafe {
		rendererOptions = append(rendererOptions, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	engineOptions := append([]goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}, rendererOptions...)

	return &Renderer{md: goldmark.New(engineOptions...)}
}

// Render converts markdown into an HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

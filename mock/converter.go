package mock

import "github.com/fwojciec/zerosource"

var _ zerosource.Converter = (*Converter)(nil)

// Converter is a mock implementation of zerosource.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ zerosource.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of zerosource.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}

package mock

import (
	"context"

	"github.com/fwojciec/zerosource"
)

var _ zerosource.Generator = (*Generator)(nil)

// Generator is a mock implementation of zerosource.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error)
}

func (g *Generator) Generate(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
	return g.GenerateFn(ctx, document, component, language, opts)
}

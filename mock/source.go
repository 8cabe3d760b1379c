package mock

import (
	"context"

	"github.com/fwojciec/zerosource"
)

var _ zerosource.Source = (*Source)(nil)

// Source is a mock implementation of zerosource.Source.
type Source struct {
	LoadFn func(ctx context.Context, location string) (*zerosource.Document, error)
}

func (s *Source) Load(ctx context.Context, location string) (*zerosource.Document, error) {
	return s.LoadFn(ctx, location)
}

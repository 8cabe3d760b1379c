package mock

import (
	"context"

	"github.com/fwojciec/zerosource"
)

var _ zerosource.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of zerosource.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*zerosource.Resource, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*zerosource.Resource, error) {
	return f.FetchFn(ctx, url)
}

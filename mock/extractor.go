package mock

import "github.com/fwojciec/zerosource"

var _ zerosource.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of zerosource.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*zerosource.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*zerosource.ExtractResult, error) {
	return e.ExtractFn(html)
}

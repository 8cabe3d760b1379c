package main

import (
	"context"
	"strings"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/github"
)

// Compile-time interface verification.
var _ zerosource.Source = (*Resolver)(nil)

// Resolver implements zerosource.Source by dispatching on the location:
// github:owner/repo goes to GitHub, http(s) URLs to the remote source, and
// everything else (paths and "-") to the local source.
type Resolver struct {
	Local  zerosource.Source
	Remote zerosource.Source
	GitHub zerosource.Source
}

// Load implements zerosource.Source.
func (r *Resolver) Load(ctx context.Context, location string) (*zerosource.Document, error) {
	source, kind := r.Local, "local"
	switch {
	case github.IsLocation(location):
		source, kind = r.GitHub, "GitHub"
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		source, kind = r.Remote, "remote"
	}
	if source == nil {
		return nil, zerosource.Errorf(zerosource.EUNAVAILABLE, "%s documents are not supported", kind)
	}
	return source.Load(ctx, location)
}

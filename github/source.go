// Package github loads repository READMEs through the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/zerosource"
	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

// Scheme prefixes locations handled by Source.
const Scheme = "github:"

// Ensure Source implements zerosource.Source at compile time.
var _ zerosource.Source = (*Source)(nil)

// Source loads the README of a GitHub repository.
type Source struct {
	client *github.Client
}

// NewSource creates a new Source using client.
func NewSource(client *github.Client) *Source {
	return &Source{client: client}
}

// NewClient returns a GitHub client. An empty token yields an
// unauthenticated client, which is subject to lower rate limits.
func NewClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// Location identifies a repository README.
type Location struct {
	Owner string
	Repo  string
	Ref   string
}

// String formats the location as "github:owner/repo[@ref]".
func (l Location) String() string {
	s := Scheme + l.Owner + "/" + l.Repo
	if l.Ref != "" {
		s += "@" + l.Ref
	}
	return s
}

// IsLocation reports whether location uses the github: scheme.
func IsLocation(location string) bool {
	return strings.HasPrefix(location, Scheme)
}

// ParseLocation parses "github:owner/repo" or "github:owner/repo@ref".
func ParseLocation(location string) (Location, error) {
	rest, ok := strings.CutPrefix(location, Scheme)
	if !ok {
		return Location{}, zerosource.Errorf(zerosource.EINVALID, "location %q must start with %q", location, Scheme)
	}

	repoPath, ref, _ := strings.Cut(rest, "@")
	owner, repo, ok := strings.Cut(repoPath, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Location{}, zerosource.Errorf(zerosource.EINVALID, "location %q must be %sowner/repo[@ref]", location, Scheme)
	}

	return Location{Owner: owner, Repo: repo, Ref: ref}, nil
}

// Load fetches and decodes the repository README.
func (s *Source) Load(ctx context.Context, location string) (*zerosource.Document, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	var opts *github.RepositoryContentGetOptions
	if loc.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: loc.Ref}
	}

	readme, resp, err := s.client.Repositories.GetReadme(ctx, loc.Owner, loc.Repo, opts)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return nil, zerosource.Errorf(zerosource.ENOTFOUND, "README for %s/%s not found", loc.Owner, loc.Repo)
	}
	if err != nil {
		return nil, fmt.Errorf("get readme %s/%s: %w", loc.Owner, loc.Repo, err)
	}

	content, err := readme.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode readme %s/%s: %w", loc.Owner, loc.Repo, err)
	}

	return &zerosource.Document{
		Location: location,
		Content:  content,
		Title:    loc.Owner + "/" + loc.Repo,
		Metadata: map[string]any{
			"path":    readme.GetPath(),
			"sha":     readme.GetSHA(),
			"htmlUrl": readme.GetHTMLURL(),
		},
	}, nil
}

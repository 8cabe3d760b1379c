package zerosource

import (
	"context"
	"strings"
)

// Resource is the raw response for a fetched URL.
type Resource struct {
	URL         string
	ContentType string
	Body        string
}

// IsHTML reports whether the resource should be treated as an HTML page
// rather than raw markdown.
func (r *Resource) IsHTML() bool {
	if strings.Contains(strings.ToLower(r.ContentType), "text/html") {
		return true
	}
	head := strings.TrimLeft(r.Body, " \t\r\n")
	if len(head) > 64 {
		head = head[:64]
	}
	head = strings.ToLower(head)
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}

// Fetcher retrieves raw resources from URLs.
type Fetcher interface {
	// Fetch retrieves the resource at url.
	// Returns ENOTFOUND if the server reports the resource missing.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Resource, error)
}

// Package fs loads documents from the local file system.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/adrg/frontmatter"
	"github.com/fwojciec/zerosource"
)

// StdinLocation is the location that reads the document from Stdin.
const StdinLocation = "-"

// Ensure Source implements zerosource.Source at compile time.
var _ zerosource.Source = (*Source)(nil)

// Source reads markdown documents from files or standard input.
type Source struct {
	// Stdin is read when the location is "-". Defaults to os.Stdin.
	Stdin io.Reader

	// StripFrontMatter removes YAML/TOML front matter from the content and
	// exposes it as document metadata.
	StripFrontMatter bool
}

// NewSource creates a new Source reading "-" from os.Stdin.
func NewSource() *Source {
	return &Source{Stdin: os.Stdin}
}

// Load reads the document at the given path.
func (s *Source) Load(ctx context.Context, location string) (*zerosource.Document, error) {
	if location == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "document location required")
	}

	data, err := s.read(location)
	if err != nil {
		return nil, err
	}

	doc := &zerosource.Document{
		Location: location,
		Content:  string(data),
	}

	if s.StripFrontMatter {
		meta, body, err := ParseFrontMatter(data)
		if err != nil {
			return nil, zerosource.Errorf(zerosource.EINVALID, "invalid front matter in %s: %v", location, err)
		}
		doc.Content = string(body)
		if len(meta) > 0 {
			doc.Metadata = meta
			if title, ok := meta["title"].(string); ok {
				doc.Title = title
			}
		}
	}

	return doc, nil
}

func (s *Source) read(location string) ([]byte, error) {
	if location == StdinLocation {
		stdin := s.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	info, err := os.Stat(location)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, zerosource.Errorf(zerosource.ENOTFOUND, "file %q not found", location)
	} else if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, zerosource.Errorf(zerosource.EINVALID, "%q is a directory", location)
	}

	return os.ReadFile(location)
}

// ParseFrontMatter splits source into its front matter and markdown body.
// Documents without front matter are returned unchanged with nil metadata.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}

package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const withFrontMatter = `---
title: Front Title
version: 2
---
# Heading Title

## Description
Does things.
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("reads file content verbatim", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "README.md", withFrontMatter)

		doc, err := fs.NewSource().Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, path, doc.Location)
		assert.Equal(t, withFrontMatter, doc.Content)
		assert.Empty(t, doc.Title)
		assert.Nil(t, doc.Metadata)
	})

	t.Run("strips front matter when enabled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "README.md", withFrontMatter)
		src := &fs.Source{StripFrontMatter: true}

		doc, err := src.Load(context.Background(), path)

		require.NoError(t, err)
		assert.Contains(t, doc.Content, "# Heading Title")
		assert.NotContains(t, doc.Content, "version: 2")
		assert.Equal(t, "Front Title", doc.Title)
		assert.Equal(t, "Front Title", doc.Metadata["title"])
		assert.Contains(t, doc.Metadata, "version")
	})

	t.Run("leaves documents without front matter unchanged", func(t *testing.T) {
		t.Parallel()

		content := "# Plain\n\n## Description\nx\n"
		path := writeFile(t, "README.md", content)
		src := &fs.Source{StripFrontMatter: true}

		doc, err := src.Load(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, content, doc.Content)
		assert.Empty(t, doc.Title)
	})

	t.Run("reads stdin for dash location", func(t *testing.T) {
		t.Parallel()

		src := &fs.Source{Stdin: strings.NewReader("## Description\nfrom stdin")}

		doc, err := src.Load(context.Background(), fs.StdinLocation)

		require.NoError(t, err)
		assert.Equal(t, "-", doc.Location)
		assert.Equal(t, "## Description\nfrom stdin", doc.Content)
	})

	t.Run("returns ENOTFOUND for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewSource().Load(context.Background(), filepath.Join(t.TempDir(), "missing.md"))

		require.Error(t, err)
		assert.Equal(t, zerosource.ENOTFOUND, zerosource.ErrorCode(err))
	})

	t.Run("returns EINVALID for directory", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewSource().Load(context.Background(), t.TempDir())

		require.Error(t, err)
		assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err))
	})

	t.Run("returns EINVALID for empty location", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewSource().Load(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err))
	})
}

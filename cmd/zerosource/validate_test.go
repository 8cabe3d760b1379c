package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/bootstrap"
	main "github.com/fwojciec/zerosource/cmd/zerosource"
	"github.com/fwojciec/zerosource/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticSource returns a source that always loads content.
func staticSource(content string) *mock.Source {
	return &mock.Source{
		LoadFn: func(ctx context.Context, location string) (*zerosource.Document, error) {
			return &zerosource.Document{Location: location, Content: content}, nil
		},
	}
}

func staticAnalyzer(analysis *zerosource.Analysis, err error) *mock.Analyzer {
	return &mock.Analyzer{
		AnalyzeFn: func(ctx context.Context, document string, opts zerosource.AnalyzeOptions) (*zerosource.Analysis, error) {
			return analysis, err
		},
	}
}

func TestValidateCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deep prints analysis", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Source: staticSource(validReadme),
			Bootstrapper: &bootstrap.Bootstrapper{
				Analyzer: staticAnalyzer(&zerosource.Analysis{Valid: true, Details: "Consistent and specific."}, nil),
			},
		}

		cmd := &main.ValidateCmd{Location: "README.md", Deep: true, Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Document structure is valid.")
		assert.Contains(t, stdout.String(), "Consistent and specific.")
	})

	t.Run("deep fails when analysis finds problems", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Source: staticSource(validReadme),
			Bootstrapper: &bootstrap.Bootstrapper{
				Analyzer: staticAnalyzer(&zerosource.Analysis{Valid: false, Details: "Vague.", Issues: []string{"No database named"}}, nil),
			},
		}

		cmd := &main.ValidateCmd{Location: "README.md", Deep: true, Format: "text"}
		err := cmd.Run(deps)

		require.ErrorIs(t, err, main.ErrReported)
		assert.Contains(t, stdout.String(), "No database named")
	})

	t.Run("analyzer failure keeps structural verdict", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: stderr,
			Source: staticSource(validReadme),
			Bootstrapper: &bootstrap.Bootstrapper{
				Analyzer: staticAnalyzer(nil, zerosource.Errorf(zerosource.EUNAVAILABLE, "quota exceeded")),
			},
		}

		cmd := &main.ValidateCmd{Location: "README.md", Deep: true, Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Document structure is valid.")
		assert.Contains(t, stderr.String(), "Analysis unavailable: quota exceeded")
	})

	t.Run("json includes analysis error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Source: staticSource(validReadme),
			Bootstrapper: &bootstrap.Bootstrapper{
				Analyzer: staticAnalyzer(nil, errors.New("connection reset")),
			},
		}

		cmd := &main.ValidateCmd{Location: "README.md", Deep: true, Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"title": "Inventory Service",
			"valid": true,
			"missingSections": [],
			"analysisError": "connection reset"
		}`, stdout.String())
	})

	t.Run("load error is reported", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: &mock.Source{
				LoadFn: func(ctx context.Context, location string) (*zerosource.Document, error) {
					return nil, zerosource.Errorf(zerosource.ENOTFOUND, "document not found: %s", location)
				},
			},
			Bootstrapper: &bootstrap.Bootstrapper{},
		}

		cmd := &main.ValidateCmd{Location: "missing.md", Format: "text"}
		err := cmd.Run(deps)

		require.ErrorIs(t, err, main.ErrReported)
		assert.Equal(t, zerosource.ENOTFOUND, zerosource.ErrorCode(err))
		assert.Equal(t, "error: document not found: missing.md\n", stderr.String())
	})
}

func TestAnalyzeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints title and analysis", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Source: staticSource(partialReadme),
			Bootstrapper: &bootstrap.Bootstrapper{
				Analyzer: staticAnalyzer(&zerosource.Analysis{Valid: false, Details: "Too thin.", Issues: []string{"No functionality"}}, nil),
			},
		}

		cmd := &main.AnalyzeCmd{Location: "README.md", Format: "text"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Half Done\n")
		assert.Contains(t, stdout.String(), "Too thin.")
		assert.Contains(t, stdout.String(), "No functionality")
	})

	t.Run("analysis failure is an error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: staticSource(validReadme),
			Bootstrapper: &bootstrap.Bootstrapper{
				Analyzer: staticAnalyzer(nil, zerosource.Errorf(zerosource.EUNAVAILABLE, "model unavailable")),
			},
		}

		cmd := &main.AnalyzeCmd{Location: "README.md", Format: "text"}
		err := cmd.Run(deps)

		require.ErrorIs(t, err, main.ErrReported)
		assert.Contains(t, stderr.String(), "error: model unavailable")
	})
}

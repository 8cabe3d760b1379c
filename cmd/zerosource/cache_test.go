package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	main "github.com/fwojciec/zerosource/cmd/zerosource"
	"github.com/fwojciec/zerosource/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheClearCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints removed count", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Analyses: &mock.AnalysisService{
				DeleteAnalysesFn: func(ctx context.Context) (int, error) {
					return 3, nil
				},
			},
		}

		err := (&main.CacheClearCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Removed 3 cached analyses.\n", stdout.String())
	})

	t.Run("reports delete failure", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    testContext(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Analyses: &mock.AnalysisService{
				DeleteAnalysesFn: func(ctx context.Context) (int, error) {
					return 0, errors.New("database is locked")
				},
			},
		}

		err := (&main.CacheClearCmd{}).Run(deps)

		require.ErrorIs(t, err, main.ErrReported)
		assert.Equal(t, "error: database is locked\n", stderr.String())
	})
}

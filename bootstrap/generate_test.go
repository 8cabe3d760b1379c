package bootstrap_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/bootstrap"
	"github.com/fwojciec/zerosource/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func echoGenerator() *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
			return "// " + language + " " + component.Name, nil
		},
	}
}

func components(names ...string) []zerosource.ComponentSpec {
	specs := make([]zerosource.ComponentSpec, len(names))
	for i, name := range names {
		specs[i] = zerosource.ComponentSpec{Name: name}
	}
	return specs
}

func TestBootstrapper_Generate(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{Generator: echoGenerator(), Concurrency: 4}

		results, err := b.Generate(testContext(), validDocument(), components("store", "api", "cli", "web", "jobs"), "go", zerosource.GenerateOptions{}, nil)

		require.NoError(t, err)
		require.Len(t, results, 5)
		for i, name := range []string{"store", "api", "cli", "web", "jobs"} {
			assert.Equal(t, name, results[i].Component.Name)
			assert.Equal(t, "// go "+name, results[i].Code)
			assert.NoError(t, results[i].Err)
		}
	})

	t.Run("refuses structurally invalid document", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{
			Generator: &mock.Generator{}, // nil func panics if called
		}
		doc := &zerosource.Document{Location: "-", Content: "# X\n## Description\nd"}

		_, err := b.Generate(testContext(), doc, components("store"), "go", zerosource.GenerateOptions{}, nil)

		require.Error(t, err)
		assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err))
		assert.Equal(t, "document is missing required sections: Functionality, Technical Implementation", zerosource.ErrorMessage(err))
	})

	t.Run("validates arguments", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name       string
			components []zerosource.ComponentSpec
			language   string
			message    string
		}{
			{"no components", nil, "go", "at least one component required"},
			{"blank component", components(" "), "go", "component name required"},
			{"duplicate component", components("api", "api"), "go", "duplicate component: api"},
			{"blank language", components("api"), "", "language required"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				b := &bootstrap.Bootstrapper{Generator: echoGenerator()}

				_, err := b.Generate(testContext(), validDocument(), tt.components, tt.language, zerosource.GenerateOptions{}, nil)

				require.Error(t, err)
				assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err))
				assert.Contains(t, zerosource.ErrorMessage(err), tt.message)
			})
		}
	})

	t.Run("returns EUNAVAILABLE without generator", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{}

		_, err := b.Generate(testContext(), validDocument(), components("api"), "go", zerosource.GenerateOptions{}, nil)

		assert.Equal(t, zerosource.EUNAVAILABLE, zerosource.ErrorCode(err))
	})

	t.Run("enforces token budget", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{
			Generator: &mock.Generator{},
			TokenCounter: &mock.TokenCounter{
				CountTokensFn: func(ctx context.Context, text string) (int, error) {
					return 2001, nil
				},
			},
			MaxTokens: 2000,
		}

		_, err := b.Generate(testContext(), validDocument(), components("api"), "go", zerosource.GenerateOptions{}, nil)

		assert.Equal(t, zerosource.EINVALID, zerosource.ErrorCode(err))
	})

	t.Run("failed component does not stop others", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
					if component.Name == "api" {
						return "", errors.New("model overloaded")
					}
					return "ok", nil
				},
			},
			RetryDelays: noDelays,
		}

		results, err := b.Generate(testContext(), validDocument(), components("store", "api", "cli"), "go", zerosource.GenerateOptions{}, nil)

		require.NoError(t, err)
		assert.NoError(t, results[0].Err)
		assert.EqualError(t, results[1].Err, "model overloaded")
		assert.NoError(t, results[2].Err)
		assert.Equal(t, "ok", results[2].Code)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32
		b := &bootstrap.Bootstrapper{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
					if attempts.Add(1) < 3 {
						return "", errors.New("transient")
					}
					return "ok", nil
				},
			},
			RetryDelays: noDelays,
		}

		results, err := b.Generate(testContext(), validDocument(), components("store"), "go", zerosource.GenerateOptions{}, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", results[0].Code)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		release := make(chan struct{})
		var once sync.Once
		b := &bootstrap.Bootstrapper{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
					n := current.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					if n == 2 {
						once.Do(func() { close(release) })
					}
					<-release
					current.Add(-1)
					return "ok", nil
				},
			},
			Concurrency: 2,
		}

		_, err := b.Generate(testContext(), validDocument(), components("a", "b", "c", "d", "e"), "go", zerosource.GenerateOptions{}, nil)

		require.NoError(t, err)
		assert.Equal(t, int32(2), peak.Load())
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{
			Generator: &mock.Generator{
				GenerateFn: func(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (string, error) {
					if component.Name == "bad" {
						return "", zerosource.Errorf(zerosource.EINVALID, "rejected")
					}
					return "ok", nil
				},
			},
		}

		var events []bootstrap.ProgressEvent
		_, err := b.Generate(testContext(), validDocument(), components("good", "bad"), "go", zerosource.GenerateOptions{}, func(e bootstrap.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, bootstrap.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)

		var completed, failed int
		for _, e := range events[1:] {
			switch e.Type {
			case bootstrap.ProgressCompleted:
				completed++
				assert.Equal(t, "good", e.Component)
			case bootstrap.ProgressFailed:
				failed++
				assert.Equal(t, "bad", e.Component)
				assert.Error(t, e.Error)
			}
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, failed)
		assert.Equal(t, 2, events[2].Completed)
	})

	t.Run("waits on rate limiter", func(t *testing.T) {
		t.Parallel()

		b := &bootstrap.Bootstrapper{
			Generator: echoGenerator(),
			Limiter:   rate.NewLimiter(rate.Inf, 1),
		}

		results, err := b.Generate(testContext(), validDocument(), components("a", "b"), "go", zerosource.GenerateOptions{}, nil)

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(testContext())
		cancel()
		b := &bootstrap.Bootstrapper{
			Generator: echoGenerator(),
			Limiter:   rate.NewLimiter(1, 1),
		}

		_, err := b.Generate(ctx, validDocument(), components("a"), "go", zerosource.GenerateOptions{}, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

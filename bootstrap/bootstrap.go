// Package bootstrap coordinates structural validation with the external
// analyzer and generator collaborators.
package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/zerosource"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is the number of components generated in parallel when
// Bootstrapper.Concurrency is not set.
const DefaultConcurrency = 3

// Bootstrapper runs checks and component generation for a document.
// Every collaborator is optional; a missing one surfaces as EUNAVAILABLE
// only for the operation that needs it.
type Bootstrapper struct {
	Analyzer     zerosource.Analyzer
	Generator    zerosource.Generator
	Analyses     zerosource.AnalysisService
	TokenCounter zerosource.TokenCounter

	// Limiter paces calls to the model. Nil means unlimited.
	Limiter *rate.Limiter

	// Concurrency caps parallel generations. Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays are the backoff delays between attempts. Nil disables retries.
	RetryDelays []time.Duration

	// MaxTokens rejects documents larger than this many tokens. Zero disables the check.
	MaxTokens int

	// Model is the model name used as the analysis cache key when the call
	// does not specify one.
	Model string

	Logger *slog.Logger
}

// wait blocks on the limiter, if any.
func (b *Bootstrapper) wait(ctx context.Context) error {
	if b.Limiter == nil {
		return nil
	}
	return b.Limiter.Wait(ctx)
}

func (b *Bootstrapper) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *Bootstrapper) model(override string) string {
	if override != "" {
		return override
	}
	return b.Model
}

// checkTokens enforces MaxTokens when a counter is configured.
func (b *Bootstrapper) checkTokens(ctx context.Context, content string) error {
	if b.MaxTokens <= 0 || b.TokenCounter == nil {
		return nil
	}
	n, err := b.TokenCounter.CountTokens(ctx, content)
	if err != nil {
		return err
	}
	if n > b.MaxTokens {
		return zerosource.Errorf(zerosource.EINVALID, "document too large: %d tokens exceeds limit of %d", n, b.MaxTokens)
	}
	return nil
}

package bootstrap

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/zerosource"
	"golang.org/x/sync/errgroup"
)

// ProgressType identifies the kind of progress event.
type ProgressType int

const (
	// ProgressStarted is sent once before any component is generated.
	ProgressStarted ProgressType = iota
	// ProgressCompleted is sent when a component was generated.
	ProgressCompleted
	// ProgressFailed is sent when a component failed.
	ProgressFailed
)

// ProgressEvent reports generation progress.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Component string
	Error     error
}

// ProgressFunc receives progress events. Events are delivered from a single
// goroutine.
type ProgressFunc func(ProgressEvent)

// Result is the generated source of one component.
type Result struct {
	Component zerosource.ComponentSpec
	Code      string
	Err       error
}

// Generate produces source for each component of doc in language.
// The document must be structurally valid. Components are generated
// concurrently; results are returned in input order and a failed component
// does not stop the others.
func (b *Bootstrapper) Generate(ctx context.Context, doc *zerosource.Document, components []zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions, progress ProgressFunc) ([]Result, error) {
	if doc == nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "document required")
	}
	if err := validateComponents(components); err != nil {
		return nil, err
	}
	if strings.TrimSpace(language) == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "language required")
	}
	if result := zerosource.ValidateStructure(doc.Content); !result.Valid {
		return nil, zerosource.Errorf(zerosource.EINVALID, "document is missing required sections: %s",
			strings.Join(result.MissingSections, ", "))
	}
	if b.Generator == nil {
		return nil, zerosource.Errorf(zerosource.EUNAVAILABLE, "generation unavailable: no generator configured")
	}
	if err := b.checkTokens(ctx, doc.Content); err != nil {
		return nil, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(components)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		position int
		result   Result
	}
	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, component := range components {
			g.Go(func() error {
				code, err := Retry(gctx, "generate "+component.Name, func(ctx context.Context) (string, error) {
					if err := b.wait(ctx); err != nil {
						return "", err
					}
					return b.Generator.Generate(ctx, doc.Content, component, language, opts)
				}, b.logger(), b.RetryDelays)
				resultCh <- indexed{position: i, result: Result{Component: component, Code: code, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]Result, total)
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r.result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Component: r.result.Component.Name,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateComponents(components []zerosource.ComponentSpec) error {
	if len(components) == 0 {
		return zerosource.Errorf(zerosource.EINVALID, "at least one component required")
	}
	seen := make(map[string]bool, len(components))
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return zerosource.Errorf(zerosource.EINVALID, "duplicate component: %s", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

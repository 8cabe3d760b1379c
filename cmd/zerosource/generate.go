package main

import (
	"fmt"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/bootstrap"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	components := make([]zerosource.ComponentSpec, 0, len(c.Components))
	for _, s := range c.Components {
		spec, err := zerosource.ParseComponentSpec(s)
		if err != nil {
			return report(deps.Stderr, err)
		}
		components = append(components, spec)
	}

	doc, err := deps.Source.Load(deps.Ctx, c.Location)
	if err != nil {
		return report(deps.Stderr, err)
	}

	progress := func(e bootstrap.ProgressEvent) {
		switch e.Type {
		case bootstrap.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Generating %d components for %s...\n", e.Total, zerosource.ProjectTitle(doc))
		case bootstrap.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s\n", e.Completed, e.Total, e.Component)
		case bootstrap.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s failed: %s\n", e.Completed, e.Total, e.Component, errorMessage(e.Error))
		}
	}

	results, err := deps.Bootstrapper.Generate(deps.Ctx, doc, components, c.Language, zerosource.GenerateOptions{}, progress)
	if err != nil {
		return report(deps.Stderr, err)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		fmt.Fprintf(deps.Stdout, "==> %s <==\n%s\n\n", r.Component.Name, r.Code)
	}

	if failed > 0 {
		fmt.Fprintf(deps.Stderr, "error: %d of %d components failed\n", failed, len(results))
		return fmt.Errorf("%w: %d components failed", ErrReported, failed)
	}
	return nil
}

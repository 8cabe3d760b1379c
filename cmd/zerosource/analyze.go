package main

import (
	"fmt"

	"github.com/fwojciec/zerosource/bootstrap"
	"github.com/fwojciec/zerosource/gemini"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	doc, err := deps.Source.Load(deps.Ctx, c.Location)
	if err != nil {
		return report(deps.Stderr, err)
	}

	rep, err := deps.Bootstrapper.Check(deps.Ctx, doc, bootstrap.CheckOptions{
		Deep:    true,
		NoCache: c.NoCache,
	})
	if err != nil {
		return report(deps.Stderr, err)
	}
	if rep.AnalysisError != nil {
		return report(deps.Stderr, rep.AnalysisError)
	}

	if c.Format == "json" {
		return writeReportJSON(deps.Stdout, rep)
	}

	fmt.Fprintf(deps.Stdout, "%s\n\n", rep.Title)
	fmt.Fprint(deps.Stdout, gemini.FormatAnalysis(rep.Analysis))
	if rep.Cached {
		fmt.Fprintln(deps.Stdout, "(cached)")
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/zerosource"
	"github.com/fwojciec/zerosource/bootstrap"
	"github.com/fwojciec/zerosource/gemini"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	doc, err := deps.Source.Load(deps.Ctx, c.Location)
	if err != nil {
		return report(deps.Stderr, err)
	}

	rep, err := deps.Bootstrapper.Check(deps.Ctx, doc, bootstrap.CheckOptions{
		Deep:    c.Deep,
		NoCache: c.NoCache,
	})
	if err != nil {
		return report(deps.Stderr, err)
	}

	if c.Format == "json" {
		if err := writeReportJSON(deps.Stdout, rep); err != nil {
			return err
		}
	} else {
		writeReportText(deps.Stdout, rep)
		if rep.AnalysisError != nil {
			fmt.Fprintf(deps.Stderr, "Analysis unavailable: %s\n", errorMessage(rep.AnalysisError))
		}
	}

	if !rep.OK() {
		return fmt.Errorf("%w: document is not valid", ErrReported)
	}
	return nil
}

func writeReportText(w io.Writer, rep *bootstrap.Report) {
	if rep.Structure.Valid {
		fmt.Fprintln(w, "Document structure is valid.")
	} else {
		fmt.Fprintln(w, "Document structure is invalid. Missing sections:")
		for _, name := range rep.Structure.MissingSections {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	if rep.Analysis != nil {
		fmt.Fprintln(w)
		fmt.Fprint(w, gemini.FormatAnalysis(rep.Analysis))
		if rep.Cached {
			fmt.Fprintln(w, "(cached)")
		}
	}
}

// reportJSON is the JSON shape of a check report.
type reportJSON struct {
	Title           string               `json:"title"`
	Valid           bool                 `json:"valid"`
	MissingSections []string             `json:"missingSections"`
	Analysis        *zerosource.Analysis `json:"analysis,omitempty"`
	AnalysisError   string               `json:"analysisError,omitempty"`
	Cached          bool                 `json:"cached,omitempty"`
}

func writeReportJSON(w io.Writer, rep *bootstrap.Report) error {
	out := reportJSON{
		Title:           rep.Title,
		Valid:           rep.Structure.Valid,
		MissingSections: rep.Structure.MissingSections,
		Analysis:        rep.Analysis,
		Cached:          rep.Cached,
	}
	if rep.AnalysisError != nil {
		out.AnalysisError = errorMessage(rep.AnalysisError)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

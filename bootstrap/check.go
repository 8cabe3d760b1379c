package bootstrap

import (
	"context"

	"github.com/fwojciec/zerosource"
)

// CheckOptions configures Check.
type CheckOptions struct {
	// Deep runs the analyzer in addition to structural validation.
	Deep bool

	// NoCache bypasses the analysis cache for both lookup and storage.
	NoCache bool

	// Model overrides the analyzer's model.
	Model string
}

// Report is the outcome of Check.
type Report struct {
	Title     string                      `json:"title"`
	Structure zerosource.ValidationResult `json:"structure"`

	// Analysis is set when a deep check succeeded.
	Analysis *zerosource.Analysis `json:"analysis,omitempty"`

	// AnalysisError is set when a deep check was requested but failed.
	AnalysisError error `json:"-"`

	// Cached reports whether Analysis came from the cache.
	Cached bool `json:"cached,omitempty"`
}

// OK reports whether the document is structurally valid and, when analyzed,
// judged sound by the analyzer. A failed analysis does not affect the result.
func (r *Report) OK() bool {
	if !r.Structure.Valid {
		return false
	}
	return r.Analysis == nil || r.Analysis.Valid
}

// Check validates doc. Structural validation always runs. Analyzer failures
// are recorded on the report and never returned, so the structural result is
// always available. Only a nil document or a canceled context returns an error.
func (b *Bootstrapper) Check(ctx context.Context, doc *zerosource.Document, opts CheckOptions) (*Report, error) {
	if doc == nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "document required")
	}

	report := &Report{
		Title:     zerosource.ProjectTitle(doc),
		Structure: zerosource.ValidateStructure(doc.Content),
	}
	if !opts.Deep {
		return report, nil
	}

	analysis, cached, err := b.analyze(ctx, doc.Content, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		report.AnalysisError = err
		return report, nil
	}
	report.Analysis = analysis
	report.Cached = cached
	return report, nil
}

func (b *Bootstrapper) analyze(ctx context.Context, content string, opts CheckOptions) (*zerosource.Analysis, bool, error) {
	if b.Analyzer == nil {
		return nil, false, zerosource.Errorf(zerosource.EUNAVAILABLE, "deep analysis unavailable: no analyzer configured")
	}

	model := b.model(opts.Model)
	useCache := b.Analyses != nil && !opts.NoCache && model != ""

	if useCache {
		rec, err := b.Analyses.FindAnalysis(ctx, content, model)
		if err == nil {
			return &rec.Analysis, true, nil
		}
		if zerosource.ErrorCode(err) != zerosource.ENOTFOUND {
			b.logger().Warn("analysis cache lookup failed", "err", err)
		}
	}

	if err := b.checkTokens(ctx, content); err != nil {
		return nil, false, err
	}

	analysis, err := Retry(ctx, "analyze", func(ctx context.Context) (*zerosource.Analysis, error) {
		if err := b.wait(ctx); err != nil {
			return nil, err
		}
		return b.Analyzer.Analyze(ctx, content, zerosource.AnalyzeOptions{Model: model})
	}, b.logger(), b.RetryDelays)
	if err != nil {
		return nil, false, err
	}

	if useCache {
		if _, err := b.Analyses.CreateAnalysis(ctx, content, model, analysis); err != nil {
			b.logger().Warn("analysis cache store failed", "err", err)
		}
	}

	return analysis, false, nil
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/zerosource"
)

// Ensure LoggingAnalyzer implements zerosource.Analyzer.
var _ zerosource.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with debug logging.
type LoggingAnalyzer struct {
	next   zerosource.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next zerosource.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the outcome.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, document string, opts zerosource.AnalyzeOptions) (analysis *zerosource.Analysis, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"model", opts.Model,
			"bytes", len(document),
		}
		if analysis != nil {
			attrs = append(attrs, "valid", analysis.Valid, "issues", len(analysis.Issues))
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		a.logger.Info("analyze", attrs...)
	}(time.Now())
	return a.next.Analyze(ctx, document, opts)
}

// Ensure LoggingGenerator implements zerosource.Generator.
var _ zerosource.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with debug logging.
type LoggingGenerator struct {
	next   zerosource.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next zerosource.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the outcome.
func (g *LoggingGenerator) Generate(ctx context.Context, document string, component zerosource.ComponentSpec, language string, opts zerosource.GenerateOptions) (code string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"component", component.Name,
			"language", language,
			"model", opts.Model,
			"bytes", len(code),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, document, component, language, opts)
}

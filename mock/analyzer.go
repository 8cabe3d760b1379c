package mock

import (
	"context"

	"github.com/fwojciec/zerosource"
)

var _ zerosource.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of zerosource.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, document string, opts zerosource.AnalyzeOptions) (*zerosource.Analysis, error)
}

func (a *Analyzer) Analyze(ctx context.Context, document string, opts zerosource.AnalyzeOptions) (*zerosource.Analysis, error) {
	return a.AnalyzeFn(ctx, document, opts)
}

var _ zerosource.AnalysisService = (*AnalysisService)(nil)

// AnalysisService is a mock implementation of zerosource.AnalysisService.
type AnalysisService struct {
	FindAnalysisFn   func(ctx context.Context, content, model string) (*zerosource.AnalysisRecord, error)
	CreateAnalysisFn func(ctx context.Context, content, model string, analysis *zerosource.Analysis) (*zerosource.AnalysisRecord, error)
	DeleteAnalysesFn func(ctx context.Context) (int, error)
}

func (s *AnalysisService) FindAnalysis(ctx context.Context, content, model string) (*zerosource.AnalysisRecord, error) {
	return s.FindAnalysisFn(ctx, content, model)
}

func (s *AnalysisService) CreateAnalysis(ctx context.Context, content, model string, analysis *zerosource.Analysis) (*zerosource.AnalysisRecord, error) {
	return s.CreateAnalysisFn(ctx, content, model, analysis)
}

func (s *AnalysisService) DeleteAnalyses(ctx context.Context) (int, error) {
	return s.DeleteAnalysesFn(ctx)
}

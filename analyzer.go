package zerosource

import (
	"context"
	"time"
)

// Analysis is the outcome of a semantic review of a document.
type Analysis struct {
	Valid   bool     `json:"valid"`
	Details string   `json:"details"`
	Issues  []string `json:"issues"`
}

// AnalyzeOptions configures a semantic review.
type AnalyzeOptions struct {
	// Model overrides the implementation's default model when set.
	Model string `json:"model,omitempty"`
}

// Analyzer performs deep validation of a document: consistency,
// contradictions, and content quality. It is an external collaborator and is
// never required for structural validation.
type Analyzer interface {
	// Analyze reviews the document.
	// Returns EINVALID if the document is empty.
	Analyze(ctx context.Context, document string, opts AnalyzeOptions) (*Analysis, error)
}

// AnalysisRecord is a cached analysis of a specific document content.
type AnalysisRecord struct {
	ID          string    `json:"id"`
	ContentHash string    `json:"contentHash"`
	Model       string    `json:"model"`
	Analysis    Analysis  `json:"analysis"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AnalysisService stores analyses so identical documents are not re-analyzed.
type AnalysisService interface {
	// FindAnalysis returns the newest analysis of content made with model.
	// Returns ENOTFOUND if there is none.
	FindAnalysis(ctx context.Context, content, model string) (*AnalysisRecord, error)

	// CreateAnalysis stores the analysis of content made with model.
	CreateAnalysis(ctx context.Context, content, model string, analysis *Analysis) (*AnalysisRecord, error)

	// DeleteAnalyses removes all stored analyses and returns how many were removed.
	DeleteAnalyses(ctx context.Context) (int, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/zerosource"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ zerosource.AnalysisService = (*AnalysisService)(nil)

// AnalysisService implements zerosource.AnalysisService using SQLite.
// Records are keyed by the xxHash of the document content and the model name.
type AnalysisService struct {
	db *DB
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(db *DB) *AnalysisService {
	return &AnalysisService{db: db}
}

// FindAnalysis returns the newest analysis of content made with model.
func (s *AnalysisService) FindAnalysis(ctx context.Context, content, model string) (*zerosource.AnalysisRecord, error) {
	var rec zerosource.AnalysisRecord
	var valid int
	var issues, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, model, valid, details, issues, created_at
		FROM analyses
		WHERE content_hash = ? AND model = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, hashContent(content), model).Scan(&rec.ID, &rec.ContentHash, &rec.Model, &valid,
		&rec.Analysis.Details, &issues, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, zerosource.Errorf(zerosource.ENOTFOUND, "analysis not found")
	}
	if err != nil {
		return nil, err
	}

	rec.Analysis.Valid = valid != 0
	if err := json.Unmarshal([]byte(issues), &rec.Analysis.Issues); err != nil {
		return nil, fmt.Errorf("failed to decode issues: %w", err)
	}
	if rec.Analysis.Issues == nil {
		rec.Analysis.Issues = []string{}
	}
	if rec.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// CreateAnalysis stores the analysis of content made with model.
func (s *AnalysisService) CreateAnalysis(ctx context.Context, content, model string, analysis *zerosource.Analysis) (*zerosource.AnalysisRecord, error) {
	if analysis == nil {
		return nil, zerosource.Errorf(zerosource.EINVALID, "analysis required")
	}
	if model == "" {
		return nil, zerosource.Errorf(zerosource.EINVALID, "model required")
	}

	issues := analysis.Issues
	if issues == nil {
		issues = []string{}
	}
	encoded, err := json.Marshal(issues)
	if err != nil {
		return nil, fmt.Errorf("failed to encode issues: %w", err)
	}

	rec := &zerosource.AnalysisRecord{
		ID:          uuid.New().String(),
		ContentHash: hashContent(content),
		Model:       model,
		Analysis: zerosource.Analysis{
			Valid:   analysis.Valid,
			Details: analysis.Details,
			Issues:  append([]string{}, issues...),
		},
		CreatedAt: time.Now().UTC(),
	}

	var valid int
	if rec.Analysis.Valid {
		valid = 1
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, content_hash, model, valid, details, issues, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ContentHash, rec.Model, valid, rec.Analysis.Details, string(encoded),
		rec.CreatedAt.Format(timeFormat)); err != nil {
		return nil, err
	}

	return rec, nil
}

// DeleteAnalyses removes all stored analyses.
func (s *AnalysisService) DeleteAnalyses(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM analyses")
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

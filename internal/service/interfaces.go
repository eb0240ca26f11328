package service

import (
	"context"
	"io"

	"github.com/alexanderramin/throughput/internal/domain"
)

// ImportResult holds the outcome of a committed import.
type ImportResult struct {
	RunID     string
	Source    string
	Summary   domain.Summary
	Conflicts []domain.HeaderConflict
}

// PreviewResult is what an import would create. Nothing is written.
type PreviewResult struct {
	Source  string
	Batch   *domain.Batch
	Summary domain.Summary
}

type ImportService interface {
	// Import validates r, builds the project tree and persists it in one
	// transaction. source names the input in the audit record.
	Import(ctx context.Context, r io.Reader, source string) (*ImportResult, error)
	Preview(ctx context.Context, r io.Reader, source string) (*PreviewResult, error)
}

// FeatureDetail is a persisted feature with its stories.
type FeatureDetail struct {
	domain.FeatureSummary
	Stories []domain.StorySummary
}

// ProjectDetail is a persisted project with its features and stories.
type ProjectDetail struct {
	Project  domain.ProjectSummary
	Features []FeatureDetail
}

type ProjectService interface {
	List(ctx context.Context) ([]domain.ProjectSummary, error)
	Inspect(ctx context.Context, id int64) (*ProjectDetail, error)
	ListRuns(ctx context.Context, limit uint64) ([]domain.ImportRun, error)
}

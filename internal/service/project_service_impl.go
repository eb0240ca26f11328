package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/repository"
)

type projectService struct {
	store *repository.Store
}

// NewProjectService serves the read side over q.
func NewProjectService(q db.DBTX) ProjectService {
	return &projectService{store: repository.NewSQLiteStore(q)}
}

func (s *projectService) List(ctx context.Context) ([]domain.ProjectSummary, error) {
	return s.store.Projects.List(ctx)
}

func (s *projectService) Inspect(ctx context.Context, id int64) (*ProjectDetail, error) {
	p, err := s.store.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	features, err := s.store.Features.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: *p, Features: make([]FeatureDetail, 0, len(features))}
	for _, f := range features {
		stories, err := s.store.Stories.ListByFeature(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f.Name, err)
		}
		detail.Features = append(detail.Features, FeatureDetail{FeatureSummary: f, Stories: stories})
	}
	return detail, nil
}

func (s *projectService) ListRuns(ctx context.Context, limit uint64) ([]domain.ImportRun, error) {
	return s.store.ImportRuns.List(ctx, limit)
}

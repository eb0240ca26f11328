package repository

import (
	"context"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
)

// ProjectRepo inserts imported projects and serves the project listings.
type ProjectRepo interface {
	Insert(ctx context.Context, p *domain.Project) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.ProjectSummary, error)
	List(ctx context.Context) ([]domain.ProjectSummary, error)
}

type FeatureRepo interface {
	Insert(ctx context.Context, projectID int64, f *domain.Feature, totals domain.FeatureTotals) (int64, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.FeatureSummary, error)
}

type StoryRepo interface {
	Insert(ctx context.Context, featureID int64, s *domain.Story) (int64, error)
	ListByFeature(ctx context.Context, featureID int64) ([]domain.StorySummary, error)
}

type ProductivityRepo interface {
	Insert(ctx context.Context, featureID, storyID int64, p domain.Productivity) error
}

type ImportRunRepo interface {
	Insert(ctx context.Context, run *domain.ImportRun) error
	List(ctx context.Context, limit uint64) ([]domain.ImportRun, error)
}

// Store bundles the repositories bound to one DBTX. Built inside
// UnitOfWork.WithinTx, every repository joins that transaction.
type Store struct {
	Projects     ProjectRepo
	Features     FeatureRepo
	Stories      StoryRepo
	Productivity ProductivityRepo
	ImportRuns   ImportRunRepo
}

// NewSQLiteStore creates the SQLite repositories over q.
func NewSQLiteStore(q db.DBTX) *Store {
	return &Store{
		Projects:     NewSQLiteProjectRepo(q),
		Features:     NewSQLiteFeatureRepo(q),
		Stories:      NewSQLiteStoryRepo(q),
		Productivity: NewSQLiteProductivityRepo(q),
		ImportRuns:   NewSQLiteImportRunRepo(q),
	}
}

package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/importer"
)

type importService struct {
	writer   *Writer
	log      *zap.Logger
	observer UseCaseObserver
	now      func() time.Time
}

func NewImportService(uow db.UnitOfWork, log *zap.Logger, observers ...UseCaseObserver) ImportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &importService{
		writer:   NewWriter(uow),
		log:      log,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *importService) Import(ctx context.Context, r io.Reader, source string) (result *ImportResult, err error) {
	startedAt := s.now()
	runID := uuid.New().String()
	fields := map[string]any{
		"run_id": runID,
		"source": source,
	}
	defer func() {
		if err != nil {
			fields["error_kind"] = ErrorKind(err)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var batch *domain.Batch
	batch, err = importer.Parse(r)
	if err != nil {
		return nil, err
	}
	s.warnConflicts(runID, batch.Conflicts)
	fields["conflicts"] = len(batch.Conflicts)

	run := &domain.ImportRun{
		ID:        runID,
		Source:    source,
		Conflicts: len(batch.Conflicts),
		CreatedAt: startedAt,
	}
	var summary domain.Summary
	summary, err = s.writer.Write(ctx, batch, run)
	if err != nil {
		return nil, err
	}
	addSummaryFields(fields, summary)

	return &ImportResult{
		RunID:     runID,
		Source:    source,
		Summary:   summary,
		Conflicts: batch.Conflicts,
	}, nil
}

func (s *importService) Preview(ctx context.Context, r io.Reader, source string) (result *PreviewResult, err error) {
	startedAt := s.now()
	fields := map[string]any{"source": source}
	defer func() {
		if err != nil {
			fields["error_kind"] = ErrorKind(err)
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "preview",
			StartedAt: startedAt,
			Duration:  s.now().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var batch *domain.Batch
	batch, err = importer.Parse(r)
	if err != nil {
		return nil, err
	}
	summary := batch.Counts()
	fields["conflicts"] = len(batch.Conflicts)

	return &PreviewResult{Source: source, Batch: batch, Summary: summary}, nil
}

func (s *importService) warnConflicts(runID string, conflicts []domain.HeaderConflict) {
	for _, c := range conflicts {
		s.log.Warn("feature header differs from first row",
			zap.String("run_id", runID),
			zap.Int("line", c.Line),
			zap.String("project", c.Project),
			zap.String("feature", c.Feature),
			zap.String("field", c.Field),
			zap.String("kept", c.Kept),
			zap.String("ignored", c.Ignored),
		)
	}
}

func addSummaryFields(fields map[string]any, s domain.Summary) {
	fields["projects_created"] = s.ProjectsCreated
	fields["features_created"] = s.FeaturesCreated
	fields["stories_created"] = s.StoriesCreated
	fields["productivity_created"] = s.ProductivityRecordsCreated
}

package service

import (
	"context"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/repository"
)

// Writer persists a batch in a single transaction: every project, feature,
// story and productivity record is committed, or none is.
type Writer struct {
	uow db.UnitOfWork
}

func NewWriter(uow db.UnitOfWork) *Writer {
	return &Writer{uow: uow}
}

// Write walks the batch parent-first, threading the ids returned by each
// insert into its children. When run is non-nil its audit row is written
// last in the same transaction, carrying the final counters. Any failure is
// returned as *PersistenceError after rollback, with no partial counters.
func (w *Writer) Write(ctx context.Context, batch *domain.Batch, run *domain.ImportRun) (domain.Summary, error) {
	var summary domain.Summary
	err := w.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		store := repository.NewSQLiteStore(tx)
		summary = domain.Summary{}

		for _, p := range batch.Projects {
			projectID, err := store.Projects.Insert(ctx, p)
			if err != nil {
				return err
			}
			summary.ProjectsCreated++

			for _, f := range p.Features {
				if err := writeFeature(ctx, store, projectID, f, &summary); err != nil {
					return err
				}
			}
		}

		if run == nil {
			return nil
		}
		run.Summary = summary
		return store.ImportRuns.Insert(ctx, run)
	})
	if err != nil {
		return domain.Summary{}, &PersistenceError{Err: err}
	}
	return summary, nil
}

func writeFeature(ctx context.Context, store *repository.Store, projectID int64, f *domain.Feature, summary *domain.Summary) error {
	featureID, err := store.Features.Insert(ctx, projectID, f, f.Totals())
	if err != nil {
		return err
	}
	summary.FeaturesCreated++

	for i := range f.Stories {
		s := &f.Stories[i]
		storyID, err := store.Stories.Insert(ctx, featureID, s)
		if err != nil {
			return err
		}
		summary.StoriesCreated++

		p, ok := s.Productivity(f.ManDayHours)
		if !ok {
			continue
		}
		if err := store.Productivity.Insert(ctx, featureID, storyID, p); err != nil {
			return err
		}
		summary.ProductivityRecordsCreated++
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
)

// SQLiteImportRunRepo implements ImportRunRepo using a SQLite database.
type SQLiteImportRunRepo struct {
	sqliteRepo
}

func NewSQLiteImportRunRepo(q db.DBTX) *SQLiteImportRunRepo {
	return &SQLiteImportRunRepo{newSQLiteRepo(q)}
}

func (r *SQLiteImportRunRepo) Insert(ctx context.Context, run *domain.ImportRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	b := r.sq.Insert("import_runs").
		Columns("id", "source", "projects_created", "features_created", "stories_created",
			"productivity_created", "conflicts", "created_at").
		Values(run.ID, run.Source, run.Summary.ProjectsCreated, run.Summary.FeaturesCreated,
			run.Summary.StoriesCreated, run.Summary.ProductivityRecordsCreated, run.Conflicts,
			run.CreatedAt.UTC().Format(time.RFC3339))
	if _, err := r.insert(ctx, b); err != nil {
		return fmt.Errorf("inserting import run: %w", err)
	}
	return nil
}

// List returns the most recent runs first. A zero limit returns every run.
func (r *SQLiteImportRunRepo) List(ctx context.Context, limit uint64) ([]domain.ImportRun, error) {
	b := r.sq.Select("id", "source", "projects_created", "features_created", "stories_created",
		"productivity_created", "conflicts", "created_at").
		From("import_runs").
		OrderBy("created_at DESC", "rowid DESC")
	if limit > 0 {
		b = b.Limit(limit)
	}

	rows, err := r.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing import runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ImportRun
	for rows.Next() {
		var run domain.ImportRun
		var createdAt string
		s := &run.Summary
		if err := rows.Scan(&run.ID, &run.Source, &s.ProjectsCreated, &s.FeaturesCreated,
			&s.StoriesCreated, &s.ProductivityRecordsCreated, &run.Conflicts, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning import run: %w", err)
		}
		if run.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import runs: %w", err)
	}
	return runs, nil
}

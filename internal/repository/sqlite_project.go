package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	sqliteRepo
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(q db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{newSQLiteRepo(q)}
}

func (r *SQLiteProjectRepo) Insert(ctx context.Context, p *domain.Project) (int64, error) {
	b := r.sq.Insert("projects").
		Columns("name", "description", "created_at").
		Values(p.Name, p.Description, nowUTC())
	id, err := r.insert(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("inserting project %q: %w", p.Name, err)
	}
	return id, nil
}

func (r *SQLiteProjectRepo) selectSummaries() sq.SelectBuilder {
	return r.sq.Select(
		"p.id", "p.name", "p.description", "p.created_at",
		"(SELECT COUNT(*) FROM features f WHERE f.project_id = p.id)",
		"(SELECT COUNT(*) FROM user_stories s JOIN features f ON f.id = s.feature_id WHERE f.project_id = p.id)",
	).From("projects p")
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.ProjectSummary, error) {
	row, err := r.queryRow(ctx, r.selectSummaries().Where(sq.Eq{"p.id": id}))
	if err != nil {
		return nil, err
	}
	p, err := scanProjectSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.ProjectSummary, error) {
	rows, err := r.query(ctx, r.selectSummaries().OrderBy("p.id"))
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.ProjectSummary
	for rows.Next() {
		p, err := scanProjectSummary(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProjectSummary(s scanner) (domain.ProjectSummary, error) {
	var p domain.ProjectSummary
	var createdAt string
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &createdAt, &p.FeatureCount, &p.StoryCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning project: %w", err)
	}
	var err error
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return p, err
	}
	return p, nil
}

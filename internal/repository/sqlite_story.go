package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
)

// SQLiteStoryRepo implements StoryRepo using a SQLite database.
type SQLiteStoryRepo struct {
	sqliteRepo
}

func NewSQLiteStoryRepo(q db.DBTX) *SQLiteStoryRepo {
	return &SQLiteStoryRepo{newSQLiteRepo(q)}
}

func (r *SQLiteStoryRepo) Insert(ctx context.Context, featureID int64, s *domain.Story) (int64, error) {
	b := r.sq.Insert("user_stories").
		Columns("feature_id", "title", "hours", "man_days", "story_points", "estimated_start_date", "target_end_date").
		Values(featureID, s.Title, s.HoursEstimated, s.ManDaysEstimated, s.StoryPoints,
			nullableString(s.StartEstimated), nullableString(s.EndEstimated))
	id, err := r.insert(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("inserting story %q: %w", s.Title, err)
	}
	return id, nil
}

// ListByFeature returns the feature's stories with their productivity data,
// when recorded.
func (r *SQLiteStoryRepo) ListByFeature(ctx context.Context, featureID int64) ([]domain.StorySummary, error) {
	b := r.sq.Select(
		"s.id", "s.feature_id", "s.title", "s.hours", "s.man_days", "s.story_points",
		"s.estimated_start_date", "s.target_end_date",
		"p.hours_taken", "p.efforts_man_days", "p.actual_start_date", "p.actual_end_date",
		"p.is_completed", "p.productivity",
	).From("user_stories s").
		LeftJoin("productivity_data p ON p.story_id = s.id").
		Where(sq.Eq{"s.feature_id": featureID}).
		OrderBy("s.id")

	rows, err := r.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.StorySummary
	for rows.Next() {
		var s domain.StorySummary
		var start, end, actualStart, actualEnd sql.NullString
		var hoursTaken, effort, productivity sql.NullFloat64
		var completed sql.NullInt64
		if err := rows.Scan(
			&s.ID, &s.FeatureID, &s.Title, &s.HoursEstimated, &s.ManDaysEstimated, &s.StoryPoints,
			&start, &end,
			&hoursTaken, &effort, &actualStart, &actualEnd, &completed, &productivity,
		); err != nil {
			return nil, fmt.Errorf("scanning story: %w", err)
		}
		s.StartEstimated = stringPtr(start)
		s.EndEstimated = stringPtr(end)
		if hoursTaken.Valid {
			s.Productivity = &domain.Productivity{
				HoursActual:         hoursTaken.Float64,
				EffortManDaysActual: effort.Float64,
				StartActual:         stringPtr(actualStart),
				EndActual:           stringPtr(actualEnd),
				Completed:           intToBool(int(completed.Int64)),
				Productivity:        productivity.Float64,
			}
		}
		stories = append(stories, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stories: %w", err)
	}
	return stories, nil
}

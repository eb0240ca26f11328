package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
)

// SQLiteProductivityRepo implements ProductivityRepo using a SQLite database.
type SQLiteProductivityRepo struct {
	sqliteRepo
}

func NewSQLiteProductivityRepo(q db.DBTX) *SQLiteProductivityRepo {
	return &SQLiteProductivityRepo{newSQLiteRepo(q)}
}

func (r *SQLiteProductivityRepo) Insert(ctx context.Context, featureID, storyID int64, p domain.Productivity) error {
	b := r.sq.Insert("productivity_data").
		Columns("feature_id", "story_id", "hours_taken", "efforts_man_days",
			"actual_start_date", "actual_end_date", "is_completed", "productivity").
		Values(featureID, storyID, p.HoursActual, p.EffortManDaysActual,
			nullableString(p.StartActual), nullableString(p.EndActual), boolToInt(p.Completed), p.Productivity)
	if _, err := r.insert(ctx, b); err != nil {
		return fmt.Errorf("inserting productivity for story %d: %w", storyID, err)
	}
	return nil
}

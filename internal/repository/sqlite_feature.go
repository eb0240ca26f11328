package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/domain"
)

// SQLiteFeatureRepo implements FeatureRepo using a SQLite database.
type SQLiteFeatureRepo struct {
	sqliteRepo
}

func NewSQLiteFeatureRepo(q db.DBTX) *SQLiteFeatureRepo {
	return &SQLiteFeatureRepo{newSQLiteRepo(q)}
}

// Insert stores the feature header together with the totals computed over
// its stories.
func (r *SQLiteFeatureRepo) Insert(ctx context.Context, projectID int64, f *domain.Feature, t domain.FeatureTotals) (int64, error) {
	b := r.sq.Insert("features").
		Columns(
			"project_id", "name", "org_productivity", "man_days_hours",
			"total_story_points", "total_man_days",
			"estimated_start_date", "target_end_date",
			"sit_defects", "uat_defects", "defect_removal_efficiency",
			"actual_req_man_days", "actual_design_man_days", "actual_dev_man_days",
			"actual_testing_man_days", "actual_pm_man_days", "actual_total_man_days",
		).
		Values(
			projectID, f.Name, f.OrgProductivity, f.ManDayHours,
			t.TotalStoryPoints, t.TotalManDays,
			nullableString(f.StartDate), nullableString(f.EndDate),
			f.SITDefects, f.UATDefects, t.DefectRemovalEfficiency,
			t.ActualReqManDays, t.ActualDesignManDays, t.ActualDevManDays,
			t.ActualTestManDays, t.ActualPMManDays, t.ActualTotalManDays,
		)
	id, err := r.insert(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("inserting feature %q: %w", f.Name, err)
	}
	return id, nil
}

func (r *SQLiteFeatureRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.FeatureSummary, error) {
	b := r.sq.Select(
		"f.id", "f.project_id", "f.name", "f.org_productivity", "f.man_days_hours",
		"f.estimated_start_date", "f.target_end_date", "f.sit_defects", "f.uat_defects",
		"f.total_story_points", "f.total_man_days", "f.defect_removal_efficiency",
		"f.actual_req_man_days", "f.actual_design_man_days", "f.actual_dev_man_days",
		"f.actual_testing_man_days", "f.actual_pm_man_days", "f.actual_total_man_days",
		"(SELECT COUNT(*) FROM user_stories s WHERE s.feature_id = f.id)",
	).From("features f").Where(sq.Eq{"f.project_id": projectID}).OrderBy("f.id")

	rows, err := r.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	defer rows.Close()

	var features []domain.FeatureSummary
	for rows.Next() {
		var f domain.FeatureSummary
		var start, end sql.NullString
		t := &f.Totals
		if err := rows.Scan(
			&f.ID, &f.ProjectID, &f.Name, &f.OrgProductivity, &f.ManDayHours,
			&start, &end, &f.SITDefects, &f.UATDefects,
			&t.TotalStoryPoints, &t.TotalManDays, &t.DefectRemovalEfficiency,
			&t.ActualReqManDays, &t.ActualDesignManDays, &t.ActualDevManDays,
			&t.ActualTestManDays, &t.ActualPMManDays, &t.ActualTotalManDays,
			&f.StoryCount,
		); err != nil {
			return nil, fmt.Errorf("scanning feature: %w", err)
		}
		f.StartDate = stringPtr(start)
		f.EndDate = stringPtr(end)
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}
	return features, nil
}

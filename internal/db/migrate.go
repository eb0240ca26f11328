package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillFeatureTotals(db); err != nil {
		return fmt.Errorf("backfilling feature totals: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`,

	`CREATE TABLE IF NOT EXISTS features (
		id                        INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id                INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name                      TEXT NOT NULL,
		org_productivity          REAL NOT NULL CHECK(org_productivity > 0),
		man_days_hours            REAL NOT NULL CHECK(man_days_hours > 0),
		total_story_points        REAL NOT NULL DEFAULT 0,
		total_man_days            REAL NOT NULL DEFAULT 0,
		estimated_start_date      TEXT,
		target_end_date           TEXT,
		sit_defects               INTEGER NOT NULL DEFAULT 0 CHECK(sit_defects >= 0),
		uat_defects               INTEGER NOT NULL DEFAULT 0 CHECK(uat_defects >= 0),
		defect_removal_efficiency REAL NOT NULL DEFAULT 0,
		actual_req_man_days       REAL NOT NULL DEFAULT 0,
		actual_design_man_days    REAL NOT NULL DEFAULT 0,
		actual_dev_man_days       REAL NOT NULL DEFAULT 0,
		actual_testing_man_days   REAL NOT NULL DEFAULT 0,
		actual_pm_man_days        REAL NOT NULL DEFAULT 0,
		actual_total_man_days     REAL NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_features_project ON features(project_id)`,

	`CREATE TABLE IF NOT EXISTS user_stories (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		feature_id           INTEGER NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		title                TEXT NOT NULL,
		hours                REAL NOT NULL CHECK(hours > 0),
		man_days             REAL NOT NULL,
		story_points         REAL NOT NULL,
		estimated_start_date TEXT,
		target_end_date      TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_stories_feature ON user_stories(feature_id)`,

	`CREATE TABLE IF NOT EXISTS productivity_data (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		feature_id        INTEGER NOT NULL REFERENCES features(id) ON DELETE CASCADE,
		story_id          INTEGER NOT NULL UNIQUE REFERENCES user_stories(id) ON DELETE CASCADE,
		hours_taken       REAL NOT NULL,
		efforts_man_days  REAL NOT NULL,
		actual_start_date TEXT,
		actual_end_date   TEXT,
		is_completed      INTEGER NOT NULL DEFAULT 0,
		productivity      REAL NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_productivity_feature ON productivity_data(feature_id)`,

	`CREATE TABLE IF NOT EXISTS import_runs (
		id                   TEXT PRIMARY KEY,
		source               TEXT NOT NULL DEFAULT '',
		projects_created     INTEGER NOT NULL DEFAULT 0,
		features_created     INTEGER NOT NULL DEFAULT 0,
		stories_created      INTEGER NOT NULL DEFAULT 0,
		productivity_created INTEGER NOT NULL DEFAULT 0,
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_import_runs_created ON import_runs(created_at)`,

	// Header conflicts were only logged before this column existed.
	`ALTER TABLE import_runs ADD COLUMN conflicts INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillFeatureTotals recomputes the stored estimate totals of
// features whose totals were never written (both zero while stories exist).
// Idempotent: features with non-zero totals are left alone.
func migrateBackfillFeatureTotals(db *sql.DB) error {
	ctx := context.Background()

	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM features f
		WHERE f.total_story_points = 0 AND f.total_man_days = 0
		AND EXISTS (SELECT 1 FROM user_stories s WHERE s.feature_id = f.id)`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking feature totals: %w", err)
	}
	if count == 0 {
		return nil
	}

	query := `UPDATE features SET
		total_story_points = (SELECT COALESCE(SUM(story_points), 0) FROM user_stories WHERE feature_id = features.id),
		total_man_days     = (SELECT COALESCE(SUM(man_days), 0) FROM user_stories WHERE feature_id = features.id)
		WHERE total_story_points = 0 AND total_man_days = 0`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating feature totals: %w", err)
	}
	return nil
}

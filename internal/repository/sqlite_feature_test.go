package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string    { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestFeatureRepo_InsertStoresTotals(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	pid, err := NewSQLiteProjectRepo(db).Insert(ctx, &domain.Project{Name: "Proj A"})
	require.NoError(t, err)

	f := testutil.NewTestFeature("Feat 1", 1.5, 4, 8, 4)
	f.StartDate = strPtr("2025-01-06")
	f.SITDefects = 9
	f.UATDefects = 1
	f.ReqManDays = f64Ptr(1)
	f.PMManDays = f64Ptr(0.5)
	f.Stories[0].HoursActual = f64Ptr(12)
	totals := f.Totals()

	repo := NewSQLiteFeatureRepo(db)
	fid, err := repo.Insert(ctx, pid, f, totals)
	require.NoError(t, err)

	list, err := repo.ListByProject(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, fid, got.ID)
	assert.Equal(t, pid, got.ProjectID)
	assert.Equal(t, "Feat 1", got.Name)
	assert.Equal(t, 1.5, got.OrgProductivity)
	assert.Equal(t, 4.0, got.ManDayHours)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2025-01-06", *got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.Equal(t, 9, got.SITDefects)
	assert.Equal(t, totals, got.Totals)
	assert.Equal(t, 0, got.StoryCount, "stories were not inserted")
}

func TestFeatureRepo_RejectsUnknownProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	f := testutil.NewTestFeature("Feat 1", 2, 5, 10)

	_, err := NewSQLiteFeatureRepo(db).Insert(context.Background(), 999, f, f.Totals())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `inserting feature "Feat 1"`)
}

func TestFeatureRepo_ListByProject_ScopedToProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	features := NewSQLiteFeatureRepo(db)

	a, err := projects.Insert(ctx, &domain.Project{Name: "A"})
	require.NoError(t, err)
	b, err := projects.Insert(ctx, &domain.Project{Name: "B"})
	require.NoError(t, err)

	for _, name := range []string{"F1", "F2"} {
		f := testutil.NewTestFeature(name, 1, 8, 8)
		_, err := features.Insert(ctx, a, f, f.Totals())
		require.NoError(t, err)
	}
	f := testutil.NewTestFeature("F3", 1, 8, 8)
	_, err = features.Insert(ctx, b, f, f.Totals())
	require.NoError(t, err)

	list, err := features.ListByProject(ctx, a)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "F1", list[0].Name)
	assert.Equal(t, "F2", list[1].Name)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/repository"
	"github.com/alexanderramin/throughput/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioExecs is the number of inserts ScenarioCSV takes: 2 projects,
// 2 features, 3 stories, 1 productivity record and the import run.
const scenarioExecs = 9

func TestWriter_PersistsScenario(t *testing.T) {
	database := testutil.NewTestDB(t)
	w := NewWriter(testutil.NewTestUoW(database))
	ctx := context.Background()

	run := &domain.ImportRun{ID: uuid.NewString(), Source: "scenario.csv"}
	summary, err := w.Write(ctx, parseBatch(t, testutil.ScenarioCSV()), run)
	require.NoError(t, err)
	assert.Equal(t, testutil.ScenarioSummary, summary)
	assert.Equal(t, testutil.ScenarioSummary, run.Summary)

	assert.Equal(t, map[string]int{
		"projects":          2,
		"features":          2,
		"user_stories":      3,
		"productivity_data": 1,
		"import_runs":       1,
	}, testutil.TableCounts(t, database))

	store := repository.NewSQLiteStore(database)
	projects, err := store.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Proj A", projects[0].Name)
	assert.Equal(t, 2, projects[0].StoryCount)

	features, err := store.Features.ListByProject(ctx, projects[0].ID)
	require.NoError(t, err)
	require.Len(t, features, 1)
	totals := features[0].Totals
	assert.Equal(t, 3.0, totals.TotalManDays)
	assert.Equal(t, 6.0, totals.TotalStoryPoints)
	assert.Equal(t, 2.0, totals.ActualDevManDays)
	assert.Equal(t, 2.0, totals.ActualTotalManDays)
	assert.Equal(t, 75.0, totals.DefectRemovalEfficiency)

	stories, err := store.Stories.ListByFeature(ctx, features[0].ID)
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Nil(t, stories[0].Productivity)
	require.NotNil(t, stories[1].Productivity)
	assert.Equal(t, 2.0, stories[1].Productivity.EffortManDaysActual)
	assert.Equal(t, 1.0, stories[1].Productivity.Productivity)
	assert.True(t, stories[1].Productivity.Completed)
}

func TestWriter_SingleRowScenario(t *testing.T) {
	database := testutil.NewTestDB(t)
	w := NewWriter(testutil.NewTestUoW(database))

	batch := parseBatch(t, testutil.CSV(testutil.NewTestRow("Proj A", "Feat 1", "Story 1", "10")))
	summary, err := w.Write(context.Background(), batch, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Summary{ProjectsCreated: 1, FeaturesCreated: 1, StoriesCreated: 1}, summary)

	var md, sp, dre float64
	require.NoError(t, database.QueryRow(`SELECT man_days, story_points FROM user_stories`).Scan(&md, &sp))
	require.NoError(t, database.QueryRow(`SELECT defect_removal_efficiency FROM features`).Scan(&dre))
	assert.Equal(t, 2.0, md)
	assert.Equal(t, 4.0, sp)
	assert.Equal(t, 0.0, dre)
	assert.Equal(t, 0, testutil.TableCounts(t, database)["import_runs"], "no audit row without a run")
}

// TestWriter_RollbackOnEveryInsert fails each insert of the scenario in turn
// and checks that nothing survives any of them.
func TestWriter_RollbackOnEveryInsert(t *testing.T) {
	for n := 1; n <= scenarioExecs; n++ {
		t.Run(fmt.Sprintf("fail on insert %d", n), func(t *testing.T) {
			database := testutil.NewTestDB(t)
			injected := errors.New("injected insert failure")
			uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: int32(n), Err: injected}

			run := &domain.ImportRun{ID: uuid.NewString()}
			summary, err := NewWriter(uow).Write(context.Background(), parseBatch(t, testutil.ScenarioCSV()), run)
			require.Error(t, err)
			assert.ErrorIs(t, err, injected)

			var pe *PersistenceError
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, err.Error(), "Database error: ")
			assert.Equal(t, domain.Summary{}, summary, "no partial counters")
			assert.Equal(t, n, uow.Execs(), "writer stops at the failing insert")

			for table, count := range testutil.TableCounts(t, database) {
				assert.Zero(t, count, "%s should be empty after rollback", table)
			}
		})
	}
}

func TestWriter_InsertCount(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database}

	_, err := NewWriter(uow).Write(context.Background(), parseBatch(t, testutil.ScenarioCSV()), &domain.ImportRun{ID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, scenarioExecs, uow.Execs())
}

func TestWriter_ConstraintViolationRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	w := NewWriter(testutil.NewTestUoW(database))
	ctx := context.Background()

	id := uuid.NewString()
	_, err := w.Write(ctx, parseBatch(t, testutil.ScenarioCSV()), &domain.ImportRun{ID: id})
	require.NoError(t, err)

	// Reusing the run id fails on the final insert; the second tree must not stay.
	_, err = w.Write(ctx, parseBatch(t, testutil.ScenarioCSV()), &domain.ImportRun{ID: id})
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, testutil.TableCounts(t, database)["projects"])
}

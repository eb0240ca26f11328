package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/service"
	"github.com/alexanderramin/throughput/internal/teatest"
	"github.com/alexanderramin/throughput/internal/testutil"
)

func seededApp(t *testing.T) *App {
	t.Helper()
	app, _ := testApp(t)
	_, err := app.Imports.Import(context.Background(), strings.NewReader(testutil.ScenarioCSV()), "scenario.csv")
	require.NoError(t, err)
	return app
}

func TestBrowse_DrillDownAndBack(t *testing.T) {
	m := newBrowseModel(context.Background(), seededApp(t).Projects)
	d := teatest.New(t, m, teatest.WithSize(100, 30))

	assert.Equal(t, levelProjects, m.level)
	require.Len(t, m.table.Rows(), 2)
	assert.Contains(t, d.View(), "Proj A")

	for i, p := range m.list {
		if p.Name == "Proj A" {
			m.table.SetCursor(i)
		}
	}

	d.Press("enter")
	assert.Equal(t, levelFeatures, m.level)
	require.Len(t, m.table.Rows(), 1)
	feature := m.table.Rows()[0]
	assert.Equal(t, "Feat 1", feature[0])
	assert.Equal(t, "6", feature[2])
	assert.Equal(t, "75.0%", feature[5])
	assert.Contains(t, d.View(), "Projects › Proj A")

	d.Press("enter")
	assert.Equal(t, levelStories, m.level)
	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Story 1", rows[0][0])
	assert.Equal(t, "--", rows[0][3])
	assert.Equal(t, "Story 2", rows[1][0])
	assert.Equal(t, "10", rows[1][3])
	assert.Equal(t, "✔", rows[1][5])
	assert.Contains(t, d.View(), "Projects › Proj A › Feat 1")
	assert.NotContains(t, d.View(), "open")

	d.Press("esc")
	assert.Equal(t, levelFeatures, m.level)

	d.Press("esc")
	assert.Equal(t, levelProjects, m.level)
	assert.Nil(t, m.detail)
	assert.Len(t, m.table.Rows(), 2)
}

func TestBrowse_CursorMovesThroughTable(t *testing.T) {
	m := newBrowseModel(context.Background(), seededApp(t).Projects)
	d := teatest.New(t, m, teatest.WithSize(100, 30))

	assert.Equal(t, 0, m.table.Cursor())
	d.Press("down")
	assert.Equal(t, 1, m.table.Cursor())
	d.Press("up")
	assert.Equal(t, 0, m.table.Cursor())
}

func TestBrowse_Quit(t *testing.T) {
	m := newBrowseModel(context.Background(), seededApp(t).Projects)
	d := teatest.New(t, m)

	d.Press("q")
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestBrowse_EmptyDatabase(t *testing.T) {
	app, _ := testApp(t)
	m := newBrowseModel(context.Background(), app.Projects)
	d := teatest.New(t, m)

	assert.Contains(t, d.View(), "No projects found")
	d.Press("enter")
	assert.Equal(t, levelProjects, m.level)
	assert.False(t, m.loading)
}

// failingProjects fails Inspect so the error path can be rendered.
type failingProjects struct {
	service.ProjectService
}

func (f failingProjects) Inspect(context.Context, int64) (*service.ProjectDetail, error) {
	return nil, errors.New("database is locked")
}

func TestBrowse_LoadError(t *testing.T) {
	m := newBrowseModel(context.Background(), failingProjects{seededApp(t).Projects})
	d := teatest.New(t, m)

	d.Press("enter")
	assert.Equal(t, levelProjects, m.level)
	assert.Contains(t, d.View(), "database is locked")

	d.Press("esc")
	assert.NotContains(t, d.View(), "database is locked")
}

func TestBrowse_WindowResize(t *testing.T) {
	tests := []struct {
		name     string
		height   int
		wantRows int
	}{
		{"tiny terminal keeps the minimum", 4, minTableRows},
		{"exactly the minimum", browseChromeLines + minTableRows + 1, minTableRows},
		{"tall terminal", 30, 30 - browseChromeLines - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBrowseModel(context.Background(), seededApp(t).Projects)
			teatest.New(t, m, teatest.WithSize(80, tt.height))
			assert.Equal(t, tt.wantRows, m.table.Height())
		})
	}
}

func TestBrowse_StoryWithoutActuals(t *testing.T) {
	m := newBrowseModel(context.Background(), nil)
	m.loading = false
	m.detail = &service.ProjectDetail{
		Project: domain.ProjectSummary{Name: "P"},
		Features: []service.FeatureDetail{{
			FeatureSummary: domain.FeatureSummary{Name: "F"},
			Stories:        []domain.StorySummary{{Title: "S", HoursEstimated: 4, StoryPoints: 1.6}},
		}},
	}
	m.showStories()

	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "1.6", m.table.Rows()[0][2])
	assert.Equal(t, "--", m.table.Rows()[0][3])
}

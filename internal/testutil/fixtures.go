package testutil

import (
	"strings"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/importer"
)

// CSV renders the import template header followed by rows. Cells are joined
// verbatim, so values must not contain commas or quotes.
func CSV(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(importer.TemplateHeader(), ","))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// RowOption adjusts one template cell, addressed by column name.
type RowOption func(cells map[string]string)

func WithCell(column, value string) RowOption {
	return func(cells map[string]string) {
		cells[column] = value
	}
}

func WithActuals(hours, start, end string, completed bool) RowOption {
	return func(cells map[string]string) {
		cells["Story Actual Hours"] = hours
		cells["Story Actual Start Date"] = start
		cells["Story Actual End Date"] = end
		if completed {
			cells["Completed"] = "TRUE"
		}
	}
}

func WithDefects(sit, uat string) RowOption {
	return func(cells map[string]string) {
		cells["SIT Defects"] = sit
		cells["UAT Defects"] = uat
	}
}

// NewTestRow builds a valid template row: org productivity 2, 5 hours per man
// day and the given story hours.
func NewTestRow(project, feature, story, hours string, opts ...RowOption) []string {
	cells := map[string]string{
		"Project Name":     project,
		"Feature Name":     feature,
		"Org Productivity": "2",
		"Man Days Hours":   "5",
		"Story Title":      story,
		"Story Hours":      hours,
	}
	for _, opt := range opts {
		opt(cells)
	}
	header := importer.TemplateHeader()
	row := make([]string, len(header))
	for i, name := range header {
		row[i] = cells[name]
	}
	return row
}

// ScenarioCSV is the two-project example used across service and transport
// tests: Proj A has one feature with two stories, one of them with actuals,
// and Proj B has one feature with one story.
func ScenarioCSV() string {
	return CSV(
		NewTestRow("Proj A", "Feat 1", "Story 1", "10", WithDefects("3", "1")),
		NewTestRow("Proj A", "Feat 1", "Story 2", "5", WithActuals("10", "2025-01-06", "2025-01-08", true)),
		NewTestRow("Proj B", "Feat 2", "Story 3", "20"),
	)
}

// ScenarioSummary is what importing ScenarioCSV creates.
var ScenarioSummary = domain.Summary{
	ProjectsCreated:            2,
	FeaturesCreated:            2,
	StoriesCreated:             3,
	ProductivityRecordsCreated: 1,
}

// NewTestFeature builds a feature with the given header values and stories of
// the given estimated hours.
func NewTestFeature(name string, orgProductivity, manDayHours float64, hours ...float64) *domain.Feature {
	f := &domain.Feature{Name: name, OrgProductivity: orgProductivity, ManDayHours: manDayHours}
	for i, h := range hours {
		f.Stories = append(f.Stories, domain.NewStory(name+" story "+string(rune('A'+i)), h, manDayHours, orgProductivity))
	}
	return f
}

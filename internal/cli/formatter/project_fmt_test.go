package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/service"
)

func TestFormatProjectList(t *testing.T) {
	out := stripANSI(FormatProjectList([]domain.ProjectSummary{
		{ID: 7, Name: "Proj A", FeatureCount: 1, StoryCount: 2, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: 8, Name: "Proj B", FeatureCount: 1, StoryCount: 1, CreatedAt: time.Now()},
	}))

	assert.Contains(t, out, "PROJECTS")
	assert.Regexp(t, `7\s+Proj A\s+1\s+2\s+2h ago`, out)
	assert.Regexp(t, `8\s+Proj B\s+1\s+1\s+Just now`, out)
}

func TestFormatProjectInspect(t *testing.T) {
	start, end := "2025-01-06", "2025-01-08"
	detail := &service.ProjectDetail{
		Project: domain.ProjectSummary{ID: 1, Name: "Proj A", Description: "Payments revamp", CreatedAt: time.Now()},
		Features: []service.FeatureDetail{{
			FeatureSummary: domain.FeatureSummary{
				ID: 1, Name: "Feat 1", OrgProductivity: 2, ManDayHours: 5,
				SITDefects: 3, UATDefects: 1,
				Totals: domain.FeatureTotals{
					TotalStoryPoints: 6, TotalManDays: 3,
					ActualDevManDays: 2, ActualTotalManDays: 2,
					DefectRemovalEfficiency: 75,
				},
			},
			Stories: []domain.StorySummary{
				{ID: 1, Title: "Story 1", HoursEstimated: 10, ManDaysEstimated: 2, StoryPoints: 4},
				{ID: 2, Title: "Story 2", HoursEstimated: 5, ManDaysEstimated: 1, StoryPoints: 2,
					Productivity: &domain.Productivity{HoursActual: 10, EffortManDaysActual: 2, StartActual: &start, EndActual: &end, Completed: true, Productivity: 1}},
			},
		}},
	}

	out := stripANSI(FormatProjectInspect(detail))

	assert.Contains(t, out, "Proj A")
	assert.Contains(t, out, "Payments revamp")
	assert.Contains(t, out, "FEAT 1")
	assert.Regexp(t, `story points 6\s+est\. man-days 3\s+DRE 75\.0% \(SIT 3 / UAT 1\)`, out)
	assert.Contains(t, out, "1/2")
	assert.Regexp(t, `Story 1\s+10\s+2\s+4\s+--\s+--`, out)
	assert.Regexp(t, `Story 2\s+5\s+1\s+2\s+10\s+1\s+✔`, out)
}

func TestFormatProjectInspect_NoFeatures(t *testing.T) {
	out := stripANSI(FormatProjectInspect(&service.ProjectDetail{
		Project: domain.ProjectSummary{ID: 3, Name: "Empty"},
	}))
	assert.Contains(t, out, "No features.")
}

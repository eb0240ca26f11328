package formatter

import (
	"fmt"

	"github.com/alexanderramin/throughput/internal/domain"
)

// FormatRunList renders the import audit log, newest first.
func FormatRunList(runs []domain.ImportRun) string {
	headers := []string{"RUN", "SOURCE", "PROJECTS", "FEATURES", "STORIES", "PRODUCTIVITY", "CONFLICTS", "WHEN"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		conflicts := Dim("0")
		if r.Conflicts > 0 {
			conflicts = StyleYellow.Render(fmt.Sprint(r.Conflicts))
		}
		rows = append(rows, []string{
			StyleBlue.Render(shortRunID(r.ID)),
			r.Source,
			fmt.Sprint(r.Summary.ProjectsCreated),
			fmt.Sprint(r.Summary.FeaturesCreated),
			fmt.Sprint(r.Summary.StoriesCreated),
			fmt.Sprint(r.Summary.ProductivityRecordsCreated),
			conflicts,
			Dim(HumanTimestamp(r.CreatedAt)),
		})
	}
	return RenderBox("Import runs", RenderTable(headers, rows, 2, 3, 4, 5, 6))
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/service"
)

func summaryLines(s domain.Summary) string {
	rows := [][]string{
		{"Projects", fmt.Sprint(s.ProjectsCreated)},
		{"Features", fmt.Sprint(s.FeaturesCreated)},
		{"Stories", fmt.Sprint(s.StoriesCreated)},
		{"Productivity records", fmt.Sprint(s.ProductivityRecordsCreated)},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-21s", r[0])), StyleBold.Render(r[1])))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatConflicts lists feature header cells that differed from the first
// row of their feature and were ignored.
func FormatConflicts(conflicts []domain.HeaderConflict) string {
	if len(conflicts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Ignored feature values (%d)", len(conflicts))) + "\n")
	for _, c := range conflicts {
		b.WriteString(Warning(c.String()) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatImportResult renders the outcome of a committed import.
func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	b.WriteString(Success("Import successful") + "\n\n")
	b.WriteString(summaryLines(r.Summary) + "\n\n")
	b.WriteString(Dim("run ") + StyleBlue.Render(r.RunID) + Dim("  "+r.Source))
	if c := FormatConflicts(r.Conflicts); c != "" {
		b.WriteString("\n\n" + c)
	}
	return b.String()
}

// FormatPreview renders what an import would create, feature by feature.
func FormatPreview(p *service.PreviewResult) string {
	var b strings.Builder
	b.WriteString(summaryLines(p.Summary) + "\n\n")

	headers := []string{"PROJECT", "FEATURE", "STORIES", "STORY POINTS", "MAN-DAYS", "DRE"}
	var rows [][]string
	for _, proj := range p.Batch.Projects {
		for _, f := range proj.Features {
			t := f.Totals()
			rows = append(rows, []string{
				proj.Name,
				f.Name,
				fmt.Sprint(len(f.Stories)),
				Num(t.TotalStoryPoints),
				Num(t.TotalManDays),
				DREColor(t.DefectRemovalEfficiency).Render(Percent(t.DefectRemovalEfficiency)),
			})
		}
	}
	b.WriteString(RenderTable(headers, rows, 2, 3, 4, 5))

	if c := FormatConflicts(p.Batch.Conflicts); c != "" {
		b.WriteString("\n" + c + "\n")
	}
	return RenderBox("Import preview: "+p.Source, strings.TrimRight(b.String(), "\n"))
}

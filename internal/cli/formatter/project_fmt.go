package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/service"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []domain.ProjectSummary) string {
	headers := []string{"ID", "NAME", "FEATURES", "STORIES", "IMPORTED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			StyleGreen.Render(fmt.Sprint(p.ID)),
			Bold(p.Name),
			fmt.Sprint(p.FeatureCount),
			fmt.Sprint(p.StoryCount),
			Dim(HumanTimestamp(p.CreatedAt)),
		})
	}
	return RenderBox("Projects", RenderTable(headers, rows, 2, 3))
}

// FormatProjectInspect renders a project with one block per feature: the
// persisted totals followed by the story table.
func FormatProjectInspect(d *service.ProjectDetail) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(d.Project.Name) + "\n")
	if d.Project.Description != "" {
		b.WriteString(StyleFg.Render(d.Project.Description) + "\n")
	}
	b.WriteString(Dim(fmt.Sprintf("id %d  imported %s", d.Project.ID, HumanTimestamp(d.Project.CreatedAt))) + "\n")

	if len(d.Features) == 0 {
		b.WriteString("\n" + Dim("No features.") + "\n")
	}
	for _, f := range d.Features {
		b.WriteString("\n" + formatFeature(f))
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func formatFeature(f service.FeatureDetail) string {
	t := f.Totals
	var b strings.Builder
	b.WriteString(Header(f.Name) + "\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s → %s\n",
		Dim("productivity"), Num(f.OrgProductivity),
		Dim("hours/day"), Num(f.ManDayHours),
		Dim("window"), DateOrDash(f.StartDate), DateOrDash(f.EndDate),
	))
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s (SIT %d / UAT %d)\n",
		Dim("story points"), StyleBold.Render(Num(t.TotalStoryPoints)),
		Dim("est. man-days"), StyleBold.Render(Num(t.TotalManDays)),
		Dim("DRE"), DREColor(t.DefectRemovalEfficiency).Render(Percent(t.DefectRemovalEfficiency)),
		f.SITDefects, f.UATDefects,
	))
	b.WriteString(fmt.Sprintf("%s req %s  design %s  dev %s  test %s  pm %s  = %s\n",
		Dim("actual man-days"),
		Num(t.ActualReqManDays), Num(t.ActualDesignManDays), Num(t.ActualDevManDays),
		Num(t.ActualTestManDays), Num(t.ActualPMManDays),
		StyleBold.Render(Num(t.ActualTotalManDays)),
	))

	done := 0
	for _, s := range f.Stories {
		if s.Productivity != nil && s.Productivity.Completed {
			done++
		}
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("completed"), RenderCompletion(done, len(f.Stories), 12)))

	headers := []string{"STORY", "HOURS", "MAN-DAYS", "POINTS", "ACTUAL", "PRODUCTIVITY", "DONE"}
	rows := make([][]string, 0, len(f.Stories))
	for _, s := range f.Stories {
		actual, prod, done := Dim("--"), Dim("--"), ""
		if p := s.Productivity; p != nil {
			actual = Num(p.HoursActual)
			prod = Num(p.Productivity)
			if p.Completed {
				done = StyleGreen.Render("✔")
			}
		}
		rows = append(rows, []string{
			s.Title,
			Num(s.HoursEstimated),
			Num(s.ManDaysEstimated),
			Num(s.StoryPoints),
			actual,
			prod,
			done,
		})
	}
	b.WriteString(RenderTable(headers, rows, 1, 2, 3, 4, 5))
	return b.String()
}

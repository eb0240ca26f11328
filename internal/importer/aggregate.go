package importer

import (
	"strconv"

	"github.com/alexanderramin/throughput/internal/domain"
)

type featureKey struct {
	project string
	feature string
}

// Aggregate folds validated rows into the Project -> Feature -> Story tree.
// The first row naming a project fixes its description and the first row
// naming a feature fixes the feature header; later rows only add stories.
// Header values that disagree with the first row are reported as conflicts;
// blank defect cells on later rows are not treated as disagreement.
func Aggregate(rows []Row) *domain.Batch {
	batch := &domain.Batch{}
	projects := make(map[string]*domain.Project)
	features := make(map[featureKey]*domain.Feature)

	for _, row := range rows {
		p, ok := projects[row.ProjectName]
		if !ok {
			p = &domain.Project{Name: row.ProjectName, Description: row.ProjectDescription}
			projects[row.ProjectName] = p
			batch.Projects = append(batch.Projects, p)
		}

		key := featureKey{project: row.ProjectName, feature: row.FeatureName}
		f, ok := features[key]
		if !ok {
			f = newFeature(row)
			features[key] = f
			p.Features = append(p.Features, f)
		} else {
			batch.Conflicts = append(batch.Conflicts, headerConflicts(f, row)...)
		}

		f.Stories = append(f.Stories, newStory(row, f))
	}

	return batch
}

func newFeature(row Row) *domain.Feature {
	return &domain.Feature{
		Name:            row.FeatureName,
		OrgProductivity: row.OrgProductivity,
		ManDayHours:     row.ManDayHours,
		StartDate:       row.FeatureStart,
		EndDate:         row.FeatureEnd,
		SITDefects:      row.SITDefects,
		UATDefects:      row.UATDefects,
		ReqManDays:      row.ReqManDays,
		DesignManDays:   row.DesignManDays,
		TestManDays:     row.TestManDays,
		PMManDays:       row.PMManDays,
	}
}

func newStory(row Row, f *domain.Feature) domain.Story {
	s := domain.NewStory(row.StoryTitle, row.StoryHours, f.ManDayHours, f.OrgProductivity)
	s.StartEstimated = row.StoryStart
	s.EndEstimated = row.StoryEnd
	s.Completed = row.Completed
	s.HoursActual = row.StoryHoursActual
	s.StartActual = row.StoryStartActual
	s.EndActual = row.StoryEndActual
	return s
}

// headerConflicts compares a later row's feature header cells with the kept
// values. Blank cells and zero defect counts on the later row never conflict.
func headerConflicts(f *domain.Feature, row Row) []domain.HeaderConflict {
	var out []domain.HeaderConflict
	add := func(col int, kept, ignored string) {
		out = append(out, domain.HeaderConflict{
			Line:    row.Line,
			Project: row.ProjectName,
			Feature: row.FeatureName,
			Field:   columnNames[col],
			Kept:    kept,
			Ignored: ignored,
		})
	}
	text := func(col int, kept, got *string) {
		if got != nil && (kept == nil || *kept != *got) {
			add(col, textOrBlank(kept), *got)
		}
	}
	number := func(col int, kept, got *float64) {
		if got != nil && (kept == nil || *kept != *got) {
			add(col, numberOrBlank(kept), formatFloat(*got))
		}
	}

	if row.OrgProductivity != f.OrgProductivity {
		add(colOrgProductivity, formatFloat(f.OrgProductivity), formatFloat(row.OrgProductivity))
	}
	if row.ManDayHours != f.ManDayHours {
		add(colManDayHours, formatFloat(f.ManDayHours), formatFloat(row.ManDayHours))
	}
	text(colFeatureStart, f.StartDate, row.FeatureStart)
	text(colFeatureEnd, f.EndDate, row.FeatureEnd)
	if row.SITDefects != 0 && row.SITDefects != f.SITDefects {
		add(colSITDefects, strconv.Itoa(f.SITDefects), strconv.Itoa(row.SITDefects))
	}
	if row.UATDefects != 0 && row.UATDefects != f.UATDefects {
		add(colUATDefects, strconv.Itoa(f.UATDefects), strconv.Itoa(row.UATDefects))
	}
	number(colReqManDays, f.ReqManDays, row.ReqManDays)
	number(colDesignManDays, f.DesignManDays, row.DesignManDays)
	number(colTestManDays, f.TestManDays, row.TestManDays)
	number(colPMManDays, f.PMManDays, row.PMManDays)
	return out
}

func textOrBlank(s *string) string {
	if s == nil {
		return "(blank)"
	}
	return *s
}

func numberOrBlank(v *float64) string {
	if v == nil {
		return "(blank)"
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

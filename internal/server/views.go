package server

import (
	"time"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

type importResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	RunID    string         `json:"runId"`
	Stats    domain.Summary `json:"stats"`
	Warnings []string       `json:"warnings,omitempty"`
}

type projectView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	FeatureCount int       `json:"featureCount"`
	StoryCount   int       `json:"storyCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type featureView struct {
	ID                      int64       `json:"id"`
	Name                    string      `json:"name"`
	OrgProductivity         float64     `json:"orgProductivity"`
	ManDaysHours            float64     `json:"manDaysHours"`
	StartDate               *string     `json:"estimatedStartDate"`
	EndDate                 *string     `json:"targetEndDate"`
	SITDefects              int         `json:"sitDefects"`
	UATDefects              int         `json:"uatDefects"`
	TotalStoryPoints        float64     `json:"totalStoryPoints"`
	TotalManDays            float64     `json:"totalManDays"`
	DefectRemovalEfficiency float64     `json:"defectRemovalEfficiency"`
	ActualReqManDays        float64     `json:"actualReqManDays"`
	ActualDesignManDays     float64     `json:"actualDesignManDays"`
	ActualDevManDays        float64     `json:"actualDevManDays"`
	ActualTestingManDays    float64     `json:"actualTestingManDays"`
	ActualPMManDays         float64     `json:"actualPmManDays"`
	ActualTotalManDays      float64     `json:"actualTotalManDays"`
	Stories                 []storyView `json:"stories"`
}

type storyView struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Hours        float64           `json:"hours"`
	ManDays      float64           `json:"manDays"`
	StoryPoints  float64           `json:"storyPoints"`
	StartDate    *string           `json:"estimatedStartDate"`
	EndDate      *string           `json:"targetEndDate"`
	Productivity *productivityView `json:"productivity,omitempty"`
}

type productivityView struct {
	HoursTaken     float64 `json:"hoursTaken"`
	EffortsManDays float64 `json:"effortsManDays"`
	StartDate      *string `json:"actualStartDate"`
	EndDate        *string `json:"actualEndDate"`
	Completed      bool    `json:"isCompleted"`
	Productivity   float64 `json:"productivity"`
}

type projectDetailView struct {
	projectView
	Features []featureView `json:"features"`
}

type runView struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Stats     domain.Summary `json:"stats"`
	Conflicts int            `json:"conflicts"`
	CreatedAt time.Time      `json:"createdAt"`
}

func newProjectView(p domain.ProjectSummary) projectView {
	return projectView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		FeatureCount: p.FeatureCount,
		StoryCount:   p.StoryCount,
		CreatedAt:    p.CreatedAt,
	}
}

func newProjectDetailView(d *service.ProjectDetail) projectDetailView {
	v := projectDetailView{projectView: newProjectView(d.Project), Features: make([]featureView, 0, len(d.Features))}
	for _, f := range d.Features {
		fv := featureView{
			ID:                      f.ID,
			Name:                    f.Name,
			OrgProductivity:         f.OrgProductivity,
			ManDaysHours:            f.ManDayHours,
			StartDate:               f.StartDate,
			EndDate:                 f.EndDate,
			SITDefects:              f.SITDefects,
			UATDefects:              f.UATDefects,
			TotalStoryPoints:        f.Totals.TotalStoryPoints,
			TotalManDays:            f.Totals.TotalManDays,
			DefectRemovalEfficiency: f.Totals.DefectRemovalEfficiency,
			ActualReqManDays:        f.Totals.ActualReqManDays,
			ActualDesignManDays:     f.Totals.ActualDesignManDays,
			ActualDevManDays:        f.Totals.ActualDevManDays,
			ActualTestingManDays:    f.Totals.ActualTestManDays,
			ActualPMManDays:         f.Totals.ActualPMManDays,
			ActualTotalManDays:      f.Totals.ActualTotalManDays,
			Stories:                 make([]storyView, 0, len(f.Stories)),
		}
		for _, s := range f.Stories {
			sv := storyView{
				ID:          s.ID,
				Title:       s.Title,
				Hours:       s.HoursEstimated,
				ManDays:     s.ManDaysEstimated,
				StoryPoints: s.StoryPoints,
				StartDate:   s.StartEstimated,
				EndDate:     s.EndEstimated,
			}
			if p := s.Productivity; p != nil {
				sv.Productivity = &productivityView{
					HoursTaken:     p.HoursActual,
					EffortsManDays: p.EffortManDaysActual,
					StartDate:      p.StartActual,
					EndDate:        p.EndActual,
					Completed:      p.Completed,
					Productivity:   p.Productivity,
				}
			}
			fv.Stories = append(fv.Stories, sv)
		}
		v.Features = append(v.Features, fv)
	}
	return v
}

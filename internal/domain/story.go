package domain

// Story is one user story row. ManDaysEstimated and StoryPoints are derived
// from the owning feature's header values at aggregation time.
type Story struct {
	Title            string
	HoursEstimated   float64
	ManDaysEstimated float64
	StoryPoints      float64
	StartEstimated   *string
	EndEstimated     *string
	Completed        bool
	HoursActual      *float64
	StartActual      *string
	EndActual        *string
}

// NewStory derives the estimate fields from hours and the feature header.
func NewStory(title string, hours, manDayHours, orgProductivity float64) Story {
	md := hours / manDayHours
	return Story{
		Title:            title,
		HoursEstimated:   hours,
		ManDaysEstimated: md,
		StoryPoints:      md * orgProductivity,
	}
}

// Productivity is the actual-effort record kept for stories with actual hours.
type Productivity struct {
	HoursActual         float64
	EffortManDaysActual float64
	StartActual         *string
	EndActual           *string
	Completed           bool
	Productivity        float64
}

// HasActuals reports whether the story recorded a positive number of actual
// hours. Zero hours count as not recorded.
func (s Story) HasActuals() bool {
	return s.HoursActual != nil && *s.HoursActual > 0
}

// Productivity returns the story's productivity record. ok is false when the
// story has no actuals.
func (s Story) Productivity(manDayHours float64) (p Productivity, ok bool) {
	if !s.HasActuals() {
		return Productivity{}, false
	}
	effort := *s.HoursActual / manDayHours
	p = Productivity{
		HoursActual:         *s.HoursActual,
		EffortManDaysActual: effort,
		StartActual:         s.StartActual,
		EndActual:           s.EndActual,
		Completed:           s.Completed,
	}
	if effort > 0 {
		p.Productivity = s.StoryPoints / effort
	}
	return p, true
}

// StorySummary is the persisted view of a story with its optional
// productivity data.
type StorySummary struct {
	ID               int64
	FeatureID        int64
	Title            string
	HoursEstimated   float64
	ManDaysEstimated float64
	StoryPoints      float64
	StartEstimated   *string
	EndEstimated     *string
	Productivity     *Productivity
}

package domain

// Feature groups the stories of one project feature. Header values come from
// the first row that named the feature.
type Feature struct {
	Name            string
	OrgProductivity float64
	ManDayHours     float64
	StartDate       *string
	EndDate         *string
	SITDefects      int
	UATDefects      int
	ReqManDays      *float64
	DesignManDays   *float64
	TestManDays     *float64
	PMManDays       *float64
	Stories         []Story
}

// FeatureTotals holds the feature-level aggregates stored with the feature row.
type FeatureTotals struct {
	TotalStoryPoints        float64
	TotalManDays            float64
	ActualReqManDays        float64
	ActualDesignManDays     float64
	ActualDevManDays        float64
	ActualTestManDays       float64
	ActualPMManDays         float64
	ActualTotalManDays      float64
	DefectRemovalEfficiency float64
}

// Totals computes the feature aggregates over all of its stories.
func (f *Feature) Totals() FeatureTotals {
	var t FeatureTotals
	for _, s := range f.Stories {
		t.TotalStoryPoints += s.StoryPoints
		t.TotalManDays += s.ManDaysEstimated
		if s.HasActuals() {
			t.ActualDevManDays += *s.HoursActual / f.ManDayHours
		}
	}

	t.ActualReqManDays = Float64OrZero(f.ReqManDays)
	t.ActualDesignManDays = Float64OrZero(f.DesignManDays)
	t.ActualTestManDays = Float64OrZero(f.TestManDays)
	t.ActualPMManDays = Float64OrZero(f.PMManDays)
	t.ActualTotalManDays = t.ActualReqManDays + t.ActualDesignManDays + t.ActualDevManDays +
		t.ActualTestManDays + t.ActualPMManDays

	t.DefectRemovalEfficiency = DefectRemovalEfficiency(f.SITDefects, f.UATDefects)
	return t
}

// DefectRemovalEfficiency is the percentage of all defects that were caught in
// SIT. It is 0 when no defects were recorded.
func DefectRemovalEfficiency(sit, uat int) float64 {
	total := sit + uat
	if total == 0 {
		return 0
	}
	return 100 * float64(sit) / float64(total)
}

// FeatureSummary is the persisted view of a feature.
type FeatureSummary struct {
	ID              int64
	ProjectID       int64
	Name            string
	OrgProductivity float64
	ManDayHours     float64
	StartDate       *string
	EndDate         *string
	SITDefects      int
	UATDefects      int
	Totals          FeatureTotals
	StoryCount      int
}

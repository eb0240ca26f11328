package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func TestDefectRemovalEfficiency_NoDefects(t *testing.T) {
	assert.Equal(t, 0.0, DefectRemovalEfficiency(0, 0))
}

func TestDefectRemovalEfficiency_Formula(t *testing.T) {
	assert.Equal(t, 75.0, DefectRemovalEfficiency(3, 1))
	assert.Equal(t, 100.0, DefectRemovalEfficiency(5, 0))
	assert.Equal(t, 0.0, DefectRemovalEfficiency(0, 7))
}

// TestDefectRemovalEfficiency_Property checks the formula over random
// non-negative defect counts.
func TestDefectRemovalEfficiency_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 500; trial++ {
		sit := rng.Intn(50)
		uat := rng.Intn(50)
		got := DefectRemovalEfficiency(sit, uat)
		if sit+uat == 0 {
			assert.Equal(t, 0.0, got, "trial %d", trial)
			continue
		}
		assert.Equal(t, 100*float64(sit)/float64(sit+uat), got, "trial %d", trial)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestFeatureTotals_EstimatesOnly(t *testing.T) {
	f := &Feature{Name: "Feat 1", OrgProductivity: 2, ManDayHours: 5}
	f.Stories = append(f.Stories, NewStory("Story 1", 10, f.ManDayHours, f.OrgProductivity))
	f.Stories = append(f.Stories, NewStory("Story 2", 15, f.ManDayHours, f.OrgProductivity))

	totals := f.Totals()
	assert.Equal(t, 10.0, totals.TotalStoryPoints)
	assert.Equal(t, 5.0, totals.TotalManDays)
	assert.Equal(t, 0.0, totals.ActualDevManDays)
	assert.Equal(t, 0.0, totals.ActualTotalManDays)
	assert.Equal(t, 0.0, totals.DefectRemovalEfficiency)
}

func TestFeatureTotals_ActualsAndPhases(t *testing.T) {
	f := &Feature{
		Name:            "Feat 1",
		OrgProductivity: 1.5,
		ManDayHours:     4,
		SITDefects:      9,
		UATDefects:      1,
		ReqManDays:      f64(1),
		DesignManDays:   f64(2),
		PMManDays:       f64(0.5),
	}
	s1 := NewStory("with actuals", 8, f.ManDayHours, f.OrgProductivity)
	s1.HoursActual = f64(12)
	s2 := NewStory("no actuals", 4, f.ManDayHours, f.OrgProductivity)
	f.Stories = []Story{s1, s2}

	totals := f.Totals()
	assert.Equal(t, 3.0, totals.ActualDevManDays)
	assert.Equal(t, 1.0, totals.ActualReqManDays)
	assert.Equal(t, 2.0, totals.ActualDesignManDays)
	assert.Equal(t, 0.0, totals.ActualTestManDays, "missing phase counts as zero")
	assert.Equal(t, 0.5, totals.ActualPMManDays)
	assert.Equal(t, 6.5, totals.ActualTotalManDays)
	assert.Equal(t, 90.0, totals.DefectRemovalEfficiency)
	assert.Equal(t, 4.5, totals.TotalStoryPoints)
	assert.Equal(t, 3.0, totals.TotalManDays)
}

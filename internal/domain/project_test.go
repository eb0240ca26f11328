package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_FeatureLookup(t *testing.T) {
	p := &Project{Name: "Proj A", Features: []*Feature{{Name: "Feat 1"}, {Name: "Feat 2"}}}

	assert.Same(t, p.Features[1], p.Feature("Feat 2"))
	assert.Nil(t, p.Feature("Feat 3"))
}

func TestProject_StoryCount(t *testing.T) {
	p := &Project{Features: []*Feature{
		{Name: "F1", Stories: []Story{{Title: "a"}, {Title: "b"}}},
		{Name: "F2", Stories: []Story{{Title: "c"}}},
	}}
	assert.Equal(t, 3, p.StoryCount())
}

func TestBatch_Counts(t *testing.T) {
	hrs := 8.0
	b := &Batch{Projects: []*Project{
		{Name: "A", Features: []*Feature{
			{Name: "F1", Stories: []Story{{Title: "s1", HoursActual: &hrs}, {Title: "s2"}}},
			{Name: "F2", Stories: []Story{{Title: "s3"}}},
		}},
		{Name: "B", Features: []*Feature{
			{Name: "F1", Stories: []Story{{Title: "s4", HoursActual: &hrs}}},
		}},
	}}

	assert.Equal(t, Summary{
		ProjectsCreated:            2,
		FeaturesCreated:            3,
		StoriesCreated:             4,
		ProductivityRecordsCreated: 2,
	}, b.Counts())
}

func TestHeaderConflict_String(t *testing.T) {
	c := HeaderConflict{Line: 4, Project: "Proj A", Feature: "Feat 1", Field: "Org Productivity", Kept: "2", Ignored: "3"}
	assert.Equal(t, "row 4: Proj A/Feat 1 Org Productivity 3 ignored, keeping 2", c.String())
}

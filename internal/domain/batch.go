package domain

import "fmt"

// Batch is the Project -> Feature -> Story tree built from one import.
// Projects keep first-seen order.
type Batch struct {
	Projects  []*Project
	Conflicts []HeaderConflict
}

// Counts reports how many rows of each kind the batch will create.
func (b *Batch) Counts() Summary {
	var s Summary
	for _, p := range b.Projects {
		s.ProjectsCreated++
		for _, f := range p.Features {
			s.FeaturesCreated++
			for _, st := range f.Stories {
				s.StoriesCreated++
				if st.HasActuals() {
					s.ProductivityRecordsCreated++
				}
			}
		}
	}
	return s
}

// HeaderConflict records a later row that disagreed with the header values a
// feature took from its first row. The first value is kept.
type HeaderConflict struct {
	Line    int
	Project string
	Feature string
	Field   string
	Kept    string
	Ignored string
}

func (c HeaderConflict) String() string {
	return fmt.Sprintf("row %d: %s/%s %s %s ignored, keeping %s",
		c.Line, c.Project, c.Feature, c.Field, c.Ignored, c.Kept)
}

// Summary counts the rows created by an import.
type Summary struct {
	ProjectsCreated            int `json:"projectsCreated"`
	FeaturesCreated            int `json:"featuresCreated"`
	StoriesCreated             int `json:"storiesCreated"`
	ProductivityRecordsCreated int `json:"productivityDataCreated"`
}

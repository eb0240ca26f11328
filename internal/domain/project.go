package domain

import "time"

// Project is the top level of an import batch. Features keep the order in
// which they were first seen.
type Project struct {
	Name        string
	Description string
	Features    []*Feature
}

// Feature returns the feature with the given name, or nil.
func (p *Project) Feature(name string) *Feature {
	for _, f := range p.Features {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// StoryCount returns the number of stories across all features.
func (p *Project) StoryCount() int {
	n := 0
	for _, f := range p.Features {
		n += len(f.Stories)
	}
	return n
}

// ProjectSummary is the persisted view of a project used by listings.
type ProjectSummary struct {
	ID           int64
	Name         string
	Description  string
	FeatureCount int
	StoryCount   int
	CreatedAt    time.Time
}

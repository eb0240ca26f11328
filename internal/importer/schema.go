package importer

import (
	"encoding/csv"
	"io"
)

// Column positions of the delivery template.
const (
	colProjectName = iota
	colProjectDescription
	colFeatureName
	colOrgProductivity
	colManDayHours
	colFeatureStart
	colFeatureEnd
	colSITDefects
	colUATDefects
	colStoryTitle
	colStoryHours
	colStoryStart
	colStoryEnd
	colCompleted
	colStoryHoursActual
	colStoryStartActual
	colStoryEndActual
	colReqManDays
	colDesignManDays
	colTestManDays
	colPMManDays

	fieldCount
)

// minHeaderColumns is the narrowest header accepted: everything up to and
// including the story hours estimate.
const minHeaderColumns = colStoryHours + 1

var columnNames = [fieldCount]string{
	colProjectName:        "Project Name",
	colProjectDescription: "Project Description",
	colFeatureName:        "Feature Name",
	colOrgProductivity:    "Org Productivity",
	colManDayHours:        "Man Days Hours",
	colFeatureStart:       "Feature Start Date",
	colFeatureEnd:         "Feature End Date",
	colSITDefects:         "SIT Defects",
	colUATDefects:         "UAT Defects",
	colStoryTitle:         "Story Title",
	colStoryHours:         "Story Hours",
	colStoryStart:         "Story Start Date",
	colStoryEnd:           "Story End Date",
	colCompleted:          "Completed",
	colStoryHoursActual:   "Story Actual Hours",
	colStoryStartActual:   "Story Actual Start Date",
	colStoryEndActual:     "Story Actual End Date",
	colReqManDays:         "Requirements Man Days",
	colDesignManDays:      "Design Man Days",
	colTestManDays:        "Testing Man Days",
	colPMManDays:          "PM Man Days",
}

// Row is one validated data line. It carries every template field but knows
// nothing about the project hierarchy.
type Row struct {
	Line int

	ProjectName        string
	ProjectDescription string
	FeatureName        string
	OrgProductivity    float64
	ManDayHours        float64
	FeatureStart       *string
	FeatureEnd         *string
	SITDefects         int
	UATDefects         int

	StoryTitle       string
	StoryHours       float64
	StoryStart       *string
	StoryEnd         *string
	Completed        bool
	StoryHoursActual *float64
	StoryStartActual *string
	StoryEndActual   *string

	ReqManDays    *float64
	DesignManDays *float64
	TestManDays   *float64
	PMManDays     *float64
}

// TemplateHeader returns the header line of the official import template.
func TemplateHeader() []string {
	h := make([]string, fieldCount)
	copy(h, columnNames[:])
	return h
}

// WriteTemplate writes an empty import template (header only) to w.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TemplateHeader()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// validateRecord converts one CSV record into a Row. Checks run in template
// order and stop at the first failing field.
func validateRecord(line int, record []string) (Row, error) {
	cells := padRecord(record)
	fail := func(col int, reason string) (Row, error) {
		return Row{}, &RowValidationError{Line: line, Field: columnNames[col], Reason: reason}
	}

	row := Row{
		Line:               line,
		ProjectName:        cells[colProjectName],
		ProjectDescription: cells[colProjectDescription],
		FeatureName:        cells[colFeatureName],
		StoryTitle:         cells[colStoryTitle],
	}

	if row.ProjectName == "" {
		return fail(colProjectName, reasonRequired)
	}
	if row.FeatureName == "" {
		return fail(colFeatureName, reasonRequired)
	}
	var ok bool
	if row.OrgProductivity, ok = positive(cells[colOrgProductivity]); !ok {
		return fail(colOrgProductivity, reasonPositive)
	}
	if row.ManDayHours, ok = positive(cells[colManDayHours]); !ok {
		return fail(colManDayHours, reasonPositive)
	}
	if row.StoryTitle == "" {
		return fail(colStoryTitle, reasonRequired)
	}
	if row.StoryHours, ok = positive(cells[colStoryHours]); !ok {
		return fail(colStoryHours, reasonPositive)
	}

	row.SITDefects = defectCount(cells[colSITDefects])
	row.UATDefects = defectCount(cells[colUATDefects])
	row.StoryHoursActual = actualHours(cells[colStoryHoursActual])
	row.ReqManDays = optionalNumber(cells[colReqManDays])
	row.DesignManDays = optionalNumber(cells[colDesignManDays])
	row.TestManDays = optionalNumber(cells[colTestManDays])
	row.PMManDays = optionalNumber(cells[colPMManDays])

	row.FeatureStart = optionalText(cells[colFeatureStart])
	row.FeatureEnd = optionalText(cells[colFeatureEnd])
	row.StoryStart = optionalText(cells[colStoryStart])
	row.StoryEnd = optionalText(cells[colStoryEnd])
	row.StoryStartActual = optionalText(cells[colStoryStartActual])
	row.StoryEndActual = optionalText(cells[colStoryEndActual])
	row.Completed = isCompleted(cells[colCompleted])

	return row, nil
}

// padRecord trims every cell and right-pads the record to the template width.
func padRecord(record []string) []string {
	n := len(record)
	if n < fieldCount {
		n = fieldCount
	}
	cells := make([]string, n)
	for i, c := range record {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseFinite(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func positive(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}
	v, ok := parseFinite(cell)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

// leadingNumber reads the numeric prefix of cell, so "8h" is 8 and "1,5" is 1.
// ok is false when the cell does not start with a number.
func leadingNumber(cell string) (float64, bool) {
	m := numberPrefix.FindString(cell)
	if m == "" {
		return 0, false
	}
	return parseFinite(m)
}

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// optionalNumber is nil unless the cell starts with a non-negative number.
// Placeholders such as "N/A" or "tbd" read as blank.
func optionalNumber(cell string) *float64 {
	v, ok := leadingNumber(cell)
	if !ok || v < 0 {
		return nil
	}
	return &v
}

// actualHours is nil unless the cell holds a positive number of hours.
func actualHours(cell string) *float64 {
	v := optionalNumber(cell)
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

// defectCount is the truncated numeric prefix of cell. Blank, unreadable and
// negative cells count as 0.
func defectCount(cell string) int {
	v, ok := leadingNumber(cell)
	if !ok || v < 0 {
		return 0
	}
	return int(v)
}

func optionalText(cell string) *string {
	if cell == "" {
		return nil
	}
	return &cell
}

func isCompleted(cell string) bool {
	return strings.EqualFold(cell, "TRUE") || cell == "1"
}

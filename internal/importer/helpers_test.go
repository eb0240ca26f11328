package importer

import (
	"strings"
)

// scenarioRow is the single-row example from the import guide.
func scenarioRow() []string {
	return []string{"Proj A", "", "Feat 1", "2", "5", "", "", "0", "0", "Story 1", "10", "", "", "", "", "", "", "", "", "", ""}
}

// withCell returns a copy of row with col set to v.
func withCell(row []string, col int, v string) []string {
	out := make([]string, len(row))
	copy(out, row)
	out[col] = v
	return out
}

// csvInput renders the template header followed by rows. Cells are written
// verbatim, so tests must not use commas or quotes inside values.
func csvInput(rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(TemplateHeader(), ","))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteString("\n")
	}
	return b.String()
}

package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/throughput/internal/domain"
	"github.com/alexanderramin/throughput/internal/importer"
	"github.com/alexanderramin/throughput/internal/service"
	"github.com/alexanderramin/throughput/internal/testutil"
)

func TestFormatImportResult(t *testing.T) {
	out := stripANSI(FormatImportResult(&service.ImportResult{
		RunID:   "0b7c9a8e-1111-2222-3333-444455556666",
		Source:  "scenario.csv",
		Summary: testutil.ScenarioSummary,
	}))

	assert.Contains(t, out, "Import successful")
	assert.Regexp(t, `Projects\s+2`, out)
	assert.Regexp(t, `Features\s+2`, out)
	assert.Regexp(t, `Stories\s+3`, out)
	assert.Regexp(t, `Productivity records\s+1`, out)
	assert.Contains(t, out, "run 0b7c9a8e-1111-2222-3333-444455556666  scenario.csv")
	assert.NotContains(t, out, "IGNORED")
}

func TestFormatImportResult_Conflicts(t *testing.T) {
	out := stripANSI(FormatImportResult(&service.ImportResult{
		RunID:  "r1",
		Source: "x.csv",
		Conflicts: []domain.HeaderConflict{
			{Line: 3, Project: "P", Feature: "F", Field: "Org Productivity", Kept: "2", Ignored: "3"},
		},
	}))
	assert.Contains(t, out, "IGNORED FEATURE VALUES (1)")
	assert.Contains(t, out, "row 3: P/F Org Productivity 3 ignored, keeping 2")
}

func TestFormatPreview(t *testing.T) {
	batch, err := importer.Parse(strings.NewReader(testutil.ScenarioCSV()))
	require.NoError(t, err)

	out := stripANSI(FormatPreview(&service.PreviewResult{
		Source:  "scenario.csv",
		Batch:   batch,
		Summary: batch.Counts(),
	}))

	assert.Contains(t, out, "IMPORT PREVIEW: SCENARIO.CSV")
	assert.Regexp(t, `Proj A\s+Feat 1\s+2\s+6\s+3\s+75\.0%`, out)
	assert.Regexp(t, `Proj B\s+Feat 2\s+1\s+8\s+4\s+0\.0%`, out)
}

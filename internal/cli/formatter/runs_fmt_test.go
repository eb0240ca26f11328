package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/throughput/internal/domain"
)

func TestFormatRunList(t *testing.T) {
	out := stripANSI(FormatRunList([]domain.ImportRun{
		{
			ID:        "0b7c9a8e-1111-2222-3333-444455556666",
			Source:    "q1.csv",
			Summary:   domain.Summary{ProjectsCreated: 2, FeaturesCreated: 2, StoriesCreated: 3, ProductivityRecordsCreated: 1},
			Conflicts: 3,
			CreatedAt: time.Now(),
		},
	}))

	assert.Contains(t, out, "IMPORT RUNS")
	assert.Regexp(t, `0b7c9a8e\s+q1\.csv\s+2\s+2\s+3\s+1\s+3\s+Just now`, out)
	assert.NotContains(t, out, "1111-2222")
}

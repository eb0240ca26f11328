package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "N"},
		[][]string{{"a", "1"}, {"longer", "100"}},
		1,
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "NAME      N", lines[0])
	assert.Equal(t, "──────  ───", lines[1])
	assert.Equal(t, "a         1", lines[2])
	assert.Equal(t, "longer  100", lines[3])
}

func TestRenderTable_StyledCellsMeasuredByVisibleWidth(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleGreen.Render("xx"), "y"}, {"xxxx", "z"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "xx    y", lines[2])
	assert.Equal(t, "xxxx  z", lines[3])
}

func TestRenderTable_ShortRowsAndNoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))

	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{{"only"}}))
	assert.Contains(t, out, "only")
}

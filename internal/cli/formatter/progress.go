package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderCompletion renders a bar like [████░░░░] 2/4 for completed stories.
// The bar is green when everything is done, yellow past half, red otherwise.
func RenderCompletion(done, total, width int) string {
	if width < 2 {
		width = 2
	}
	if total <= 0 {
		return fmt.Sprintf("[%s] %s", StyleDim.Render(strings.Repeat(emptyBlock, width)), Dim("0/0"))
	}
	done = min(max(done, 0), total)

	filled := done * width / total
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleRed
	switch {
	case done == total:
		style = StyleGreen
	case done*2 >= total:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), done, total)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45% for a
// percentage in 0..100. The bar is green from 67%, yellow from 33%, red below.
func RenderProgress(pct int, width int) string {
	bar, style := progressBar(pct, width)
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), clampPct(pct))
}

// RenderCompactBar renders the bar alone, without brackets or percentage.
// dim draws it in the muted color regardless of value.
func RenderCompactBar(pct int, width int, dim bool) string {
	bar, style := progressBar(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return style.Render(bar)
}

func progressBar(pct int, width int) (string, lipgloss.Style) {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 67 {
		style = StyleYellow
	}
	return bar, style
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderQuotaBar renders monthly usage like [██░] 2/3. The bar turns
// yellow with one session left and red when the allowance is spent.
func RenderQuotaBar(used, limit int) string {
	if limit <= 0 {
		return fmt.Sprintf("%d used", used)
	}
	filled := used
	if filled > limit {
		filled = limit
	}
	if filled < 0 {
		filled = 0
	}

	style := StyleGreen
	switch {
	case filled >= limit:
		style = StyleRed
	case limit-filled == 1:
		style = StyleYellow
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, limit-filled)
	return fmt.Sprintf("[%s] %d/%d", style.Render(bar), used, limit)
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// PaymentProgress renders the share of the total cost received so far, like
// [████░░░░] 45%. Returns "" when the total is unknown.
func PaymentProgress(received, total decimal.Decimal, width int) string {
	if !total.IsPositive() {
		return ""
	}
	if width < 2 {
		width = 2
	}
	pct := received.Div(total).InexactFloat64()
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleYellow
	if pct >= 1 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

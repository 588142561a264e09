package formatter

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentProgress(t *testing.T) {
	d := decimal.NewFromInt

	tests := []struct {
		name     string
		received decimal.Decimal
		total    decimal.Decimal
		filled   int
		pct      string
	}{
		{"none", d(0), d(100), 0, "  0%"},
		{"quarter", d(25), d(100), 2, " 25%"},
		{"full", d(100), d(100), 8, "100%"},
		{"overpaid clamps", d(150), d(100), 8, "100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(PaymentProgress(tt.received, tt.total, 8))
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 8-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.pct), got)
		})
	}
}

func TestPaymentProgress_UnknownTotal(t *testing.T) {
	assert.Empty(t, PaymentProgress(decimal.NewFromInt(5), decimal.Zero, 8))
}

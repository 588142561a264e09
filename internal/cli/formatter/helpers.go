package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"

	"github.com/alexanderramin/vgn360/internal/domain"
)

// NA is shown wherever the server sent no value.
const NA = "N/A"

// RenderBox wraps content in a rounded-border box with an optional section
// title, shown in capitals.
func RenderBox(title string, content string) string {
	return RenderBoxRaw(strings.ToUpper(title), content)
}

// RenderBoxRaw is RenderBox with the title shown as given. Use it for
// titles that carry data such as project names.
func RenderBoxRaw(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBrand).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(title)
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// OrNA returns s, or NA when s is blank.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

// Rupees formats an amount as ₹1,250,000 (two decimals when fractional).
func Rupees(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "₹" + humanize.Comma(d.IntPart())
	}
	return "₹" + humanize.CommafWithDigits(d.Round(2).InexactFloat64(), 2)
}

// Money is Rupees, except that zero renders as NA.
func Money(d decimal.Decimal) string {
	if d.IsZero() {
		return NA
	}
	return Rupees(d)
}

// DisplayDate renders a /Date(ms)/ value as a calendar date. Any other
// non-empty text is returned as sent.
func DisplayDate(raw string) string {
	if t, ok := domain.ParseAPIDate(raw); ok {
		return t.In(time.Local).Format("02 Jan 2006")
	}
	return OrNA(raw)
}

// DisplayPhone renders a local mobile number in international form,
// e.g. "+91 98843 58122".
func DisplayPhone(mobile string) string {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return NA
	}
	num, err := libphonenumber.Parse(mobile, "IN")
	if err != nil {
		return domain.DefaultCountryCode + " " + mobile
	}
	return libphonenumber.Format(num, libphonenumber.INTERNATIONAL)
}

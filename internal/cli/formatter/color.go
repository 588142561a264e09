package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Brand palette: VGN red on a warm neutral.
var (
	ColorBrand  = lipgloss.Color("#b4151a")
	ColorGreen  = lipgloss.Color("#5fa35f")
	ColorYellow = lipgloss.Color("#e0a526")
	ColorRed    = lipgloss.Color("#e5484d")
	ColorDim    = lipgloss.Color("#8a8178")
	ColorFg     = lipgloss.Color("#f2ece4")
	ColorHeader = lipgloss.Color("#d9473f")
)

// Predefined lipgloss styles.
var (
	StyleBrand  = lipgloss.NewStyle().Foreground(ColorBrand).Bold(true)
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill colors a booking status returned by the server.
func StatusPill(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "":
		return StyleDim.Render("N/A")
	case "booked", "registered", "completed":
		return StyleGreen.Render("● " + status)
	case "cancelled", "canceled":
		return StyleRed.Render("✖ " + status)
	default:
		return StyleYellow.Render("○ " + status)
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Alert renders a one-line notice; failures in red, everything else green.
func Alert(text string, failed bool) string {
	if failed {
		return StyleRed.Render("! " + text)
	}
	return StyleGreen.Render("✔ " + text)
}

package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
)

// adView is the promotion shown once after sign-in.
type adView struct {
	state *SharedState
}

func newAdView(state *SharedState) *adView {
	return &adView{state: state}
}

func (v *adView) ID() ViewID    { return ViewAd }
func (v *adView) Title() string { return "Offers" }

func (v *adView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter/esc", "close")),
	}
}

func (v *adView) Init() tea.Cmd { return nil }

func (v *adView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			return v, replaceWith(nav.Dashboard, nil)
		}
	}
	return v, nil
}

func (v *adView) View() string {
	var lines []string
	lines = append(lines, formatter.StyleBrand.Render("Homes that grow with you"))
	lines = append(lines, "")
	for _, s := range screen.DefaultSlides {
		lines = append(lines, "• "+s.Caption)
	}
	lines = append(lines, "", formatter.Dim(screen.DefaultSlides[0].URL))
	return "\n" + formatter.RenderBox("New launches", strings.Join(lines, "\n")) + "\n"
}

package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/nav"
)

type splashDoneMsg struct{ scopeTag }

// splashView shows the brand for a moment, then hands over to login.
type splashView struct {
	scoped
	state *SharedState
}

func newSplashView(state *SharedState) *splashView {
	return &splashView{scoped: newScoped(state), state: state}
}

func (v *splashView) ID() ViewID               { return ViewSplash }
func (v *splashView) Title() string            { return "" }
func (v *splashView) ShortHelp() []key.Binding { return nil }

func (v *splashView) Init() tea.Cmd {
	tag := v.tag()
	return scopedTick(v.sc, v.state.SplashDelay, func() tea.Msg { return splashDoneMsg{tag} })
}

func (v *splashView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(splashDoneMsg); ok {
		return v, replaceWith(nav.Login, nil)
	}
	return v, nil
}

func (v *splashView) View() string {
	logo := formatter.RenderBox("", strings.Join([]string{
		formatter.StyleBrand.Render("V G N   3 6 0"),
		formatter.Dim("Your home, at a glance"),
	}, "\n"))
	if v.state.Width == 0 {
		return "\n" + logo
	}
	return lipgloss.Place(v.state.Width, v.state.ContentHeight(), lipgloss.Center, lipgloss.Center, logo)
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
)

// Failure texts of the list and detail screens.
const (
	msgProjectsFailed = "Failed to load projects. Please try again."
	msgDetailFailed   = "Failed to load project details. Please try again."
	msgReceiptsFailed = "Failed to load receipt details. Please try again."
)

// errNoSessionMobile stands in for a fetch that could not start because the
// session holds no usable number.
var errNoSessionMobile = errors.New("session has no valid mobile number")

// projectsLoadedMsg carries the customer's booked units.
type projectsLoadedMsg struct {
	scopeTag
	projects []domain.ProjectSummary
	err      error
}

// bookedHistoryView shows the customer's booked units with a live filter.
type bookedHistoryView struct {
	scoped
	state  *SharedState
	load   screen.Load[[]domain.ProjectSummary]
	cursor int

	// Filtering
	filtering bool
	filter    string
}

func newBookedHistoryView(state *SharedState) *bookedHistoryView {
	return &bookedHistoryView{
		scoped: newScoped(state),
		state:  state,
		load:   screen.NewLoad[[]domain.ProjectSummary](),
	}
}

func (v *bookedHistoryView) ID() ViewID    { return ViewBookedHistory }
func (v *bookedHistoryView) Title() string { return "Booked history" }

func (v *bookedHistoryView) ShortHelp() []key.Binding {
	if v.load.State == screen.Failed {
		return []key.Binding{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *bookedHistoryView) Init() tea.Cmd {
	return v.loadProjects()
}

func (v *bookedHistoryView) loadProjects() tea.Cmd {
	v.load = screen.NewLoad[[]domain.ProjectSummary]()
	mobile := v.state.Session().Get().Mobile
	tag := v.tag()
	if domain.ValidatePhone(mobile) != "" {
		return func() tea.Msg { return projectsLoadedMsg{scopeTag: tag, err: errNoSessionMobile} }
	}
	client, ctx := v.state.Gateway(), v.sc.Context()
	return func() tea.Msg {
		projects, err := client.ListProjects(ctx, mobile)
		return projectsLoadedMsg{scopeTag: tag, projects: projects, err: err}
	}
}

func (v *bookedHistoryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.err != nil {
			v.state.Logger().Error().Err(msg.err).Msg("list projects failed")
		}
		v.load = v.load.Resolve(msg.projects, msg.err, screen.IsEmptySlice[domain.ProjectSummary], msgProjectsFailed)
		v.cursor = 0
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *bookedHistoryView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.load.State == screen.Failed {
		if msg.String() == "r" {
			return v, v.loadProjects()
		}
		return v, nil
	}

	visible := v.visibleProjects()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			p := visible[v.cursor]
			return v, navigate(nav.ProjectDetails, nav.ProjectDetailsParams{
				ProjectID:     p.ProjectID,
				ProjectTranID: p.ProjectTranID,
				ProjectName:   p.Name,
				ProjectSite:   p.Site,
				UnitNo:        p.UnitNo,
			})
		}
	case "/":
		if v.load.State == screen.Loaded {
			v.filtering = true
		}
	}
	return v, nil
}

func (v *bookedHistoryView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
		return v, nil
	case tea.KeyEnter:
		v.filtering = false
		return v, nil
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			r := []rune(v.filter)
			v.filter = string(r[:len(r)-1])
			v.cursor = 0
		}
	case tea.KeySpace:
		v.filter += " "
		v.cursor = 0
	case tea.KeyRunes:
		v.filter += string(msg.Runes)
		v.cursor = 0
	}
	return v, nil
}

func (v *bookedHistoryView) visibleProjects() []domain.ProjectSummary {
	return domain.FilterProjects(v.load.Data, v.filter)
}

func (v *bookedHistoryView) View() string {
	switch v.load.State {
	case screen.Loading:
		return "\n  " + formatter.Dim("Loading projects...")
	case screen.Failed:
		return "\n  " + formatter.Alert(v.load.Message, true) + "\n\n  " + formatter.Dim("Press r to try again.")
	case screen.Empty:
		return "\n  " + formatter.Dim("No booked projects yet.")
	}

	visible := v.visibleProjects()

	var b strings.Builder
	b.WriteString("\n")

	if v.filtering || v.filter != "" {
		caret := ""
		if v.filtering {
			caret = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + caret + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No projects match your search.") + "\n")
		return b.String()
	}

	for i, p := range visible {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleBrand.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
			cursor,
			nameStyle.Render(padRight(formatter.OrNA(p.Name), 24)),
			formatter.Dim(padRight("Unit "+formatter.OrNA(p.UnitNo), 12)),
			formatter.Dim(formatter.OrNA(p.Site)),
		))
	}

	return b.String()
}

// padRight pads a string to a minimum width, truncating if needed.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
)

type projectDetailLoadedMsg struct {
	scopeTag
	detail *domain.ProjectDetailRecord
	err    error
}

// projectDetailsView shows the booking card of one unit.
type projectDetailsView struct {
	scoped
	state  *SharedState
	params nav.ProjectDetailsParams
	load   screen.Load[*domain.ProjectDetailRecord]
}

func newProjectDetailsView(state *SharedState, p nav.ProjectDetailsParams) *projectDetailsView {
	return &projectDetailsView{
		scoped: newScoped(state),
		state:  state,
		params: p,
		load:   screen.NewLoad[*domain.ProjectDetailRecord](),
	}
}

func (v *projectDetailsView) ID() ViewID { return ViewProjectDetails }

func (v *projectDetailsView) Title() string {
	return formatter.OrNA(v.params.ProjectName)
}

func (v *projectDetailsView) ShortHelp() []key.Binding {
	switch {
	case v.load.State == screen.Failed:
		return []key.Binding{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))}
	case v.canViewReceipts():
		return []key.Binding{key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view receipts"))}
	}
	return nil
}

func (v *projectDetailsView) Init() tea.Cmd {
	return v.loadDetail()
}

func (v *projectDetailsView) loadDetail() tea.Cmd {
	v.load = screen.NewLoad[*domain.ProjectDetailRecord]()
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	projectID, tranID := v.params.ProjectID, v.params.ProjectTranID
	return func() tea.Msg {
		d, err := client.ProjectDetail(ctx, projectID, tranID)
		return projectDetailLoadedMsg{scopeTag: tag, detail: d, err: err}
	}
}

// canViewReceipts is true once some payment has been received.
func (v *projectDetailsView) canViewReceipts() bool {
	return v.load.State == screen.Loaded && v.load.Data.HasReceipts()
}

func (v *projectDetailsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case projectDetailLoadedMsg:
		if msg.err != nil {
			v.state.Logger().Error().Err(msg.err).
				Str("project_id", v.params.ProjectID).
				Str("tran_id", v.params.ProjectTranID).
				Msg("fetch project detail failed")
		}
		v.load = v.load.Resolve(msg.detail, msg.err, screen.IsNil[domain.ProjectDetailRecord], msgDetailFailed)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if v.load.State == screen.Failed {
				return v, v.loadDetail()
			}
		case "v", "enter":
			if v.canViewReceipts() {
				return v, navigate(nav.ReceiptDetails, nav.ReceiptDetailsParams{
					ProjectID:     v.params.ProjectID,
					ProjectTranID: v.params.ProjectTranID,
					ProjectName:   v.params.ProjectName,
				})
			}
		}
	}
	return v, nil
}

func (v *projectDetailsView) View() string {
	switch v.load.State {
	case screen.Loading:
		return "\n  " + formatter.Dim("Loading project details...")
	case screen.Failed:
		return "\n  " + formatter.Alert(v.load.Message, true) + "\n\n  " + formatter.Dim("Press r to try again.")
	}

	heading := formatter.ProjectHeading{
		Name:   v.params.ProjectName,
		Site:   v.params.ProjectSite,
		UnitNo: v.params.UnitNo,
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.FormatProjectDetail(heading, v.load.Data))
	b.WriteString("\n")
	if v.canViewReceipts() {
		b.WriteString("\n  " + formatter.Bold("[v] View receipts") + "\n")
	}
	return b.String()
}

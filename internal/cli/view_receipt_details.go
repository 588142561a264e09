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

type receiptsLoadedMsg struct {
	scopeTag
	receipts []domain.ReceiptRecord
	err      error
}

// receiptDetailsView lists the payments of one booking as expandable rows.
type receiptDetailsView struct {
	scoped
	state    *SharedState
	params   nav.ReceiptDetailsParams
	load     screen.Load[[]domain.ReceiptRecord]
	cursor   int
	expanded map[int]bool
}

func newReceiptDetailsView(state *SharedState, p nav.ReceiptDetailsParams) *receiptDetailsView {
	return &receiptDetailsView{
		scoped:   newScoped(state),
		state:    state,
		params:   p,
		load:     screen.NewLoad[[]domain.ReceiptRecord](),
		expanded: make(map[int]bool),
	}
}

func (v *receiptDetailsView) ID() ViewID    { return ViewReceiptDetails }
func (v *receiptDetailsView) Title() string { return "Receipts" }

func (v *receiptDetailsView) ShortHelp() []key.Binding {
	if v.load.State == screen.Failed {
		return []key.Binding{key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry"))}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
	}
}

func (v *receiptDetailsView) Init() tea.Cmd {
	return v.loadReceipts()
}

func (v *receiptDetailsView) loadReceipts() tea.Cmd {
	v.load = screen.NewLoad[[]domain.ReceiptRecord]()
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	projectID, tranID := v.params.ProjectID, v.params.ProjectTranID
	return func() tea.Msg {
		r, err := client.Receipts(ctx, projectID, tranID)
		return receiptsLoadedMsg{scopeTag: tag, receipts: r, err: err}
	}
}

func (v *receiptDetailsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case receiptsLoadedMsg:
		if msg.err != nil {
			v.state.Logger().Error().Err(msg.err).
				Str("project_id", v.params.ProjectID).
				Str("tran_id", v.params.ProjectTranID).
				Msg("fetch receipts failed")
		}
		v.load = v.load.Resolve(msg.receipts, msg.err, screen.IsEmptySlice[domain.ReceiptRecord], msgReceiptsFailed)
		v.cursor = 0
		v.expanded = make(map[int]bool)
		return v, nil

	case tea.KeyMsg:
		if v.load.State == screen.Failed {
			if msg.String() == "r" {
				return v, v.loadReceipts()
			}
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.load.Data)-1 {
				v.cursor++
			}
		case "enter", " ":
			if v.cursor < len(v.load.Data) {
				v.expanded[v.cursor] = !v.expanded[v.cursor]
			}
		}
	}
	return v, nil
}

func (v *receiptDetailsView) View() string {
	switch v.load.State {
	case screen.Loading:
		return "\n  " + formatter.Dim("Loading receipts...")
	case screen.Failed:
		return "\n  " + formatter.Alert(v.load.Message, true) + "\n\n  " + formatter.Dim("Press r to try again.")
	case screen.Empty:
		return "\n  " + formatter.Dim("No receipts found.")
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.params.ProjectName != "" {
		b.WriteString("  " + formatter.Header(v.params.ProjectName) + "\n\n")
	}

	total := v.load.Data[0].Amount
	for i, r := range v.load.Data {
		if i > 0 {
			total = total.Add(r.Amount)
		}
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleBrand.Render("▌ ")
		}
		card := formatter.FormatReceiptCard(r, v.expanded[i])
		b.WriteString(cursor + strings.ReplaceAll(card, "\n", "\n  ") + "\n")
	}

	b.WriteString("\n  " + formatter.Dim("Total received ") + formatter.Bold(formatter.Rupees(total)) + "\n")
	return b.String()
}

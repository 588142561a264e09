package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
)

type referrerLoadedMsg struct {
	scopeTag
	referrer domain.Customer
	err      error
}

type leadSubmittedMsg struct {
	scopeTag
	err error
}

// leadFormView wraps the enquiry or referral huh.Form. The form machine
// decides when a submission may go out and what alert follows it.
type leadFormView struct {
	scoped
	state   *SharedState
	id      ViewID
	machine *screen.FormMachine
	fields  *leadFormFields
	form    *huh.Form

	// Referral only: the signed-in customer making the referral.
	referrer domain.Customer
}

func newLeadFormView(state *SharedState, id ViewID) *leadFormView {
	kind := domain.LeadEnquiry
	if id == ViewReferral {
		kind = domain.LeadReferral
	}
	v := &leadFormView{
		scoped:   newScoped(state),
		state:    state,
		id:       id,
		machine:  screen.NewFormMachine(kind),
		fields:   &leadFormFields{},
		referrer: domain.Customer{Mobile: state.Session().Get().Mobile},
	}
	v.form = leadHuhForm(kind, v.fields)
	return v
}

func (v *leadFormView) ID() ViewID { return v.id }

func (v *leadFormView) Title() string {
	if v.id == ViewReferral {
		return "Refer a friend"
	}
	return "Enquiry"
}

func (v *leadFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter/tab", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dashboard")),
	}
}

func (v *leadFormView) Init() tea.Cmd {
	if v.machine.Kind != domain.LeadReferral {
		return v.form.Init()
	}
	return tea.Batch(v.form.Init(), v.loadReferrer())
}

func (v *leadFormView) loadReferrer() tea.Cmd {
	mobile := v.referrer.Mobile
	if domain.ValidatePhone(mobile) != "" {
		return nil
	}
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	return func() tea.Msg {
		ref, err := lookupReferrer(ctx, client, mobile)
		return referrerLoadedMsg{scopeTag: tag, referrer: ref, err: err}
	}
}

func (v *leadFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case referrerLoadedMsg:
		if msg.err != nil {
			v.state.Logger().Warn().Err(msg.err).Msg("referrer lookup failed")
		}
		v.referrer = msg.referrer
		return v, nil

	case leadSubmittedMsg:
		return v, v.handleSubmitted(msg)

	case sessionChangedMsg:
		if v.machine.Kind == domain.LeadReferral && msg.next.Mobile != v.referrer.Mobile {
			v.referrer = domain.Customer{Mobile: msg.next.Mobile}
			return v, v.loadReferrer()
		}
		return v, nil

	case tea.KeyMsg:
		if v.machine.State() == screen.Submitting {
			return v, nil
		}
		if msg.Type == tea.KeyEsc {
			return v, navigate(nav.Dashboard, nil)
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, tea.Batch(cmd, v.submit())
	}
	return v, cmd
}

// submit runs the machine's validation and, when it passes, sends the lead.
// A rejected form is rebuilt over the same values so the user can fix it.
func (v *leadFormView) submit() tea.Cmd {
	v.machine.Form = v.fields.leadForm()
	ok, err := v.machine.Submit()
	if err != nil {
		v.state.Logger().Warn().Err(err).Msg("submit ignored")
		return nil
	}
	if !ok {
		return v.resetForm()
	}

	lead := v.machine.Lead(v.referrer)
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	return func() tea.Msg {
		return leadSubmittedMsg{scopeTag: tag, err: client.SubmitLead(ctx, lead)}
	}
}

func (v *leadFormView) handleSubmitted(msg leadSubmittedMsg) tea.Cmd {
	if msg.err != nil {
		v.state.Logger().Error().Err(msg.err).Str("lead", string(v.machine.Kind)).Msg("lead submission failed")
		_ = v.machine.Fail(gateway.UserMessage(msg.err, v.machine.FailureFallback()))
		return v.resetForm()
	}
	if err := v.machine.Succeed(); err != nil {
		return nil
	}
	return navigateWithNotice(nav.Dashboard, nil, v.machine.Alert)
}

func (v *leadFormView) resetForm() tea.Cmd {
	v.form = leadHuhForm(v.machine.Kind, v.fields)
	return v.form.Init()
}

func (v *leadFormView) View() string {
	var b strings.Builder

	b.WriteString("\n")
	if v.machine.Kind == domain.LeadReferral {
		name := formatter.OrNA(v.referrer.Name)
		b.WriteString("  " + formatter.Dim("Referred by ") + formatter.Bold(name) +
			formatter.Dim(" · "+formatter.DisplayPhone(v.referrer.Mobile)) + "\n\n")
	}

	for _, f := range fieldOrder {
		if msg, ok := v.machine.Errors[f]; ok {
			b.WriteString("  " + formatter.StyleRed.Render("• "+msg) + "\n")
		}
	}
	if v.machine.Alert != "" && v.machine.State() == screen.Editing {
		b.WriteString("  " + formatter.Alert(v.machine.Alert, true) + "\n")
	}
	if len(v.machine.Errors) > 0 || v.machine.Alert != "" {
		b.WriteString("\n")
	}

	if v.machine.State() == screen.Submitting {
		b.WriteString("  " + formatter.Dim("Submitting...") + "\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/nav"
)

// appModel is the root bubbletea Model for the TUI.
// It keeps one view per router frame; every transition goes through the
// router first and the view stack follows its outcome.
type appModel struct {
	state     *SharedState
	router    *nav.Router
	viewStack []View
	quitting  bool

	// Transient output (notices, refused transitions) displayed over the view.
	lastOutput string

	// Scrollable viewport for output that exceeds terminal height.
	outputVP     viewport.Model
	outputActive bool
}

func newAppModel(state *SharedState) appModel {
	return newAppModelAt(state, nav.To(nav.Splash, nil))
}

// newAppModelAt starts the app on an arbitrary screen.
func newAppModelAt(state *SharedState, start nav.Route) appModel {
	router, err := nav.NewRouter(start)
	if err != nil {
		state.Logger().Warn().Err(err).Str("route", start.String()).Msg("invalid start route, using splash")
		router, _ = nav.NewRouter(nav.To(nav.Splash, nil))
	}

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := appModel{
		state:    state,
		router:   router,
		outputVP: vp,
	}
	m.viewStack = []View{m.buildView(router.Current())}
	return m
}

// buildView creates the view for a validated route.
func (m *appModel) buildView(r nav.Route) View {
	switch r.Screen {
	case nav.Login:
		return newLoginView(m.state)
	case nav.OTP:
		return newOTPView(m.state, r.Params.(nav.OTPParams))
	case nav.AdScreen:
		return newAdView(m.state)
	case nav.Dashboard:
		return newDashboardView(m.state)
	case nav.EnquiryForm:
		return newLeadFormView(m.state, ViewEnquiry)
	case nav.ReferralForm:
		return newLeadFormView(m.state, ViewReferral)
	case nav.BookedHistory:
		return newBookedHistoryView(m.state)
	case nav.ProjectDetails:
		return newProjectDetailsView(m.state, r.Params.(nav.ProjectDetailsParams))
	case nav.ReceiptDetails:
		return newReceiptDetailsView(m.state, r.Params.(nav.ReceiptDetailsParams))
	default:
		return newSplashView(m.state)
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// popViews tears down the top n views.
func (m *appModel) popViews(n int) {
	for i := 0; i < n && len(m.viewStack) > 1; i++ {
		closeView(m.activeView())
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if m.outputActive {
			m.outputVP.Width = msg.Width
			m.outputVP.Height = m.state.ContentHeight()
		}
		return m.forwardToActive(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}

	case navigateMsg:
		prev := m.router.Stack()
		t, err := m.router.Navigate(msg.route)
		if err != nil {
			return m.refuse(msg.route, err)
		}
		cmd := m.apply(t, prev)
		if msg.notice != "" {
			m.setOutput("\n  " + formatter.Alert(msg.notice, false))
		}
		return m, cmd

	case replaceMsg:
		t, err := m.router.Replace(msg.route)
		if err != nil {
			return m.refuse(msg.route, err)
		}
		return m, m.apply(t, nil)

	case backMsg:
		t, err := m.router.Back()
		if err != nil {
			m.state.Logger().Debug().Err(err).Msg("back ignored")
			return m, nil
		}
		return m, m.apply(t, nil)

	case sessionChangedMsg:
		// Every screen reads the session; the ones below the top refresh too.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.setOutput(msg.output)
		return m, nil

	case scopedMsg:
		return m.deliverScoped(msg)

	}

	return m.forwardToActive(msg)
}

// apply mirrors a router transition on the view stack. prev is the router
// stack before a Navigate; it decides whether a PopTo target keeps its view.
func (m *appModel) apply(t nav.Transition, prev []nav.Route) tea.Cmd {
	m.state.Logger().Debug().
		Str("kind", t.Kind.String()).
		Str("from", string(t.From.Screen)).
		Str("to", string(t.To.Screen)).
		Msg("navigate")
	m.clearOutput()

	switch t.Kind {
	case nav.Push:
		v := m.buildView(t.To)
		m.viewStack = append(m.viewStack, v)
		return v.Init()

	case nav.PopTo:
		m.popViews(t.Removed)
		i := len(m.viewStack) - 1
		if i < len(prev) && prev[i].Params == t.To.Params {
			return nil
		}
		closeView(m.viewStack[i])
		v := m.buildView(t.To)
		m.viewStack[i] = v
		return v.Init()

	case nav.Replace:
		closeView(m.activeView())
		v := m.buildView(t.To)
		m.setActiveView(v)
		return v.Init()

	case nav.Pop:
		m.popViews(t.Removed)
	}
	return nil
}

// refuse reports a transition the router rejected. The current screen stays.
func (m appModel) refuse(r nav.Route, err error) (tea.Model, tea.Cmd) {
	m.state.Logger().Warn().Err(err).Str("route", r.String()).Msg("navigation refused")
	m.setOutput("\n  " + formatter.Alert(fmt.Sprintf("Cannot open %s: %v", r.Screen, err), true))
	return m, nil
}

// deliverScoped hands an async result to the view that started it. Results
// whose view has been torn down are dropped.
func (m appModel) deliverScoped(msg scopedMsg) (tea.Model, tea.Cmd) {
	for i, v := range m.viewStack {
		s, ok := v.(scopedView)
		if !ok || s.scope().ID() != msg.scopeID() {
			continue
		}
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		return m, cmd
	}
	m.state.Logger().Debug().Str("scope", msg.scopeID()).Msgf("dropped %T", msg)
	return m, nil
}

func (m appModel) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// When output is displayed, intercept scroll keys for the viewport.
	// Non-scroll keys dismiss the output, then fall through to normal handling.
	if m.outputActive {
		if isOutputScrollKey(msg) && m.outputVP.TotalLineCount() > m.outputVP.Height {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	// Views with their own text input receive every key, including q and esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		return m.forwardToActive(msg)
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc && nav.HasNativeBack(m.router.Current().Screen):
		return m, goBack()
	}

	return m.forwardToActive(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	// Content area: active view or scrollable output
	if m.lastOutput != "" {
		if m.outputActive && m.state.Height > 0 {
			sections = append(sections, m.outputVP.View())
		} else {
			sections = append(sections, m.lastOutput)
		}
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StyleBrand.Render("VGN 360")

	sess := m.state.Session().Get()
	var crumbs []string
	for _, v := range m.viewStack {
		// Sign-in screens stay on the stack but are behind the user once authenticated.
		if sess.IsAuthenticated && (v.ID() == ViewLogin || v.ID() == ViewOTP) {
			continue
		}
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if sess.IsAuthenticated {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(formatter.DisplayPhone(sess.Mobile)) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height {
		hints = append(hints, scrollIndicator(m.outputVP))
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))
		hints = append(hints, formatter.Dim("esc: dismiss"))
	} else if m.outputActive {
		hints = append(hints, formatter.Dim("any key: dismiss"))
	} else if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if nav.HasNativeBack(m.router.Current().Screen) {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		if !viewCapturesInput(v) {
			hints = append(hints, formatter.Dim("q: quit"))
		}
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

func (m *appModel) setOutput(text string) {
	m.lastOutput = text
	m.outputActive = true
	m.outputVP.SetContent(text)
	m.outputVP.Width = m.state.Width
	m.outputVP.Height = m.state.ContentHeight()
	m.outputVP.GotoTop()
}

// clearOutput dismisses the transient output and deactivates the viewport.
func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap returns a restricted keymap for the output viewport.
// Only arrow/page keys scroll; letter keys are left free so they can dismiss
// the output or trigger global shortcuts.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// isOutputScrollKey returns true if the key should scroll the output viewport
// rather than dismissing the output.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}

package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
	"github.com/alexanderramin/vgn360/internal/session"
	"github.com/alexanderramin/vgn360/internal/testutil"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func testModelAt(t *testing.T, route nav.Route) (appModel, *App) {
	t.Helper()
	app, _ := testTUIApp(t)
	state := newSharedState(context.Background(), app)
	return newAppModelAt(state, route), app
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	model, cmd := m.Update(msg)
	next, ok := model.(appModel)
	require.True(t, ok)
	return next, cmd
}

func TestNewAppModelStartsAtSplash(t *testing.T) {
	app, _ := testTUIApp(t)
	m := newAppModel(newSharedState(context.Background(), app))

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewSplash, m.activeView().ID())
	assert.Equal(t, nav.Splash, m.router.Current().Screen)
}

func TestNewAppModelAt_InvalidStartFallsBackToSplash(t *testing.T) {
	m, _ := testModelAt(t, nav.To(nav.ProjectDetails, nav.ProjectDetailsParams{}))

	assert.Equal(t, ViewSplash, m.activeView().ID())
}

func TestAppModel_PushAndBack(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())

	m, cmd := update(t, m, navigateMsg{route: nav.To(nav.BookedHistory, nil)})
	require.NotNil(t, cmd, "pushed view starts loading")
	require.Len(t, m.viewStack, 2)
	history, ok := m.activeView().(*bookedHistoryView)
	require.True(t, ok)

	m, cmd = update(t, m, backMsg{})
	assert.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewDashboard, m.activeView().ID())
	assert.True(t, history.scope().Closed(), "popped view is closed")
}

func TestAppModel_PopToKeepsViewWithSameParams(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())
	dash := m.activeView()

	m, _ = update(t, m, navigateMsg{route: nav.To(nav.EnquiryForm, nil)})
	require.Len(t, m.viewStack, 2)
	form := m.activeView().(*leadFormView)

	m, cmd := update(t, m, navigateMsg{route: dashboardRoute(), notice: "saved"})
	assert.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Same(t, dash, m.activeView())
	assert.True(t, form.scope().Closed())
	assert.Contains(t, m.lastOutput, "saved")
}

func TestAppModel_ReplaceClosesPreviousView(t *testing.T) {
	m, _ := testModelAt(t, nav.To(nav.Splash, nil))
	splash := m.activeView().(*splashView)

	m, _ = update(t, m, replaceMsg{route: nav.To(nav.Login, nil)})
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewLogin, m.activeView().ID())
	assert.True(t, splash.scope().Closed())
}

func TestAppModel_RefusedNavigationKeepsScreen(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())

	m, cmd := update(t, m, navigateMsg{route: nav.To(nav.ReceiptDetails, nav.ReceiptDetailsParams{ProjectID: "1", ProjectTranID: "2"})})
	assert.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, []nav.Route{dashboardRoute()}, routesWithoutParams(m.router.Stack()))
	assert.Contains(t, m.lastOutput, "Cannot open ReceiptDetails")
}

func TestAppModel_BackWithoutNativeBackIsIgnored(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())

	m, cmd := update(t, m, backMsg{})
	assert.Nil(t, cmd)
	assert.Len(t, m.viewStack, 1)
	assert.Empty(t, m.lastOutput)
}

func TestAppModel_StaleScopedMessageDropped(t *testing.T) {
	app, gw := testTUIApp(t)
	m := newAppModelAt(newSharedState(context.Background(), app), dashboardRoute())
	m, _ = update(t, m, navigateMsg{route: nav.To(nav.BookedHistory, nil)})
	history := m.activeView().(*bookedHistoryView)
	stale := history.tag()

	m, _ = update(t, m, backMsg{})
	m, _ = update(t, m, navigateMsg{route: nav.To(nav.BookedHistory, nil)})
	fresh := m.activeView().(*bookedHistoryView)
	require.NotSame(t, history, fresh)

	m, cmd := update(t, m, projectsLoadedMsg{scopeTag: stale, projects: gw.projects})
	assert.Nil(t, cmd)
	assert.Equal(t, screen.Loading, fresh.load.State, "result for the closed view is not delivered")

	_, _ = update(t, m, projectsLoadedMsg{scopeTag: fresh.tag(), projects: gw.projects})
	assert.Equal(t, screen.Loaded, fresh.load.State)
	assert.Len(t, fresh.load.Data, 2)
}

func TestAppModel_WindowResizeForwardsToActiveView(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())
	v := newStubView(ViewDashboard, "Dashboard", "dashboard")
	m.viewStack = []View{v}

	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Nil(t, cmd)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	require.Len(t, v.updateSeen, 1)
	_, ok := v.updateSeen[0].(tea.WindowSizeMsg)
	assert.True(t, ok)
}

func TestAppModel_SessionChangeReachesEveryView(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())
	bottom := newStubView(ViewDashboard, "Dashboard", "dashboard")
	top := newStubView(ViewBookedHistory, "Booked history", "history")
	m.viewStack = []View{bottom, top}

	m, _ = update(t, m, sessionChangedMsg{next: session.State{Mobile: testutil.TestMobile}})

	assert.Len(t, bottom.updateSeen, 1)
	assert.Len(t, top.updateSeen, 1)
}

func TestAppModel_KeyHandling(t *testing.T) {
	t.Run("ctrl+c always quits", func(t *testing.T) {
		m, _ := testModelAt(t, nav.To(nav.Login, nil))

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		m, _ := testModelAt(t, dashboardRoute())
		m.viewStack = []View{newStubView(ViewDashboard, "Dashboard", "dashboard")}

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})

	t.Run("capturing view receives q and does not quit", func(t *testing.T) {
		m, _ := testModelAt(t, nav.To(nav.Login, nil))
		v := newStubView(ViewLogin, "Login", "login")
		m.viewStack = []View{v}

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.Nil(t, cmd)
		assert.False(t, m.quitting)
		require.Len(t, v.updateSeen, 1)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("esc goes back on screens with native back", func(t *testing.T) {
		m, _ := testModelAt(t, dashboardRoute())
		m, _ = update(t, m, navigateMsg{route: nav.To(nav.BookedHistory, nil)})

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.IsType(t, backMsg{}, cmd())
	})

	t.Run("esc on the dashboard goes to the view", func(t *testing.T) {
		m, _ := testModelAt(t, dashboardRoute())
		v := newStubView(ViewDashboard, "Dashboard", "dashboard")
		m.viewStack = []View{v}

		_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Nil(t, cmd)
		require.Len(t, v.updateSeen, 1)
	})

	t.Run("esc dismisses output only", func(t *testing.T) {
		m, _ := testModelAt(t, dashboardRoute())
		v := newStubView(ViewDashboard, "Dashboard", "dashboard")
		m.viewStack = []View{v}
		m.setOutput("stale output")

		m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		require.Nil(t, cmd)
		assert.Empty(t, m.lastOutput)
		assert.False(t, m.outputActive)
		assert.Empty(t, v.updateSeen)
	})
}

func TestAppModel_HeaderShowsBrandCrumbsAndPhone(t *testing.T) {
	m, app := testModelAt(t, dashboardRoute())
	m.viewStack = []View{
		newStubView(ViewLogin, "Login", ""),
		newStubView(ViewDashboard, "Dashboard", ""),
	}

	header := m.renderHeader()
	assert.Contains(t, header, "VGN 360")
	assert.Contains(t, header, "Login")

	app.Session.Merge(session.Authenticated(testutil.TestMobile))
	header = m.renderHeader()
	assert.NotContains(t, header, "Login", "sign-in crumbs hidden once authenticated")
	assert.Contains(t, header, "Dashboard")
	assert.Contains(t, header, "58122")
}

func TestAppModel_StatusBarHints(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())
	m, _ = update(t, m, navigateMsg{route: nav.To(nav.BookedHistory, nil)})

	bar := m.renderStatusBar()
	assert.Contains(t, bar, "esc: back")
	assert.Contains(t, bar, "q: quit")
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	assert.True(t, viewCapturesInput(newStubView(ViewLogin, "Login", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewOTP, "OTP", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewEnquiry, "Enquiry", "")))
	assert.True(t, viewCapturesInput(newStubView(ViewReferral, "Referral", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewDashboard, "Dash", "")))
	assert.False(t, viewCapturesInput(newStubView(ViewBookedHistory, "History", "")))

	app, _ := testTUIApp(t)
	history := newBookedHistoryView(newSharedState(context.Background(), app))
	history.filtering = true
	assert.True(t, viewCapturesInput(history))
}

func TestAppModel_OutputViewportScroll(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())
	m.viewStack = []View{newStubView(ViewDashboard, "Dashboard", "dashboard")}

	// Height 10 leaves a content area smaller than the output.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	lines := make([]string, 50)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	m, _ = update(t, m, cmdOutputMsg{output: strings.Join(lines, "\n")})
	assert.True(t, m.outputActive)
	assert.Contains(t, m.View(), "line 1")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, m.outputActive)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, m.outputActive)
	assert.Empty(t, m.lastOutput)
}

func TestAppModel_OutputShortContentNoScroll(t *testing.T) {
	m, _ := testModelAt(t, dashboardRoute())
	m.viewStack = []View{newStubView(ViewDashboard, "Dashboard", "dashboard")}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	m, _ = update(t, m, cmdOutputMsg{output: "short output"})
	assert.True(t, m.outputActive)

	view := m.View()
	assert.Contains(t, view, "short output")
	assert.NotContains(t, view, "pgup/pgdn")
}

func TestIsOutputScrollKey(t *testing.T) {
	scrollKeys := []tea.KeyType{
		tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD,
	}
	for _, k := range scrollKeys {
		assert.True(t, isOutputScrollKey(tea.KeyMsg{Type: k}), "expected scroll key: %v", k)
	}

	nonScrollKeys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyEnter},
	}
	for _, k := range nonScrollKeys {
		assert.False(t, isOutputScrollKey(k), "expected non-scroll key: %v", k)
	}
}

func routesWithoutParams(rs []nav.Route) []nav.Route {
	out := make([]nav.Route, len(rs))
	for i, r := range rs {
		out[i] = nav.To(r.Screen, nil)
	}
	return out
}

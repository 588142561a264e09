package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/session"
)

// Navigation messages used by views to request screen transitions.
// The appModel validates them through the router before touching the view
// stack.

// navigateMsg opens a screen: push, or pop back to it when already open.
// notice, when set, is shown once the transition has happened.
type navigateMsg struct {
	route  nav.Route
	notice string
}

// replaceMsg swaps the current screen for another.
type replaceMsg struct {
	route nav.Route
}

// backMsg pops the current screen.
type backMsg struct{}

// cmdOutputMsg carries text to be displayed transiently over the current view.
type cmdOutputMsg struct {
	output string
}

// sessionChangedMsg is broadcast to every view after a session merge.
type sessionChangedMsg struct {
	prev, next session.State
}

// navigate returns a tea.Cmd that opens screen with params.
func navigate(screen nav.Screen, params nav.Params) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: nav.To(screen, params)} }
}

// navigateWithNotice is navigate followed by an alert on the new screen.
func navigateWithNotice(screen nav.Screen, params nav.Params, notice string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{route: nav.To(screen, params), notice: notice} }
}

// replaceWith returns a tea.Cmd that swaps the top screen.
func replaceWith(screen nav.Screen, params nav.Params) tea.Cmd {
	return func() tea.Msg { return replaceMsg{route: nav.To(screen, params)} }
}

// goBack returns a tea.Cmd that pops the current screen.
func goBack() tea.Cmd {
	return func() tea.Msg { return backMsg{} }
}

package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/nav"
)

// ViewID identifies each type of view in the TUI. It mirrors the router's
// screen names one to one.
type ViewID nav.Screen

const (
	ViewSplash         = ViewID(nav.Splash)
	ViewLogin          = ViewID(nav.Login)
	ViewOTP            = ViewID(nav.OTP)
	ViewAd             = ViewID(nav.AdScreen)
	ViewDashboard      = ViewID(nav.Dashboard)
	ViewEnquiry        = ViewID(nav.EnquiryForm)
	ViewReferral       = ViewID(nav.ReferralForm)
	ViewBookedHistory  = ViewID(nav.BookedHistory)
	ViewProjectDetails = ViewID(nav.ProjectDetails)
	ViewReceiptDetails = ViewID(nav.ReceiptDetails)
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// closer is implemented by views that own background work. The app calls
// Close when the view leaves the stack.
type closer interface {
	Close()
}

// closeView tears down v if it owns a scope.
func closeView(v View) {
	if c, ok := v.(closer); ok {
		c.Close()
	}
}

// viewCapturesInput returns true if the active view has its own text input
// and should receive all key events (bypassing global keybindings like q/esc).
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewLogin, ViewOTP, ViewEnquiry, ViewReferral:
		return true
	case ViewBookedHistory:
		if bh, ok := v.(*bookedHistoryView); ok {
			return bh.filtering
		}
	}
	return false
}

package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
	"github.com/alexanderramin/vgn360/internal/session"
)

// otpRequestedMsg is the answer to GenerateOtpCode from the login screen.
type otpRequestedMsg struct {
	scopeTag
	mobile   string
	delivery *gateway.OTPDelivery
	err      error
}

// loginView collects the mobile number and starts OTP entry.
type loginView struct {
	scoped
	state *SharedState
	input textinput.Model

	fieldErr string // inline validation message
	alert    string // request failure
	sending  bool
}

func newLoginView(state *SharedState) *loginView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = "+91 "
	ti.Placeholder = "10-digit mobile number"
	ti.CharLimit = 10

	return &loginView{scoped: newScoped(state), state: state, input: ti}
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get OTP")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case otpRequestedMsg:
		return v, v.handleOTPRequested(msg)

	case tea.KeyMsg:
		if v.sending {
			return v, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.submit()
		case tea.KeyRunes:
			if !isDigits(string(msg.Runes)) {
				return v, nil
			}
		}
		v.fieldErr = ""
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit validates the number and either goes straight to the OTP screen
// with the configured test values or asks the server for a code.
func (v *loginView) submit() tea.Cmd {
	mobile := strings.TrimSpace(v.input.Value())
	if msg := domain.ValidatePhone(mobile); msg != "" {
		v.fieldErr = msg
		return nil
	}
	v.alert = ""

	cfg := v.state.Config()
	if cfg.OTPMode() != screen.OTPServer {
		testMobile := domain.CoalesceStr(cfg.OTP.TestMobile, mobile)
		v.state.Session().Merge(session.WithMobile(testMobile))
		return navigate(nav.OTP, nav.OTPParams{
			Mobile:            testMobile,
			GeneratedOTP:      cfg.OTP.TestCode,
			DeliveryConfirmed: true,
		})
	}

	v.sending = true
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	return func() tea.Msg {
		d, err := client.GenerateOTP(ctx, mobile)
		return otpRequestedMsg{scopeTag: tag, mobile: mobile, delivery: d, err: err}
	}
}

func (v *loginView) handleOTPRequested(msg otpRequestedMsg) tea.Cmd {
	v.sending = false
	if msg.err != nil {
		v.state.Logger().Error().Err(msg.err).Msg("generate otp failed")
		v.alert = gateway.UserMessage(msg.err, gateway.GenericFailureMessage)
		return nil
	}

	v.state.Session().Merge(session.WithMobile(msg.mobile))
	params := nav.OTPParams{Mobile: msg.mobile}
	if msg.delivery != nil && msg.delivery.Delivered {
		params.GeneratedOTP = msg.delivery.Code
		params.DeliveryConfirmed = true
		return navigate(nav.OTP, params)
	}
	return navigateWithNotice(nav.OTP, params, screen.MsgOTPSent)
}

func (v *loginView) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.Header("Welcome") + "\n\n")
	b.WriteString("  " + formatter.Dim("Enter your mobile number to sign in.") + "\n\n")
	b.WriteString("  " + v.input.View() + "\n")
	if v.fieldErr != "" {
		b.WriteString("  " + formatter.StyleRed.Render(v.fieldErr) + "\n")
	}
	b.WriteString("\n")

	switch {
	case v.sending:
		b.WriteString("  " + formatter.Dim("Sending OTP...") + "\n")
	case v.alert != "":
		b.WriteString("  " + formatter.Alert(v.alert, true) + "\n")
	default:
		b.WriteString("  " + formatter.Bold("[ Get OTP ]") + "\n")
	}

	return b.String()
}

// isDigits reports whether s is non-empty and all ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

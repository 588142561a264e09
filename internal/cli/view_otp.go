package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/screen"
	"github.com/alexanderramin/vgn360/internal/session"
)

type otpVerifiedMsg struct {
	scopeTag
	ok  bool
	err error
}

type otpResentMsg struct {
	scopeTag
	delivery *gateway.OTPDelivery
	err      error
}

// otpView takes the 4-digit code and marks the session authenticated.
type otpView struct {
	scoped
	state     *SharedState
	machine   *screen.OTPMachine
	input     textinput.Model
	resending bool
}

func newOTPView(state *SharedState, p nav.OTPParams) *otpView {
	m := screen.NewOTPMachine(state.Config().OTPMode(), p.Mobile, p.GeneratedOTP, p.DeliveryConfirmed)

	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.Placeholder = "----"
	ti.CharLimit = screen.OTPLength
	ti.SetValue(m.Code)

	return &otpView{scoped: newScoped(state), state: state, machine: m, input: ti}
}

func (v *otpView) ID() ViewID    { return ViewOTP }
func (v *otpView) Title() string { return "Verify" }

func (v *otpView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "verify")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resend")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *otpView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *otpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case otpVerifiedMsg:
		if err := v.machine.Resolve(msg.ok, msg.err); err != nil {
			return v, nil
		}
		if msg.err != nil {
			v.state.Logger().Error().Err(msg.err).Msg("verify otp failed")
		}
		return v, v.finish()

	case otpResentMsg:
		v.resending = false
		var code string
		var delivered bool
		if msg.delivery != nil {
			code, delivered = msg.delivery.Code, msg.delivery.Delivered
		}
		if msg.err != nil {
			v.state.Logger().Error().Err(msg.err).Msg("resend otp failed")
		}
		v.machine.Resent(code, delivered, msg.err)
		v.input.SetValue(v.machine.Code)
		v.input.CursorEnd()
		return v, nil

	case tea.KeyMsg:
		if v.machine.State() != screen.Entering {
			return v, nil
		}
		switch msg.Type {
		case tea.KeyEnter:
			return v, v.verify()
		case tea.KeyCtrlR:
			return v, v.resend()
		case tea.KeyRunes:
			if !isDigits(string(msg.Runes)) {
				return v, nil
			}
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		v.machine.Code = v.input.Value()
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *otpView) verify() tea.Cmd {
	v.machine.Code = v.input.Value()
	if !v.machine.Verify() {
		return v.finish()
	}
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	mobile, code := v.machine.Mobile, v.machine.Code
	return func() tea.Msg {
		ok, err := client.VerifyOTP(ctx, mobile, code)
		return otpVerifiedMsg{scopeTag: tag, ok: ok, err: err}
	}
}

// finish moves on once the machine is authenticated; otherwise the alert
// set by the machine is shown and entry continues.
func (v *otpView) finish() tea.Cmd {
	if v.machine.State() != screen.Authenticated {
		return nil
	}
	v.state.Session().Merge(session.Authenticated(v.machine.Mobile))
	return navigate(nav.AdScreen, nil)
}

func (v *otpView) resend() tea.Cmd {
	if v.resending {
		return nil
	}
	v.resending = true
	v.machine.Alert = ""
	client, ctx, tag := v.state.Gateway(), v.sc.Context(), v.tag()
	mobile := v.machine.Mobile
	return func() tea.Msg {
		d, err := client.GenerateOTP(ctx, mobile)
		return otpResentMsg{scopeTag: tag, delivery: d, err: err}
	}
}

func (v *otpView) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.Header("Enter OTP") + "\n\n")
	b.WriteString("  " + formatter.Dim("Code sent to ") + formatter.Bold(formatter.DisplayPhone(v.machine.Mobile)) + "\n\n")
	b.WriteString("  " + v.input.View() + "\n\n")

	switch {
	case v.machine.State() == screen.Verifying:
		b.WriteString("  " + formatter.Dim("Verifying...") + "\n")
	case v.resending:
		b.WriteString("  " + formatter.Dim("Sending a new code...") + "\n")
	case v.machine.Alert != "":
		failed := v.machine.Alert != screen.MsgOTPResent && v.machine.Alert != screen.MsgOTPSent
		b.WriteString("  " + formatter.Alert(v.machine.Alert, failed) + "\n")
	default:
		b.WriteString("  " + formatter.Bold("[ Verify ]") + "  " + formatter.Dim("Didn't get it? ctrl+r to resend") + "\n")
	}

	return b.String()
}

package screen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// OTPMode selects how an entered code is checked.
type OTPMode string

const (
	// OTPBypass accepts any code. This is the behavior the app shipped with.
	OTPBypass OTPMode = "bypass"
	// OTPServer checks the code with GetOtpCode.
	OTPServer OTPMode = "server"
)

// ParseOTPMode validates a configured mode name.
func ParseOTPMode(s string) (OTPMode, error) {
	switch m := OTPMode(strings.ToLower(strings.TrimSpace(s))); m {
	case OTPBypass, OTPServer:
		return m, nil
	case "":
		return OTPBypass, nil
	}
	return "", fmt.Errorf("unknown otp mode %q (want bypass or server)", s)
}

// OTPState is the phase of the OTP screen.
type OTPState int

const (
	Entering OTPState = iota
	Verifying
	Authenticated
)

func (s OTPState) String() string {
	switch s {
	case Entering:
		return "entering"
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// OTPLength is the number of digits in a code.
const OTPLength = 4

// OTP alert texts.
const (
	MsgOTPInvalidLength = "Please enter 4-digit OTP"
	MsgOTPIncorrect     = "The OTP you entered is incorrect"
	MsgOTPVerifyFailed  = "Failed to verify OTP. Please try again."
	MsgOTPResent        = "New OTP has been sent and auto-filled for you"
	MsgOTPSent          = "Please check your SMS for the OTP code"
	MsgOTPResendFailed  = "Failed to resend OTP. Please try again."
)

var otpPattern = regexp.MustCompile(`^[0-9]{4}$`)

var errNotVerifying = errors.New("otp: no verification in progress")

// OTPMachine is the OTP screen controller.
type OTPMachine struct {
	Mode   OTPMode
	Mobile string
	Code   string
	Alert  string

	state OTPState
}

// NewOTPMachine starts in Entering. A confirmed 4-digit code is pre-filled.
func NewOTPMachine(mode OTPMode, mobile, generated string, delivered bool) *OTPMachine {
	m := &OTPMachine{Mode: mode, Mobile: mobile}
	m.Autofill(generated, delivered)
	return m
}

func (m *OTPMachine) State() OTPState { return m.state }

// Autofill replaces the code when delivery was confirmed with a valid code.
func (m *OTPMachine) Autofill(code string, delivered bool) bool {
	if delivered && otpPattern.MatchString(code) {
		m.Code = code
		return true
	}
	return false
}

// Verify starts verification. It reports whether a server check is needed;
// in bypass mode the machine is already Authenticated when it returns.
func (m *OTPMachine) Verify() (needsServer bool) {
	if m.state != Entering {
		return false
	}
	m.Alert = ""
	if m.Mode != OTPServer {
		m.state = Authenticated
		return false
	}
	if !otpPattern.MatchString(m.Code) {
		m.Alert = MsgOTPInvalidLength
		return false
	}
	m.state = Verifying
	return true
}

// Resolve completes a server check.
func (m *OTPMachine) Resolve(ok bool, err error) error {
	if m.state != Verifying {
		return errNotVerifying
	}
	switch {
	case err != nil:
		m.Alert = MsgOTPVerifyFailed
		m.state = Entering
	case !ok:
		m.Alert = MsgOTPIncorrect
		m.state = Entering
	default:
		m.state = Authenticated
	}
	return nil
}

// Resent records the outcome of a resend request.
func (m *OTPMachine) Resent(code string, delivered bool, err error) {
	switch {
	case err != nil:
		m.Alert = MsgOTPResendFailed
	case m.Autofill(code, delivered):
		m.Alert = MsgOTPResent
	default:
		m.Alert = MsgOTPSent
	}
}

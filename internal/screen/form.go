package screen

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/vgn360/internal/domain"
)

// FormState is the phase of a lead form.
type FormState int

const (
	Editing FormState = iota
	Submitting
	NavigatedAway
)

func (s FormState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case NavigatedAway:
		return "navigated_away"
	}
	return "unknown"
}

// ErrInvalidState is returned when an event does not apply to the current state.
var ErrInvalidState = errors.New("invalid form state")

// Alert texts shown after a submission.
const (
	EnquirySuccess  = "Thanks! Our team will contact you shortly."
	ReferralSuccess = "Thank you for the referral. Our team will reach out accordingly."
	EnquiryFailure  = "Failed to submit enquiry"
	ReferralFailure = "Failed to submit referral"
)

// FormMachine is the enquiry/referral form controller.
type FormMachine struct {
	Kind   domain.LeadKind
	Form   domain.LeadForm
	Errors domain.FieldErrors
	Alert  string

	state FormState
}

// NewFormMachine returns a machine in Editing with an empty form.
func NewFormMachine(kind domain.LeadKind) *FormMachine {
	return &FormMachine{Kind: kind, Errors: domain.FieldErrors{}}
}

func (m *FormMachine) State() FormState { return m.state }

// Submit validates the form. On success it moves to Submitting and returns
// true; otherwise Errors holds one message per invalid field and the machine
// stays in Editing.
func (m *FormMachine) Submit() (bool, error) {
	if m.state != Editing {
		return false, fmt.Errorf("%w: submit while %s", ErrInvalidState, m.state)
	}
	m.Alert = ""
	m.Errors = m.Form.Validate(m.Kind)
	if !m.Errors.OK() {
		return false, nil
	}
	m.state = Submitting
	return true, nil
}

// Lead builds the lead to send. referrer is used only by referral forms.
func (m *FormMachine) Lead(referrer domain.Customer) domain.Lead {
	return m.Form.ToLead(m.Kind, referrer)
}

// Fail returns to Editing with the fields kept and msg as the alert.
func (m *FormMachine) Fail(msg string) error {
	if m.state != Submitting {
		return fmt.Errorf("%w: fail while %s", ErrInvalidState, m.state)
	}
	if msg == "" {
		msg = m.failureText()
	}
	m.Alert = msg
	m.state = Editing
	return nil
}

// Succeed ends the form; the caller navigates to the dashboard.
func (m *FormMachine) Succeed() error {
	if m.state != Submitting {
		return fmt.Errorf("%w: succeed while %s", ErrInvalidState, m.state)
	}
	m.Alert = m.successText()
	m.state = NavigatedAway
	return nil
}

// FailureFallback is the alert used when the server gives no reason.
func (m *FormMachine) FailureFallback() string { return m.failureText() }

func (m *FormMachine) successText() string {
	if m.Kind == domain.LeadReferral {
		return ReferralSuccess
	}
	return EnquirySuccess
}

func (m *FormMachine) failureText() string {
	if m.Kind == domain.LeadReferral {
		return ReferralFailure
	}
	return EnquiryFailure
}

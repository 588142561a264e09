// Package nav is the screen router. Each screen declares a typed parameter
// struct; routes are validated here so a screen never starts with missing
// input.
package nav

import "fmt"

// Screen names a navigable full-view unit of the UI.
type Screen string

const (
	Splash         Screen = "Splash"
	Login          Screen = "Login"
	OTP            Screen = "OTP"
	AdScreen       Screen = "AdScreen"
	Dashboard      Screen = "Dashboard"
	EnquiryForm    Screen = "EnquiryForm"
	ReferralForm   Screen = "ReferralForm"
	BookedHistory  Screen = "BookedHistory"
	ProjectDetails Screen = "ProjectDetails"
	ReceiptDetails Screen = "ReceiptDetails"
)

// Params is the payload carried by a transition.
type Params interface {
	Validate() error
}

// NoParams is used by screens that take no input.
type NoParams struct{}

func (NoParams) Validate() error { return nil }

// OTPParams is the input of the OTP screen.
type OTPParams struct {
	Mobile            string
	GeneratedOTP      string // pre-filled when delivery was confirmed
	DeliveryConfirmed bool
}

func (p OTPParams) Validate() error {
	if p.Mobile == "" {
		return &MissingParamError{Screen: OTP, Param: "mobile"}
	}
	return nil
}

// ProjectDetailsParams is the input of the project details screen.
type ProjectDetailsParams struct {
	ProjectID     string
	ProjectTranID string
	ProjectName   string
	ProjectSite   string
	UnitNo        string
}

func (p ProjectDetailsParams) Validate() error {
	if p.ProjectID == "" {
		return &MissingParamError{Screen: ProjectDetails, Param: "projectId"}
	}
	if p.ProjectTranID == "" {
		return &MissingParamError{Screen: ProjectDetails, Param: "projectTranId"}
	}
	return nil
}

// ReceiptDetailsParams is the input of the receipt details screen.
type ReceiptDetailsParams struct {
	ProjectID     string
	ProjectTranID string
	ProjectName   string
}

func (p ReceiptDetailsParams) Validate() error {
	if p.ProjectID == "" {
		return &MissingParamError{Screen: ReceiptDetails, Param: "projectId"}
	}
	if p.ProjectTranID == "" {
		return &MissingParamError{Screen: ReceiptDetails, Param: "projectTranId"}
	}
	return nil
}

// Route is a screen plus the parameters it is opened with.
type Route struct {
	Screen Screen
	Params Params
}

// To builds a Route. A nil params value means NoParams.
func To(screen Screen, params Params) Route {
	if params == nil {
		params = NoParams{}
	}
	return Route{Screen: screen, Params: params}
}

func (r Route) String() string {
	return fmt.Sprintf("%s%+v", r.Screen, r.Params)
}

// checkParams verifies the params type matches the screen and validates it.
func checkParams(r Route) error {
	if r.Params == nil {
		r.Params = NoParams{}
	}
	var ok bool
	switch r.Screen {
	case OTP:
		_, ok = r.Params.(OTPParams)
	case ProjectDetails:
		_, ok = r.Params.(ProjectDetailsParams)
	case ReceiptDetails:
		_, ok = r.Params.(ReceiptDetailsParams)
	case Splash, Login, AdScreen, Dashboard, EnquiryForm, ReferralForm, BookedHistory:
		_, ok = r.Params.(NoParams)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScreen, r.Screen)
	}
	if !ok {
		return fmt.Errorf("%w: %s does not accept %T", ErrWrongParams, r.Screen, r.Params)
	}
	return r.Params.Validate()
}

// edges is the directed screen graph. Native back navigation is not listed.
var edges = map[Screen][]Screen{
	Splash:         {Login},
	Login:          {OTP},
	OTP:            {AdScreen},
	AdScreen:       {Dashboard},
	Dashboard:      {EnquiryForm, ReferralForm, BookedHistory},
	EnquiryForm:    {Dashboard},
	ReferralForm:   {Dashboard},
	BookedHistory:  {ProjectDetails},
	ProjectDetails: {ReceiptDetails},
	ReceiptDetails: nil,
}

// CanTransition reports whether the graph has an edge from -> to.
func CanTransition(from, to Screen) bool {
	for _, s := range edges[from] {
		if s == to {
			return true
		}
	}
	return false
}

// HasNativeBack reports whether the screen offers a plain "go back" action.
// Forms instead navigate forward to the dashboard.
func HasNativeBack(s Screen) bool {
	switch s {
	case BookedHistory, ProjectDetails, ReceiptDetails:
		return true
	}
	return false
}

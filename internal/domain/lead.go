package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LeadKind distinguishes the two lead-capture forms.
type LeadKind string

const (
	LeadEnquiry  LeadKind = "enquiry"
	LeadReferral LeadKind = "referral"
)

// Fixed values sent with every lead.
const (
	DefaultCountryCode = "+91"
	LeadAgentName      = "VGN_360_MOBILE_APP"
)

// ProjectOption is an entry of the project picker on the lead forms.
type ProjectOption struct {
	ID   int
	Name string
}

// ProjectCatalog lists the selectable projects. ID 0 is the placeholder and
// never a valid selection.
var ProjectCatalog = []ProjectOption{
	{ID: 0, Name: "Select Project"},
	{ID: 1, Name: "VGN Aspire Gardens"},
	{ID: 2, Name: "VGN Heritage Springz"},
	{ID: 3, Name: "VGN Highland"},
	{ID: 4, Name: "VGN Pride De Villa"},
	{ID: 5, Name: "VGN Grandeur"},
	{ID: 6, Name: "VGN Paradise"},
	{ID: 7, Name: "Others"},
}

// ProjectByID looks up a catalog entry.
func ProjectByID(id int) (ProjectOption, bool) {
	for _, p := range ProjectCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return ProjectOption{}, false
}

// Field names a validated lead form input.
type Field string

const (
	FieldName     Field = "name"
	FieldPhone    Field = "phone"
	FieldProject  Field = "project"
	FieldLocation Field = "location"
)

// FieldErrors maps each invalid field to its message.
type FieldErrors map[Field]string

// OK reports whether no field failed validation.
func (e FieldErrors) OK() bool { return len(e) == 0 }

// LeadForm holds the user-editable inputs of both lead forms. For a referral,
// Name and Phone describe the person being referred.
type LeadForm struct {
	Name      string `validate:"required"`
	Phone     string
	Email     string
	ProjectID int    `validate:"gt=0"`
	Location  string `validate:"required"`
}

var leadValidator = validator.New()

// Validate checks the four required fields independently and returns every
// failure at once.
func (f LeadForm) Validate(kind LeadKind) FieldErrors {
	errs := FieldErrors{}

	check := f
	check.Name = strings.TrimSpace(f.Name)
	check.Location = strings.TrimSpace(f.Location)
	if err := leadValidator.Struct(check); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				field, msg := leadFieldMessage(kind, fe.StructField())
				errs[field] = msg
			}
		}
	}
	if _, ok := ProjectByID(f.ProjectID); !ok {
		_, errs[FieldProject] = leadFieldMessage(kind, "ProjectID")
	}
	if msg := ValidatePhone(f.Phone); msg != "" {
		errs[FieldPhone] = msg
	}
	return errs
}

func leadFieldMessage(kind LeadKind, structField string) (Field, string) {
	switch structField {
	case "Name":
		if kind == LeadReferral {
			return FieldName, "Referral name is required"
		}
		return FieldName, "Name is required"
	case "ProjectID":
		return FieldProject, "Please select a project"
	default:
		return FieldLocation, "Please select a location"
	}
}

// Lead is a validated enquiry or referral ready for submission.
type Lead struct {
	Kind           LeadKind
	CustomerName   string
	MobileNumber   string
	CountryCode    string
	Email          string
	Location       string
	ProjectName    string
	AgentName      string
	ReferralName   string // referrer, referral leads only
	ReferralMobile string // referrer, referral leads only
}

// ToLead converts the form into a wire lead. referrer is ignored for enquiries.
func (f LeadForm) ToLead(kind LeadKind, referrer Customer) Lead {
	project, _ := ProjectByID(f.ProjectID)
	lead := Lead{
		Kind:         kind,
		CustomerName: strings.TrimSpace(f.Name),
		MobileNumber: f.Phone,
		CountryCode:  DefaultCountryCode,
		Email:        strings.TrimSpace(f.Email),
		Location:     strings.TrimSpace(f.Location),
		ProjectName:  project.Name,
		AgentName:    LeadAgentName,
	}
	if kind == LeadReferral {
		lead.ReferralName = referrer.Name
		lead.ReferralMobile = referrer.Mobile
	}
	return lead
}

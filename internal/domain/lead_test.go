package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validLeadForm() LeadForm {
	return LeadForm{
		Name:      "Priya",
		Phone:     "9884358122",
		Email:     "priya@example.com",
		ProjectID: 3,
		Location:  "Chennai",
	}
}

func TestLeadForm_Validate_Valid(t *testing.T) {
	errs := validLeadForm().Validate(LeadEnquiry)
	assert.True(t, errs.OK())
	assert.Empty(t, errs)
}

// Every combination of the four required fields being valid or invalid
// blocks submission exactly when at least one is invalid, and reports
// exactly the invalid ones.
func TestLeadForm_Validate_AllCombinations(t *testing.T) {
	fields := []Field{FieldName, FieldPhone, FieldProject, FieldLocation}

	for mask := 0; mask < 1<<len(fields); mask++ {
		form := validLeadForm()
		var wantInvalid []Field
		for i, f := range fields {
			if mask&(1<<i) == 0 {
				continue
			}
			wantInvalid = append(wantInvalid, f)
			switch f {
			case FieldName:
				form.Name = "   "
			case FieldPhone:
				form.Phone = "12345"
			case FieldProject:
				form.ProjectID = 0
			case FieldLocation:
				form.Location = ""
			}
		}

		t.Run(fmt.Sprintf("mask=%04b", mask), func(t *testing.T) {
			errs := form.Validate(LeadEnquiry)
			assert.Equal(t, mask == 0, errs.OK())
			assert.Len(t, errs, len(wantInvalid))
			for _, f := range wantInvalid {
				assert.NotEmpty(t, errs[f], "field %s should be invalid", f)
			}
		})
	}
}

func TestLeadForm_Validate_Messages(t *testing.T) {
	errs := LeadForm{}.Validate(LeadEnquiry)
	assert.Equal(t, "Name is required", errs[FieldName])
	assert.Equal(t, MsgPhoneRequired, errs[FieldPhone])
	assert.Equal(t, "Please select a project", errs[FieldProject])
	assert.Equal(t, "Please select a location", errs[FieldLocation])

	errs = LeadForm{}.Validate(LeadReferral)
	assert.Equal(t, "Referral name is required", errs[FieldName])
}

func TestLeadForm_Validate_UnknownProject(t *testing.T) {
	form := validLeadForm()
	form.ProjectID = 42
	errs := form.Validate(LeadEnquiry)
	assert.Equal(t, "Please select a project", errs[FieldProject])
	assert.Len(t, errs, 1)
}

func TestLeadForm_ToLead_Enquiry(t *testing.T) {
	form := validLeadForm()
	form.Name = "  Priya "
	lead := form.ToLead(LeadEnquiry, Customer{Name: "ignored", Mobile: "1111111111"})

	assert.Equal(t, LeadEnquiry, lead.Kind)
	assert.Equal(t, "Priya", lead.CustomerName)
	assert.Equal(t, "9884358122", lead.MobileNumber)
	assert.Equal(t, "+91", lead.CountryCode)
	assert.Equal(t, "VGN Highland", lead.ProjectName)
	assert.Equal(t, "VGN_360_MOBILE_APP", lead.AgentName)
	assert.Empty(t, lead.ReferralName)
	assert.Empty(t, lead.ReferralMobile)
}

func TestLeadForm_ToLead_Referral(t *testing.T) {
	lead := validLeadForm().ToLead(LeadReferral, Customer{Name: "Ravi", Mobile: "9000000001"})

	assert.Equal(t, LeadReferral, lead.Kind)
	assert.Equal(t, "Ravi", lead.ReferralName)
	assert.Equal(t, "9000000001", lead.ReferralMobile)
}

func TestProjectByID(t *testing.T) {
	p, ok := ProjectByID(7)
	assert.True(t, ok)
	assert.Equal(t, "Others", p.Name)

	_, ok = ProjectByID(8)
	assert.False(t, ok)
}

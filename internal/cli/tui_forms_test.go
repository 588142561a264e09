package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/screen"
	"github.com/alexanderramin/vgn360/internal/testutil"
)

// openForm signs in, starts on the dashboard and opens a lead form by key.
func openForm(t *testing.T, app *App, key rune) (*TestDriver, *leadFormView) {
	t.Helper()
	signIn(app)
	d := NewTestDriverAt(t, app, dashboardRoute())
	d.PressKey(key)
	v, ok := d.ActiveView().(*leadFormView)
	require.True(t, ok, "active view is %s", d.ActiveViewID())
	return d, v
}

func fillValid(v *leadFormView) {
	v.fields.name = "  Anita  "
	v.fields.phone = "9876543210"
	v.fields.email = "anita@example.com"
	v.fields.project = 3
	v.fields.location = "Chennai"
}

func TestLeadForm_EnquirySuccessReturnsToDashboard(t *testing.T) {
	app, gw := testTUIApp(t)
	d, v := openForm(t, app, 'e')
	fillValid(v)

	d.Run(v.submit())

	require.Len(t, gw.Leads(), 1)
	lead := gw.Leads()[0]
	assert.Equal(t, domain.LeadEnquiry, lead.Kind)
	assert.Equal(t, "Anita", lead.CustomerName)
	assert.Equal(t, "VGN Highland", lead.ProjectName)
	assert.Equal(t, domain.DefaultCountryCode, lead.CountryCode)
	assert.Equal(t, domain.LeadAgentName, lead.AgentName)
	assert.Empty(t, lead.ReferralMobile)

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Len(t, d.ViewStackIDs(), 1)
	assert.Contains(t, d.LastOutput(), screen.EnquirySuccess)
	assert.True(t, v.scope().Closed(), "form scope ends with the form")
}

func TestLeadForm_FailureKeepsFields(t *testing.T) {
	app, gw := testTUIApp(t)
	gw.leadErr = &gateway.RejectedError{Message: "Mobile number already registered"}
	d, v := openForm(t, app, 'e')
	fillValid(v)

	d.Run(v.submit())

	assert.Equal(t, ViewEnquiry, d.ActiveViewID())
	assert.Equal(t, screen.Editing, v.machine.State())
	assert.Equal(t, "Mobile number already registered", v.machine.Alert)
	assert.Equal(t, "9876543210", v.fields.phone)
	assert.Contains(t, d.View(), "Mobile number already registered")
}

func TestLeadForm_NetworkFailureUsesGenericMessage(t *testing.T) {
	app, gw := testTUIApp(t)
	gw.leadErr = gateway.ErrUnavailable
	d, v := openForm(t, app, 'e')
	fillValid(v)

	d.Run(v.submit())

	assert.Equal(t, gateway.GenericFailureMessage, v.machine.Alert)
	assert.Equal(t, ViewEnquiry, d.ActiveViewID())
}

func TestLeadForm_ValidationBlocksSubmit(t *testing.T) {
	app, gw := testTUIApp(t)
	d, v := openForm(t, app, 'e')

	d.Run(v.submit())

	assert.Empty(t, gw.Leads())
	assert.Len(t, v.machine.Errors, 4)
	view := d.View()
	assert.Contains(t, view, "Name is required")
	assert.Contains(t, view, "Please select a project")
	assert.Contains(t, view, "Please select a location")
}

func TestLeadForm_ReferralCarriesReferrer(t *testing.T) {
	app, gw := testTUIApp(t)
	d, v := openForm(t, app, 'r')
	require.Equal(t, ViewReferral, d.ActiveViewID())
	assert.Equal(t, "Ravi Kumar", v.referrer.Name)
	assert.Contains(t, d.View(), "Ravi Kumar")

	fillValid(v)
	d.Run(v.submit())

	require.Len(t, gw.Leads(), 1)
	lead := gw.Leads()[0]
	assert.Equal(t, domain.LeadReferral, lead.Kind)
	assert.Equal(t, "Ravi Kumar", lead.ReferralName)
	assert.Equal(t, testutil.TestMobile, lead.ReferralMobile)
	assert.Contains(t, d.LastOutput(), screen.ReferralSuccess)
}

func TestLeadForm_ReferralWithUnknownReferrer(t *testing.T) {
	app, gw := testTUIApp(t)
	gw.customerErr = gateway.ErrTimeout
	d, v := openForm(t, app, 'r')
	fillValid(v)

	d.Run(v.submit())

	require.Len(t, gw.Leads(), 1)
	assert.Empty(t, gw.Leads()[0].ReferralName)
	assert.Equal(t, testutil.TestMobile, gw.Leads()[0].ReferralMobile)
}

func TestLeadForm_EscGoesToDashboard(t *testing.T) {
	app, gw := testTUIApp(t)
	d, v := openForm(t, app, 'e')

	d.PressEsc()

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Empty(t, gw.Leads())
	assert.True(t, v.scope().Closed())
}

package cli

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/vgn360/internal/config"
	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/gateway"
	"github.com/alexanderramin/vgn360/internal/nav"
	"github.com/alexanderramin/vgn360/internal/session"
	"github.com/alexanderramin/vgn360/internal/teatest"
	"github.com/alexanderramin/vgn360/internal/testutil"
)

// stubGateway is an in-memory gateway.Client that answers instantly.
type stubGateway struct {
	mu sync.Mutex

	customers   map[string]*domain.Customer
	customerErr error
	projects    []domain.ProjectSummary
	projectsErr error
	detail      *domain.ProjectDetailRecord
	detailErr   error
	receipts    []domain.ReceiptRecord
	receiptsErr error
	leadErr     error
	otp         *gateway.OTPDelivery
	otpErr      error
	otpCode     string // code VerifyOTP accepts
	verifyErr   error

	leads []domain.Lead
	calls map[string]int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		customers: map[string]*domain.Customer{
			testutil.TestMobile: {Name: "Ravi Kumar", Mobile: testutil.TestMobile},
		},
		projects: []domain.ProjectSummary{
			{ID: 1, Name: "VGN Highland", Site: "Ambattur", UnitNo: "A-101", ProjectID: "12", ProjectTranID: "7001"},
			{ID: 2, Name: "VGN Paradise", Site: "Porur", UnitNo: "B-22", ProjectID: "15", ProjectTranID: "7002"},
		},
		detail: &domain.ProjectDetailRecord{
			Status:         "Booked",
			CustomerName:   "Ravi Kumar",
			MobileNo:       testutil.TestMobile,
			TotalCost:      decimal.NewFromInt(4500000),
			ReceivedAmount: decimal.NewFromInt(1250000),
			Balance:        decimal.NewFromInt(3250000),
		},
		receipts: []domain.ReceiptRecord{
			{Sno: "1", Amount: decimal.NewFromInt(500000), Date: "/Date(1704067200000)/", Stage: "Booking", PaymentMode: "Cheque", RefNo: "CHQ-881"},
			{Sno: "2", Amount: decimal.NewFromInt(750000), Date: "/Date(1711929600000)/", Stage: "Agreement", PaymentMode: "NEFT", RefNo: "UTR-42"},
		},
		otp:     &gateway.OTPDelivery{Delivered: true, Code: "4321"},
		otpCode: "4321",
		calls:   map[string]int{},
	}
}

func (s *stubGateway) called(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s *stubGateway) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubGateway) Leads() []domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Lead(nil), s.leads...)
}

func (s *stubGateway) ListProjects(ctx context.Context, mobile string) ([]domain.ProjectSummary, error) {
	s.called("ListProjects")
	return s.projects, s.projectsErr
}

func (s *stubGateway) CustomerName(ctx context.Context, mobile string) (*domain.Customer, error) {
	s.called("CustomerName")
	if s.customerErr != nil {
		return nil, s.customerErr
	}
	return s.customers[mobile], nil
}

func (s *stubGateway) ProjectDetail(ctx context.Context, projectID, tranID string) (*domain.ProjectDetailRecord, error) {
	s.called("ProjectDetail")
	return s.detail, s.detailErr
}

func (s *stubGateway) Receipts(ctx context.Context, projectID, tranID string) ([]domain.ReceiptRecord, error) {
	s.called("Receipts")
	return s.receipts, s.receiptsErr
}

func (s *stubGateway) SubmitLead(ctx context.Context, lead domain.Lead) error {
	s.called("SubmitLead")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads = append(s.leads, lead)
	return s.leadErr
}

func (s *stubGateway) GenerateOTP(ctx context.Context, mobile string) (*gateway.OTPDelivery, error) {
	s.called("GenerateOTP")
	return s.otp, s.otpErr
}

func (s *stubGateway) VerifyOTP(ctx context.Context, mobile, code string) (bool, error) {
	s.called("VerifyOTP")
	if s.verifyErr != nil {
		return false, s.verifyErr
	}
	return code == s.otpCode, nil
}

// testConfig mirrors the defaults Load produces.
func testConfig() *config.Config {
	return &config.Config{
		API: config.API{BaseURL: "http://127.0.0.1", LeadBaseURL: "http://127.0.0.1", Timeout: time.Second},
		OTP: config.OTP{Mode: "bypass", TestMobile: testutil.TestMobile, TestCode: "1234"},
	}
}

// testTUIApp wires an App with the stub gateway and an empty session.
func testTUIApp(t *testing.T) (*App, *stubGateway) {
	t.Helper()
	gw := newStubGateway()
	return &App{
		Config:  testConfig(),
		Session: session.NewStore(),
		Gateway: gw,
		Logger:  zerolog.Nop(),
	}, gw
}

// signIn marks the session authenticated for the test customer.
func signIn(app *App) {
	app.Session.Merge(session.Authenticated(testutil.TestMobile))
}

// TestDriver wraps teatest.Driver with inspection methods for appModel
// internals (view stack, router, output) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver starts the app at the splash screen.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return NewTestDriverAt(t, app, nav.To(nav.Splash, nil))
}

// NewTestDriverAt starts the app at route, sets the terminal size and drains
// Init(). Timers are shortened so the splash hands over immediately.
func NewTestDriverAt(t *testing.T, app *App, route nav.Route) *TestDriver {
	t.Helper()

	state := newSharedState(context.Background(), app)
	state.SplashDelay = time.Millisecond

	m := newAppModelAt(state, route)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(100*time.Millisecond))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ""
	}
	return v.ID()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// RouterScreens returns the router's frames, bottom to top.
func (d *TestDriver) RouterScreens() []nav.Screen {
	var out []nav.Screen
	for _, r := range d.appModel().router.Stack() {
		out = append(out, r.Screen)
	}
	return out
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the transient output shown over the current view.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

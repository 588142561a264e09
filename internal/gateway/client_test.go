package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/alexanderramin/vgn360/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func testClient(t *testing.T, api *testutil.FakeAPI) (Client, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	cfg := Config{BaseURL: api.URL(), LeadBaseURL: api.URL(), Timeout: 2 * time.Second}
	return NewHTTPClient(cfg, obs), obs
}

func TestListProjects_MapsRowsAndSendsQuery(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Seed()
	client, obs := testClient(t, api)

	projects, err := client.ListProjects(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, domain.ProjectSummary{
		ID: 1, Name: "VGN Highland", Site: "Ambattur", UnitNo: "A-101",
		ProjectID: "12", ProjectTranID: "7001",
	}, projects[0])
	assert.Equal(t, 2, projects[1].ID)

	calls := api.CallsTo(string(EndpointProjects))
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, testutil.TestMobile, calls[0].Query.Get("MobileNo"))
	assert.Equal(t, "application/json", calls[0].Header.Get("Accept"))
	assert.Equal(t, "application/json", calls[0].Header.Get("Content-Type"))
	assert.Empty(t, calls[0].Header.Get("Authorization"))

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, EndpointProjects, obs.events[0].Endpoint)
	assert.NotEmpty(t, obs.events[0].RequestID)
	assert.Equal(t, http.StatusOK, obs.events[0].StatusCode)
}

func TestListProjects_EmptyArrayIsNotAnError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := testClient(t, api)

	projects, err := client.ListProjects(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestListProjects_NullBodyIsEmpty(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.RespondRaw(string(EndpointProjects), "null")
	client, _ := testClient(t, api)

	projects, err := client.ListProjects(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestListProjects_StringIDs(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.RespondRaw(string(EndpointProjects),
		`[{"ProjectName":"VGN Grandeur","Projectsite":null,"UnitNo":"C-3","ProjectId":"31","ProjectPlotidTranid":"9"}]`)
	client, _ := testClient(t, api)

	projects, err := client.ListProjects(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "31", projects[0].ProjectID)
	assert.Equal(t, "9", projects[0].ProjectTranID)
	assert.Empty(t, projects[0].Site)
}

func TestCustomerName(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Seed()
	client, _ := testClient(t, api)

	c, err := client.CustomerName(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ravi Kumar", c.Name)
	assert.Equal(t, testutil.TestMobile, c.Mobile)

	c, err = client.CustomerName(context.Background(), "9000000000")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestProjectDetail(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Seed()
	client, _ := testClient(t, api)

	d, err := client.ProjectDetail(context.Background(), "12", "7001")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "Booked", d.Status)
	assert.True(t, d.TotalCost.Equal(decimal.NewFromInt(4500000)))
	assert.True(t, d.ReceivedAmount.Equal(decimal.NewFromInt(1250000)))
	assert.True(t, d.HasReceipts())

	calls := api.CallsTo(string(EndpointBookedHistory))
	require.Len(t, calls, 1)
	assert.Equal(t, "12", calls[0].Query.Get("ProjectId"))
	assert.Equal(t, "7001", calls[0].Query.Get("ProjecttranId"))
}

func TestProjectDetail_NoRecord(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := testClient(t, api)

	d, err := client.ProjectDetail(context.Background(), "1", "2")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestProjectDetail_NullAndEmptyAmounts(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.RespondRaw(string(EndpointBookedHistory),
		`[{"Status":"Booked","Totalcost":"4500000.50","RecAmount":null,"Balance":""}]`)
	client, _ := testClient(t, api)

	d, err := client.ProjectDetail(context.Background(), "1", "2")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "4500000.5", d.TotalCost.String())
	assert.True(t, d.ReceivedAmount.IsZero())
	assert.True(t, d.Balance.IsZero())
	assert.False(t, d.HasReceipts())
}

func TestReceipts(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.Seed()
	client, _ := testClient(t, api)

	receipts, err := client.Receipts(context.Background(), "12", "7001")
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, "1", receipts[0].Sno)
	assert.Equal(t, "Cheque", receipts[0].PaymentMode)
	assert.Equal(t, "CHQ-881", receipts[0].RefNo)
	assert.True(t, receipts[1].Amount.Equal(decimal.NewFromInt(750000)))

	when, ok := receipts[0].When()
	require.True(t, ok)
	assert.Equal(t, 2024, when.Year())
}

func TestSubmitLead_SendsAllParams(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := testClient(t, api)

	lead := domain.Lead{
		Kind: domain.LeadReferral, CustomerName: "Anu & Co", MobileNumber: "9000000001",
		CountryCode: "+91", Email: "anu@example.com", Location: "Chennai",
		ProjectName: "VGN Highland", AgentName: domain.LeadAgentName,
		ReferralName: "Ravi Kumar", ReferralMobile: testutil.TestMobile,
	}
	require.NoError(t, client.SubmitLead(context.Background(), lead))

	calls := api.CallsTo(string(EndpointLead))
	require.Len(t, calls, 1)
	q := calls[0].Query
	assert.Equal(t, "Anu & Co", q.Get("CustomerName"))
	assert.Equal(t, "+91", q.Get("CountryCode"))
	assert.Equal(t, "VGN_360_MOBILE_APP", q.Get("AgentName"))
	assert.Equal(t, "Ravi Kumar", q.Get("ReferralName"))
	assert.Equal(t, testutil.TestMobile, q.Get("ReferrallMobileNo"))
}

func TestSubmitLead_EnquiryOmitsReferralParams(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := testClient(t, api)

	require.NoError(t, client.SubmitLead(context.Background(), domain.Lead{Kind: domain.LeadEnquiry}))

	q := api.CallsTo(string(EndpointLead))[0].Query
	_, has := q["ReferralName"]
	assert.False(t, has)
}

func TestSubmitLead_Rejected(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.LeadStatus = false
	api.LeadMsg = "Duplicate enquiry"
	client, obs := testClient(t, api)

	err := client.SubmitLead(context.Background(), domain.Lead{Kind: domain.LeadEnquiry})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Duplicate enquiry", UserMessage(err, "Failed to submit enquiry"))
	assert.Equal(t, "REJECTED", errorCode(err))
	// The HTTP call itself succeeded.
	assert.True(t, obs.events[0].Success)
}

func TestGenerateOTP(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := testClient(t, api)

	d, err := client.GenerateOTP(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	assert.True(t, d.Delivered)
	assert.Equal(t, "4321", d.Code)

	api.OTPDelivered = false
	d, err = client.GenerateOTP(context.Background(), testutil.TestMobile)
	require.NoError(t, err)
	assert.False(t, d.Delivered)
	assert.Empty(t, d.Code)
}

func TestVerifyOTP(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	client, _ := testClient(t, api)

	ok, err := client.VerifyOTP(context.Background(), testutil.TestMobile, "4321")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.VerifyOTP(context.Background(), testutil.TestMobile, "0000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBadStatus(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.FailWith(string(EndpointReceipts), http.StatusInternalServerError)
	client, obs := testClient(t, api)

	_, err := client.Receipts(context.Background(), "1", "2")
	assert.ErrorIs(t, err, ErrBadStatus)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
	assert.Equal(t, "BAD_STATUS", obs.events[0].ErrorCode)
	assert.Equal(t, GenericFailureMessage, UserMessage(err, "x"))
}

func TestDecodeError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	api.RespondRaw(string(EndpointProjects), `{"Message":"An error has occurred."}`)
	client, _ := testClient(t, api)

	_, err := client.ListProjects(context.Background(), testutil.TestMobile)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewHTTPClient(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := client.ListProjects(context.Background(), testutil.TestMobile)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCanceledByCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	client := NewHTTPClient(Config{BaseURL: srv.URL, Timeout: time.Second}, nil)
	_, err := client.ListProjects(ctx, testutil.TestMobile)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestUnavailable(t *testing.T) {
	client := NewHTTPClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)
	_, err := client.ListProjects(context.Background(), testutil.TestMobile)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil, "x"))
	assert.Equal(t, "fallback", UserMessage(&RejectedError{}, "fallback"))
	assert.Equal(t, GenericFailureMessage, UserMessage(ErrTimeout, "fallback"))
}

func TestNewHTTPClient_TransportKeepsProxyAndTLSDefaults(t *testing.T) {
	c, ok := NewHTTPClient(Config{BaseURL: "https://example.invalid"}, nil).(*httpClient)
	require.True(t, ok)
	tr, ok := c.http.Transport.(*http.Transport)
	require.True(t, ok)

	assert.NotNil(t, tr.Proxy, "HTTPS_PROXY is honoured")
	assert.Positive(t, tr.TLSHandshakeTimeout)
	assert.NotNil(t, tr.DialContext)
	assert.NotSame(t, http.DefaultTransport, tr)
}

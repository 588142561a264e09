package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/alexanderramin/vgn360/internal/domain"
	"github.com/google/uuid"
)

// Endpoint is the path of a remote API call.
type Endpoint string

const (
	EndpointProjects      Endpoint = "/MobileApp_API/GetProjectDetails"
	EndpointCustomerName  Endpoint = "/MobileApp_API/GetCustomerName"
	EndpointBookedHistory Endpoint = "/MobileApp_API/GetProjectBookedHistory"
	EndpointReceipts      Endpoint = "/MobileApp_API/GetReceiptData"
	EndpointGenerateOTP   Endpoint = "/MobileApp_API/GenerateOtpCode"
	EndpointVerifyOTP     Endpoint = "/MobileApp_API/GetOtpCode"
	EndpointLead          Endpoint = "/api/Values"
)

// OTPDelivery is the result of asking the server to send a code.
type OTPDelivery struct {
	Delivered bool
	Code      string // only set when Delivered
}

// Client calls the real-estate REST API. Every method performs exactly one
// request; an empty result is not an error.
type Client interface {
	// ListProjects returns the customer's booked units.
	ListProjects(ctx context.Context, mobile string) ([]domain.ProjectSummary, error)

	// CustomerName returns nil when the number is unknown.
	CustomerName(ctx context.Context, mobile string) (*domain.Customer, error)

	// ProjectDetail returns nil when the server has no record.
	ProjectDetail(ctx context.Context, projectID, tranID string) (*domain.ProjectDetailRecord, error)

	Receipts(ctx context.Context, projectID, tranID string) ([]domain.ReceiptRecord, error)

	// SubmitLead returns a *RejectedError when the server answers status=false.
	SubmitLead(ctx context.Context, lead domain.Lead) error

	GenerateOTP(ctx context.Context, mobile string) (*OTPDelivery, error)
	VerifyOTP(ctx context.Context, mobile, code string) (bool, error)
}

// httpClient implements Client over plain HTTP POSTs with query parameters.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client for the API described by cfg.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg:      cfg,
		http:     &http.Client{Transport: newTransport()},
		observer: observer,
	}
}

// newTransport keeps the default proxy and TLS settings and shortens the
// dial timeout.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	return t
}

func (c *httpClient) ListProjects(ctx context.Context, mobile string) ([]domain.ProjectSummary, error) {
	var rows []projectDTO
	if err := c.post(ctx, c.cfg.BaseURL, EndpointProjects, url.Values{"MobileNo": {mobile}}, &rows); err != nil {
		return nil, err
	}
	projects := make([]domain.ProjectSummary, 0, len(rows))
	for i, r := range rows {
		projects = append(projects, r.toDomain(i+1))
	}
	return projects, nil
}

func (c *httpClient) CustomerName(ctx context.Context, mobile string) (*domain.Customer, error) {
	var rows []customerDTO
	if err := c.post(ctx, c.cfg.BaseURL, EndpointCustomerName, url.Values{"MobileNo": {mobile}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &domain.Customer{
		Name:   string(rows[0].CustomerName),
		Mobile: string(rows[0].MobileNo),
	}, nil
}

func (c *httpClient) ProjectDetail(ctx context.Context, projectID, tranID string) (*domain.ProjectDetailRecord, error) {
	var rows []bookedHistoryDTO
	if err := c.post(ctx, c.cfg.BaseURL, EndpointBookedHistory, projectParams(projectID, tranID), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	d := rows[0].toDomain()
	return &d, nil
}

func (c *httpClient) Receipts(ctx context.Context, projectID, tranID string) ([]domain.ReceiptRecord, error) {
	var rows []receiptDTO
	if err := c.post(ctx, c.cfg.BaseURL, EndpointReceipts, projectParams(projectID, tranID), &rows); err != nil {
		return nil, err
	}
	receipts := make([]domain.ReceiptRecord, 0, len(rows))
	for _, r := range rows {
		receipts = append(receipts, r.toDomain())
	}
	return receipts, nil
}

func (c *httpClient) SubmitLead(ctx context.Context, lead domain.Lead) error {
	var resp leadResponse
	if err := c.post(ctx, c.cfg.LeadBaseURL, EndpointLead, leadParams(lead), &resp); err != nil {
		return err
	}
	if !resp.Status {
		return &RejectedError{Message: resp.Msg}
	}
	return nil
}

func (c *httpClient) GenerateOTP(ctx context.Context, mobile string) (*OTPDelivery, error) {
	var resp otpGenerateResponse
	if err := c.post(ctx, c.cfg.BaseURL, EndpointGenerateOTP, url.Values{"MobileNo": {mobile}}, &resp); err != nil {
		return nil, err
	}
	if resp.Success && resp.Data.DeliveryStatus == deliveredStatus {
		return &OTPDelivery{Delivered: true, Code: string(resp.Data.OTPCode)}, nil
	}
	return &OTPDelivery{}, nil
}

func (c *httpClient) VerifyOTP(ctx context.Context, mobile, code string) (bool, error) {
	var rows []otpVerifyDTO
	params := url.Values{"MobileNo": {mobile}, "OTPCode": {code}}
	if err := c.post(ctx, c.cfg.BaseURL, EndpointVerifyOTP, params, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0 && rows[0].OTPStatus == otpSucceeded, nil
}

func projectParams(projectID, tranID string) url.Values {
	return url.Values{"ProjectId": {projectID}, "ProjecttranId": {tranID}}
}

func leadParams(lead domain.Lead) url.Values {
	v := url.Values{
		"CustomerName": {lead.CustomerName},
		"MobileNumber": {lead.MobileNumber},
		"CountryCode":  {lead.CountryCode},
		"Email":        {lead.Email},
		"Location":     {lead.Location},
		"ProjectName":  {lead.ProjectName},
		"AgentName":    {lead.AgentName},
		"Remarks":      {""},
	}
	if lead.Kind == domain.LeadReferral {
		v.Set("ReferralName", lead.ReferralName)
		v.Set("ReferrallMobileNo", lead.ReferralMobile)
	}
	return v
}

// post performs one call and decodes the JSON body into out. An empty or
// null body leaves out untouched.
func (c *httpClient) post(ctx context.Context, base string, ep Endpoint, params url.Values, out any) error {
	start := time.Now()
	event := CallEvent{RequestID: uuid.NewString(), Endpoint: ep}

	err := c.do(ctx, base, ep, params, out, &event)

	event.LatencyMs = time.Since(start).Milliseconds()
	event.Success = err == nil
	event.ErrorCode = errorCode(err)
	c.observer.OnCallComplete(event)
	return err
}

func (c *httpClient) do(ctx context.Context, base string, ep Endpoint, params url.Values, out any, event *CallEvent) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	u := base + string(ep)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	event.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrBadStatus, ep, resp.StatusCode)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, ep, err)
	}
	return nil
}

func classifyTransportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

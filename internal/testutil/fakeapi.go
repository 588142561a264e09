package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Call is one request received by FakeAPI.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// FakeAPI is an in-process stand-in for the real-estate REST API.
// Seed it through its fields before the code under test runs.
type FakeAPI struct {
	Server *httptest.Server

	mu        sync.Mutex
	Projects  map[string][]ProjectRow // by mobile
	Customers map[string]CustomerRow  // by mobile
	Details   map[string]DetailRow    // by ProjectId/ProjecttranId
	Receipts  map[string][]ReceiptRow // by ProjectId/ProjecttranId
	failures  map[string]int          // path -> status code
	raw       map[string]string       // path -> literal body
	calls     []Call

	LeadStatus bool
	LeadMsg    string

	OTPDelivered bool
	OTPCode      string // code sent and accepted
}

// NewFakeAPI starts a FakeAPI that is shut down when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		Projects:     map[string][]ProjectRow{},
		Customers:    map[string]CustomerRow{},
		Details:      map[string]DetailRow{},
		Receipts:     map[string][]ReceiptRow{},
		failures:     map[string]int{},
		raw:          map[string]string{},
		LeadStatus:   true,
		OTPDelivered: true,
		OTPCode:      "4321",
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL for both API hosts.
func (f *FakeAPI) URL() string { return f.Server.URL }

// FailWith makes every request to path answer with status.
func (f *FakeAPI) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// RespondRaw makes path answer 200 with body verbatim.
func (f *FakeAPI) RespondRaw(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw[path] = body
}

// Seed installs the sample customer, projects, detail and receipts for TestMobile.
func (f *FakeAPI) Seed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Customers[TestMobile] = CustomerRow{CustomerName: "Ravi Kumar", MobileNo: TestMobile}
	f.Projects[TestMobile] = SampleProjects()
	f.Details[ProjectKey("12", "7001")] = SampleDetail()
	f.Receipts[ProjectKey("12", "7001")] = SampleReceipts()
}

// Calls returns the requests received so far.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsTo returns the requests received for path.
func (f *FakeAPI) CallsTo(path string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// ProjectKey builds the map key used for Details and Receipts.
func ProjectKey(projectID, tranID string) string {
	return projectID + "/" + tranID
}

func (f *FakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record)
	r.Use(f.overrides)

	r.Route("/MobileApp_API", func(r chi.Router) {
		r.Post("/GetProjectDetails", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			rows := f.Projects[req.URL.Query().Get("MobileNo")]
			f.mu.Unlock()
			writeJSON(w, nonNil(rows))
		})
		r.Post("/GetCustomerName", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			row, ok := f.Customers[req.URL.Query().Get("MobileNo")]
			f.mu.Unlock()
			if !ok {
				writeJSON(w, []CustomerRow{})
				return
			}
			writeJSON(w, []CustomerRow{row})
		})
		r.Post("/GetProjectBookedHistory", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			row, ok := f.Details[projectKeyFrom(req)]
			f.mu.Unlock()
			if !ok {
				writeJSON(w, []DetailRow{})
				return
			}
			writeJSON(w, []DetailRow{row})
		})
		r.Post("/GetReceiptData", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			rows := f.Receipts[projectKeyFrom(req)]
			f.mu.Unlock()
			writeJSON(w, nonNil(rows))
		})
		r.Post("/GenerateOtpCode", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			status := "UNDELIV"
			if f.OTPDelivered {
				status = "DELIVRD"
			}
			writeJSON(w, map[string]any{
				"success": true,
				"data":    map[string]any{"deliveryStatus": status, "OTPCode": f.OTPCode},
			})
		})
		r.Post("/GetOtpCode", func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			status := "Failed"
			if req.URL.Query().Get("OTPCode") == f.OTPCode {
				status = "Succeed"
			}
			writeJSON(w, []map[string]string{{"OTPStatus": status}})
		})
	})

	r.Post("/api/Values", func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, map[string]any{"status": f.LeadStatus, "msg": f.LeadMsg})
	})

	return r
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, Call{
			Method: req.Method,
			Path:   req.URL.Path,
			Query:  req.URL.Query(),
			Header: req.Header.Clone(),
		})
		f.mu.Unlock()
		next.ServeHTTP(w, req)
	})
}

func (f *FakeAPI) overrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		f.mu.Lock()
		status, failing := f.failures[req.URL.Path]
		body, isRaw := f.raw[req.URL.Path]
		f.mu.Unlock()

		switch {
		case failing:
			http.Error(w, "injected failure", status)
		case isRaw:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		default:
			next.ServeHTTP(w, req)
		}
	})
}

func projectKeyFrom(req *http.Request) string {
	q := req.URL.Query()
	return ProjectKey(q.Get("ProjectId"), q.Get("ProjecttranId"))
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

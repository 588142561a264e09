package gateway

import "time"

// Config holds the API endpoints and call limits.
type Config struct {
	// BaseURL serves the MobileApp_API endpoints.
	BaseURL string
	// LeadBaseURL serves lead submission.
	LeadBaseURL string
	Timeout     time.Duration
}

// DefaultConfig returns the production endpoints.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://www.vgn360.com",
		LeadBaseURL: "https://vgn360.com",
		Timeout:     15 * time.Second,
	}
}

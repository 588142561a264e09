package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProjectSummary is one booked unit in a customer's project list.
type ProjectSummary struct {
	ID            int // 1-based position in the remote list
	Name          string
	Site          string
	UnitNo        string
	ProjectID     string
	ProjectTranID string
}

// ProjectDetailRecord is the booking detail for one (ProjectID, ProjectTranID) pair.
type ProjectDetailRecord struct {
	Status         string
	BookedDate     string
	RegDate        string
	CustomerName   string
	MobileNo       string
	Address        string
	TotalCost      decimal.Decimal
	ReceivedAmount decimal.Decimal
	Balance        decimal.Decimal
}

// HasReceipts reports whether any payment has been received against the booking.
func (d ProjectDetailRecord) HasReceipts() bool {
	return d.ReceivedAmount.GreaterThan(decimal.Zero)
}

// FilterProjects returns the projects whose name, unit number or site contains
// text, ignoring case. Empty text matches everything.
func FilterProjects(projects []ProjectSummary, text string) []ProjectSummary {
	if text == "" {
		return projects
	}
	q := strings.ToLower(text)
	matches := func(s string) bool {
		return s != "" && strings.Contains(strings.ToLower(s), q)
	}

	var filtered []ProjectSummary
	for _, p := range projects {
		if matches(p.Name) || matches(p.UnitNo) || matches(p.Site) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

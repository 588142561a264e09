package domain

import (
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptRecord is a single payment received against a booking.
type ReceiptRecord struct {
	Sno         string
	Amount      decimal.Decimal
	Date        string // as sent by the server, usually /Date(<ms>)/
	Stage       string
	PaymentMode string
	RefNo       string
}

// When parses Date. ok is false when Date carries no timestamp.
func (r ReceiptRecord) When() (time.Time, bool) {
	return ParseAPIDate(r.Date)
}

var apiDatePattern = regexp.MustCompile(`^/?Date\((-?\d+)`)

// ParseAPIDate extracts the millisecond timestamp from a /Date(<ms>)/ string.
func ParseAPIDate(s string) (time.Time, bool) {
	m := apiDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

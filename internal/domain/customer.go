package domain

// Customer is the display identity returned for a mobile number.
type Customer struct {
	Name   string
	Mobile string
}

package domain

// SessionState is the signed-in customer's context shared across screens.
type SessionState struct {
	Mobile          string
	IsAuthenticated bool
}

// HasMobile reports whether Mobile holds a usable 10-digit number.
func (s SessionState) HasMobile() bool {
	return ValidatePhone(s.Mobile) == ""
}

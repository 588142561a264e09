package domain

import "regexp"

var (
	phonePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// PhoneDigits is the length of a local mobile number.
const PhoneDigits = 10

// Phone validation messages, one per rejection class.
const (
	MsgPhoneRequired = "Phone number is required"
	MsgPhoneDigits   = "Phone number must contain digits only"
	MsgPhoneShort    = "Phone number is too short, enter a valid 10-digit phone number"
	MsgPhoneLong     = "Phone number is too long, enter a valid 10-digit phone number"
)

// ValidatePhone returns "" for an exactly 10-digit numeric string and a
// message naming the problem otherwise.
func ValidatePhone(phone string) string {
	switch {
	case phone == "":
		return MsgPhoneRequired
	case phonePattern.MatchString(phone):
		return ""
	case !digitsPattern.MatchString(phone):
		return MsgPhoneDigits
	case len(phone) < PhoneDigits:
		return MsgPhoneShort
	default:
		return MsgPhoneLong
	}
}

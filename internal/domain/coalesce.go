package domain

import "strings"

// CoalesceStr returns the first value that is not blank, trimmed. The API
// pads some fields with spaces, so whitespace counts as missing.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

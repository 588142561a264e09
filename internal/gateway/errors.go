package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the API host could not be reached.
	ErrUnavailable = errors.New("api server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("api request timed out")

	// ErrCanceled indicates the caller gave up on the request, usually
	// because the requesting screen was closed.
	ErrCanceled = errors.New("api request canceled")

	// ErrBadStatus indicates a non-200 HTTP response.
	ErrBadStatus = errors.New("unexpected api status")

	// ErrDecode indicates the response body was not the expected JSON.
	ErrDecode = errors.New("invalid api response")

	// ErrRejected indicates the server answered but refused the request.
	ErrRejected = errors.New("request rejected by server")
)

// RejectedError carries the server's own explanation for a refusal.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRejected, e.Message)
}

func (e *RejectedError) Unwrap() error { return ErrRejected }

// GenericFailureMessage is shown for any transport or parse failure.
const GenericFailureMessage = "Failed to connect to server. Please try again."

// UserMessage turns a gateway error into text fit for an alert. Server
// refusals keep their own message; fallback is used when it has none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var rej *RejectedError
	if errors.As(err, &rej) {
		if rej.Message != "" {
			return rej.Message
		}
		return fallback
	}
	return GenericFailureMessage
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrCanceled):
		return "CANCELED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadStatus):
		return "BAD_STATUS"
	case errors.Is(err, ErrDecode):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

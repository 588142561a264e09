package nav

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParam indicates a required navigation parameter was empty.
	ErrMissingParam = errors.New("missing required navigation parameter")

	// ErrWrongParams indicates a route carried another screen's parameter type.
	ErrWrongParams = errors.New("wrong navigation parameters")

	// ErrUnknownScreen indicates a route named no registered screen.
	ErrUnknownScreen = errors.New("unknown screen")

	// ErrInvalidTransition indicates the screen graph has no such edge.
	ErrInvalidTransition = errors.New("invalid screen transition")

	// ErrNoBack indicates there is nothing below the current screen.
	ErrNoBack = errors.New("no screen to go back to")
)

// MissingParamError names the screen and the parameter that was missing.
type MissingParamError struct {
	Screen Screen
	Param  string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Screen, e.Param)
}

func (e *MissingParamError) Unwrap() error { return ErrMissingParam }
